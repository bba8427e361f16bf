// Package version holds the build version of depwhy.
package version

// Version is set at build time with -ldflags "-X github.com/cloudposse/depwhy/pkg/version.Version=v1.2.3".
var Version = "0.0.1"
