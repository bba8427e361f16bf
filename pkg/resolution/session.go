package resolution

import "path/filepath"

// LocalRepository is the cache where resolved artifacts are materialized.
type LocalRepository struct {
	Basedir string
}

// Session carries the per-build state shared by resolution events.
type Session struct {
	LocalRepository LocalRepository
}

// NewSession creates a session rooted at the given cache base directory.
func NewSession(cacheBasedir string) *Session {
	return &Session{
		LocalRepository: LocalRepository{Basedir: filepath.Clean(cacheBasedir)},
	}
}
