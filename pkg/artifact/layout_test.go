package artifact

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout_Path(t *testing.T) {
	l := Layout{Basedir: filepath.FromSlash("/cache")}

	tests := []struct {
		coord    string
		expected string
	}{
		{"com.x:lib:2.0", "/cache/com/x/lib/2.0/lib-2.0.jar"},
		{"com.x:lib:2.0:pom", "/cache/com/x/lib/2.0/lib-2.0.pom"},
		{"org.acme.tools:cli:3.1:jar:linux", "/cache/org/acme/tools/cli/3.1/cli-3.1-linux.jar"},
	}

	for _, tt := range tests {
		t.Run(tt.coord, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.expected), l.Path(MustParseCoordinate(tt.coord)))
		})
	}
}

func TestLayout_Dir_SharedAcrossExtensions(t *testing.T) {
	l := Layout{Basedir: "/cache"}
	c := MustParseCoordinate("com.x:lib:2.0")

	assert.Equal(t, l.Dir(c), l.Dir(c.WithExtension("pom")))
	assert.Equal(t, l.Dir(c), filepath.Dir(l.Path(c)))
}

func TestLayout_Coordinate(t *testing.T) {
	l := Layout{Basedir: filepath.FromSlash("/cache")}

	c, ok := l.Coordinate(l.Dir(MustParseCoordinate("org.acme.tools:cli:3.1")))
	assert.True(t, ok)
	assert.Equal(t, "org.acme.tools:cli:3.1", c.String())

	for _, dir := range []string{"/cache", "/cache/com/x", "/elsewhere/com/x/lib/2.0"} {
		_, ok := l.Coordinate(filepath.FromSlash(dir))
		assert.False(t, ok, dir)
	}
}
