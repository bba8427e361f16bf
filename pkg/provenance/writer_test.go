package provenance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/artifact"
	"github.com/cloudposse/depwhy/pkg/filesystem"
)

func TestTrackingFileName(t *testing.T) {
	tests := []struct {
		root     artifact.Coordinate
		expected string
	}{
		{artifact.MustParseCoordinate("g:a:1.0"), "g_a_1.0"},
		{artifact.MustParseCoordinate("com.x:app:1.0:war"), "com.x_app_1.0_war"},
		{artifact.MustParseCoordinate("g:a:1::cls"), "g_a_1__cls"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			name := TrackingFileName(tt.root)
			assert.Equal(t, tt.expected, name)
			assert.NotContains(t, name, ":")
			assert.Equal(t, name, filepath.Base(name))
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"local-project", "local-project"},
		{"g:a:1", "g_a_1"},
		{"g:a:1::cls", "g_a_1__cls"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeFileName(tt.id))
		})
	}
}

func TestTrackingDir(t *testing.T) {
	file := filepath.FromSlash("/cache/com/x/lib/2.0/lib-2.0.jar")
	assert.Equal(t, filepath.FromSlash("/cache/com/x/lib/2.0/.tracking"), TrackingDir(file))
}

func TestWriter_Persist(t *testing.T) {
	dir := t.TempDir()
	artifactFile := filepath.Join(dir, "com", "x", "lib", "2.0", "lib-2.0.jar")
	root := artifact.MustParseCoordinate("com.x:app:1.0")
	lines := []string{"com.x:lib:2.0 (compile)", "  com.x:app:1.0 (compile)"}

	path, err := NewWriter().Persist(artifactFile, root, lines)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "com", "x", "lib", "2.0", ".tracking", "com.x_app_1.0"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "com.x:lib:2.0 (compile)\n  com.x:app:1.0 (compile)\n", string(data))
}

func TestWriter_Persist_Overwrites(t *testing.T) {
	artifactFile := filepath.Join(t.TempDir(), "lib-2.0.jar")
	root := artifact.MustParseCoordinate("com.x:app:1.0")
	w := NewWriter()

	_, err := w.Persist(artifactFile, root, []string{"a (compile)", "  b (compile)", "    c (compile)"})
	require.NoError(t, err)
	path, err := w.Persist(artifactFile, root, []string{"a (compile)", "  c (compile)"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a (compile)\n  c (compile)\n", string(data))
}

func TestWriter_Persist_MkdirFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFS := filesystem.NewMockFileSystem(ctrl)
	cause := errors.New("permission denied")

	mockFS.EXPECT().MkdirAll(filepath.FromSlash("/cache/g/a/1/.tracking"), os.FileMode(0o755)).Return(cause)

	w := NewWriter(WithFileSystem(mockFS))
	_, err := w.Persist(filepath.FromSlash("/cache/g/a/1/a-1.jar"), artifact.MustParseCoordinate("g:app:1"), []string{"g:a:1 (compile)"})

	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrTrackingDirCreate)
	assert.ErrorIs(t, err, cause)
}

func TestWriter_Persist_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFS := filesystem.NewMockFileSystem(ctrl)
	cause := errors.New("no space left on device")

	gomock.InOrder(
		mockFS.EXPECT().MkdirAll(gomock.Any(), gomock.Any()).Return(nil),
		mockFS.EXPECT().
			WriteFileAtomic(filepath.FromSlash("/cache/g/a/1/.tracking/g_app_1"), []byte("g:a:1 (compile)\n"), os.FileMode(0o644)).
			Return(cause),
	)

	w := NewWriter(WithFileSystem(mockFS))
	_, err := w.Persist(filepath.FromSlash("/cache/g/a/1/a-1.jar"), artifact.MustParseCoordinate("g:app:1"), []string{"g:a:1 (compile)"})

	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrTrackingWrite)
	assert.ErrorIs(t, err, cause)
}

func TestEncodeLines(t *testing.T) {
	assert.Equal(t, "", string(encodeLines(nil)))
	assert.Equal(t, "one\n", string(encodeLines([]string{"one"})))
	assert.Equal(t, "one\n  two\n", string(encodeLines([]string{"one", "  two"})))
}
