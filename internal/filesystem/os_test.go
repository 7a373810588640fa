package filesystem_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitship/internal/filesystem"
)

func TestOSFileSystemReadsFiles(testInstance *testing.T) {
	bodyPath := filepath.Join(testInstance.TempDir(), "body.md")
	require.NoError(testInstance, os.WriteFile(bodyPath, []byte("## 변경 사항\n"), 0o600))

	fileSystem := filesystem.OSFileSystem{}

	contents, readError := fileSystem.ReadFile(bodyPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "## 변경 사항\n", string(contents))

	_, missingError := fileSystem.ReadFile(filepath.Join(testInstance.TempDir(), "absent.md"))
	require.ErrorIs(testInstance, missingError, fs.ErrNotExist)
}
