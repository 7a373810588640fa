package utils_test

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitship/internal/utils"
)

type failingFlushWriter struct {
	bytes.Buffer
}

func (writer *failingFlushWriter) Flush() error {
	return errors.New("flush failed")
}

func TestFlushingWriterFlushesBufferedWriter(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriterSize(destination, 4096)

	flushingWriter := utils.NewFlushingWriter(bufferedWriter)
	_, writeError := flushingWriter.Write([]byte("🔄 Staging 1 file...\n"))

	require.NoError(testInstance, writeError)
	require.Equal(testInstance, "🔄 Staging 1 file...\n", destination.String())
}

func TestFlushingWriterReportsFlushFailure(testInstance *testing.T) {
	flushingWriter := utils.NewFlushingWriter(&failingFlushWriter{})

	bytesWritten, writeError := flushingWriter.Write([]byte("line"))

	require.Equal(testInstance, 4, bytesWritten)
	require.EqualError(testInstance, writeError, "flush failed")
}

func TestNewFlushingWriterHandlesNilAndWrappedWriters(testInstance *testing.T) {
	require.Nil(testInstance, utils.NewFlushingWriter(nil))

	wrappedWriter := utils.NewFlushingWriter(&bytes.Buffer{})
	require.Same(testInstance, wrappedWriter, utils.NewFlushingWriter(wrappedWriter))
}
