package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/temirov/gitship/internal/utils"
)

// Reporter emits formatted lines to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return writerReporter{writer: utils.NewFlushingWriter(writer)}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	fmt.Fprintf(reporter.writer, format, args...)
}

// NewDiscardReporter constructs a Reporter that drops everything.
func NewDiscardReporter() Reporter {
	return writerReporter{writer: io.Discard}
}
