package pullrequest

import (
	"errors"
	"io/fs"
	"strings"
	"unicode/utf8"
)

// FileReader reads whole files.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// BodySource yields the pull request body. Exactly one source is chosen per run.
type BodySource interface {
	Resolve(fileReader FileReader) (string, error)
}

// FileBodySource reads the body from a UTF-8 file.
type FileBodySource struct {
	Path string
}

// Resolve returns the file contents with surrounding whitespace trimmed.
func (source FileBodySource) Resolve(fileReader FileReader) (string, error) {
	contents, readError := fileReader.ReadFile(source.Path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return "", BodyFileNotFoundError{Path: source.Path}
		}
		return "", BodyFileReadError{Path: source.Path, Cause: readError}
	}

	if !utf8.Valid(contents) {
		return "", BodyFileEncodingError{Path: source.Path}
	}

	return strings.TrimSpace(string(contents)), nil
}

// InlineBodySource carries body text given on the command line.
type InlineBodySource struct {
	Text string
}

// Resolve returns the text verbatim.
func (source InlineBodySource) Resolve(FileReader) (string, error) {
	return source.Text, nil
}

func resolveBody(source BodySource, fileReader FileReader) (string, error) {
	if source == nil {
		return "", ErrBodySourceMissing
	}
	return source.Resolve(fileReader)
}
