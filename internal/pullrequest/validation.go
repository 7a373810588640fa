package pullrequest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/temirov/gitship/internal/conventional"
)

// MaximumTitleLength is the longest recommended title, counted in characters.
const MaximumTitleLength = 200

const (
	titleTooLongMessageTemplateConstant = "pull request title is too long (%d characters); keep it within %d"
	titleMissingHangulMessageConstant   = "pull request title is not written in Korean"
	emptyBodyMessageConstant            = "pull request body is empty"
)

// WarningKind classifies a non-fatal finding about the title or body.
type WarningKind string

// Warning kinds reported by ValidateTitleAndBody.
const (
	WarningTitleTooLong       WarningKind = "title_too_long"
	WarningTitleMissingHangul WarningKind = "title_missing_hangul"
	WarningEmptyBody          WarningKind = "empty_body"
)

// Warning is a validation finding that does not stop the run.
type Warning struct {
	Kind    WarningKind
	Message string
}

// ValidateTitleAndBody rejects a blank title and collects warnings for everything else worth flagging.
func ValidateTitleAndBody(title string, body string) ([]Warning, error) {
	if len(strings.TrimSpace(title)) == 0 {
		return nil, ErrEmptyTitle
	}

	var warnings []Warning
	if titleLength := utf8.RuneCountInString(title); titleLength > MaximumTitleLength {
		warnings = append(warnings, Warning{
			Kind:    WarningTitleTooLong,
			Message: fmt.Sprintf(titleTooLongMessageTemplateConstant, titleLength, MaximumTitleLength),
		})
	}
	if !conventional.ContainsHangulSyllable(title) {
		warnings = append(warnings, Warning{Kind: WarningTitleMissingHangul, Message: titleMissingHangulMessageConstant})
	}
	if len(strings.TrimSpace(body)) == 0 {
		warnings = append(warnings, Warning{Kind: WarningEmptyBody, Message: emptyBodyMessageConstant})
	}

	return warnings, nil
}
