package conventional

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	typeSeparatorConstant                 = ":"
	scopeOpeningConstant                  = "("
	allowedTypesJoinSeparatorConstant     = ", "
	missingSeparatorMessageConstant       = "commit message has no ':' separator"
	invalidTypeMessageTemplateConstant    = "'%s' is not a valid commit type"
	validTypesDetailTemplateConstant      = "valid types: %s"
	emptyDescriptionMessageConstant       = "commit message description is empty"
	missingHangulMessageConstant          = "commit message description is not written in Korean"
	validationErrorDetailTemplateConstant = "%s (%s)"
	hangulSyllableFirstCodePointConstant  = 0xAC00
	hangulSyllableLastCodePointConstant   = 0xD7A3
)

// Reason classifies why a commit message was rejected.
type Reason string

// Validation failure reasons, in the order the rules are applied.
const (
	ReasonMissingSeparator Reason = "missing_separator"
	ReasonInvalidType      Reason = "invalid_type"
	ReasonEmptyDescription Reason = "empty_description"
	ReasonMissingHangul    Reason = "missing_hangul"
)

var allowedTypes = []string{"feat", "fix", "docs", "style", "refactor", "perf", "test", "chore"}

// hangulSyllables covers the precomposed Hangul syllable block only; standalone Jamo do not count.
var hangulSyllables = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: hangulSyllableFirstCodePointConstant, Hi: hangulSyllableLastCodePointConstant, Stride: 1}},
}

// ValidationError describes the first rule a commit message broke.
type ValidationError struct {
	Reason  Reason
	Message string
	// Detail carries supplementary guidance such as the list of valid types.
	Detail string
}

// Error describes the validation failure.
func (validationError ValidationError) Error() string {
	if len(validationError.Detail) == 0 {
		return validationError.Message
	}
	return fmt.Sprintf(validationErrorDetailTemplateConstant, validationError.Message, validationError.Detail)
}

// AllowedTypes returns the accepted commit types.
func AllowedTypes() []string {
	return append([]string(nil), allowedTypes...)
}

// ContainsHangulSyllable reports whether text has at least one rune in U+AC00..U+D7A3.
func ContainsHangulSyllable(text string) bool {
	for _, character := range text {
		if unicode.Is(hangulSyllables, character) {
			return true
		}
	}
	return false
}

// ValidateCommitMessage checks message against "type[(scope)]: description".
// The type is the text before the first ':' and any '(' with whitespace trimmed,
// and the description is everything after the first ':'.
func ValidateCommitMessage(message string) error {
	separatorIndex := strings.Index(message, typeSeparatorConstant)
	if separatorIndex < 0 {
		return ValidationError{Reason: ReasonMissingSeparator, Message: missingSeparatorMessageConstant}
	}

	header := message[:separatorIndex]
	if scopeIndex := strings.Index(header, scopeOpeningConstant); scopeIndex >= 0 {
		header = header[:scopeIndex]
	}
	commitType := strings.TrimSpace(header)
	if !isAllowedType(commitType) {
		return ValidationError{
			Reason:  ReasonInvalidType,
			Message: fmt.Sprintf(invalidTypeMessageTemplateConstant, commitType),
			Detail:  fmt.Sprintf(validTypesDetailTemplateConstant, strings.Join(allowedTypes, allowedTypesJoinSeparatorConstant)),
		}
	}

	description := strings.TrimSpace(message[separatorIndex+len(typeSeparatorConstant):])
	if len(description) == 0 {
		return ValidationError{Reason: ReasonEmptyDescription, Message: emptyDescriptionMessageConstant}
	}

	if !ContainsHangulSyllable(description) {
		return ValidationError{Reason: ReasonMissingHangul, Message: missingHangulMessageConstant}
	}

	return nil
}

func isAllowedType(candidate string) bool {
	for _, allowedType := range allowedTypes {
		if candidate == allowedType {
			return true
		}
	}
	return false
}
