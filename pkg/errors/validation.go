package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentPath validates the path of an outline document given on the
// command line or to the watcher.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateID validates an identifier authored through the CLI or the API
// (for example when naming a fold target). Ids are single metadata tokens, so
// they must not contain whitespace or the component separator.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}
	if strings.ContainsAny(id, "|\"") {
		return New(ErrCodeInvalidInput, "id contains reserved characters: %q", id)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains whitespace or control characters: %q", id)
		}
	}
	return nil
}
