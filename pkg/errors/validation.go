package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// attributeNameRegex matches names accepted by the host for point and detail
// attributes: a letter or underscore followed by letters, digits or underscores.
var attributeNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateAttributeName validates a geometry attribute name.
//
// Names end up as XML text or attribute values, so the rules stay close to the
// host's own naming rules:
//   - No empty names
//   - Maximum length of 256 characters
//   - Letters, digits and underscores only, not starting with a digit
func ValidateAttributeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAttribute, "attribute name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidAttribute, "attribute name too long (max 256 characters)")
	}

	if !attributeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidAttribute, "invalid attribute name: %q", name)
	}

	return nil
}

// ValidateOutputPath validates the path an export is written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}
