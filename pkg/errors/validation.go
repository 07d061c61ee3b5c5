package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for argument injection when the name
// is handed to the apt-cache subprocess.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No shell-relevant metacharacters
//   - Maximum length of 256 characters
//
// Debian policy conformance is checked separately by ValidateDebPackageName.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidPackage, "package name contains whitespace or control characters")
		}
	}

	// Leading dash would be parsed as an apt-cache flag.
	if strings.HasPrefix(name, "-") {
		return New(ErrCodeInvalidPackage, "package name cannot start with a dash")
	}

	dangerous := []string{"..", "/", "\\", "\x00", ";", "&", "|", "$", "`"}
	for _, pattern := range dangerous {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// debPackageNameRegex matches valid Debian package names per Debian Policy
// §5.6.1: at least two characters, lowercase alphanumeric start, then
// lowercase alphanumerics, plus, minus, and period.
var debPackageNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9+.-]+$`)

// ValidateDebPackageName validates a Debian package name per Debian Policy.
// Virtual-package angle brackets must be stripped before calling this.
func ValidateDebPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !debPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Debian package name: %q", name)
	}

	return nil
}
