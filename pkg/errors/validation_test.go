package errors

import (
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "bash", false},
		{"valid with dash", "libc6-dev", false},
		{"valid with plus", "g++", false},
		{"valid with dot", "libstdc++6.0", false},
		{"valid virtual stripped", "mail-transport-agent", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"leading dash", "-recurse", true},
		{"embedded space", "foo bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"semicolon", "foo;rm", true},
		{"pipe", "foo|bar", true},
		{"backtick", "foo`id`", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDebPackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "bash", false},
		{"with dash", "apt-utils", false},
		{"with plus", "g++-12", false},
		{"with dot", "libgtk-4.1", false},
		{"starts with digit", "0ad", false},

		{"empty", "", true},
		{"single char", "a", true},
		{"uppercase", "Bash", true},
		{"starts with dash", "-pkg", true},
		{"starts with plus", "+pkg", true},
		{"underscore", "my_pkg", true},
		{"angle brackets", "<virtual-pkg>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDebPackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDebPackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
