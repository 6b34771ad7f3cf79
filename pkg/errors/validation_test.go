package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "1", false},
		{"with dash inside", "chr1-42", false},
		{"unicode", "knoten-ä", false},

		{"empty", "", true},
		{"leading dash", "-5", true},
		{"too long", strings.Repeat("a", 1025), true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateTrackID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric", "0", false},
		{"named", "HG002.hap1", false},
		{"leading dash allowed", "-x", false},

		{"empty", "", true},
		{"tab", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrackID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTrackID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
