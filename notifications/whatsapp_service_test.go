package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWhatsAppNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"kenyan number with plus", "+254712345678", true},
		{"one digit country code", "112345678", true},
		{"four digit country code with long subscriber", "1234123456789012345", true},
		{"formatted with spaces and dashes", "+44 7911 123-456", true},
		{"too short", "12345678", false},
		{"too long", "12341234567890123456", false},
		{"leading zero", "0712345678", false},
		{"empty", "", false},
		{"letters only", "not-a-number", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateWhatsAppNumber(tt.number))
		})
	}
}
