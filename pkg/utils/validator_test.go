package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProjectText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "alphanumeric with spaces accepted",
			text: "2X00000 New Project",
		},
		{
			name: "single code accepted",
			text: "NRF2025",
		},
		{
			name:    "empty text rejected",
			text:    "",
			wantErr: true,
		},
		{
			name:    "hangul rejected",
			text:    "2X00000 새프로젝트",
			wantErr: true,
		},
		{
			name:    "punctuation rejected",
			text:    "NRF-2025",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectText(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("reviewer@lab.example.org"))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "bench supplies", SanitizeString("bench\x00 supplies\x1f"))
}
