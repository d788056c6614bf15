package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "lf_only",
			content: "a\nb\nc\n",
			want:    "a\r\nb\r\nc\r\n",
		},
		{
			name:    "already_crlf",
			content: "a\r\nb\r\n",
			want:    "a\r\nb\r\n",
		},
		{
			name:    "mixed_terminators",
			content: "a\nb\r\nc\rd",
			want:    "a\r\nb\r\nc\r\nd",
		},
		{
			name:    "lone_cr",
			content: "a\rb",
			want:    "a\r\nb",
		},
		{
			name:    "no_terminators",
			content: "abc",
			want:    "abc",
		},
		{
			name:    "empty",
			content: "",
			want:    "",
		},
		{
			name:    "consecutive_blank_lines",
			content: "a\n\n\nb",
			want:    "a\r\n\r\n\r\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCRLF(tt.content))
		})
	}
}

func TestNormalizeCRLF_Idempotent(t *testing.T) {
	once := NormalizeCRLF("a\nb\r\nc\rd\n")
	assert.Equal(t, once, NormalizeCRLF(once), "normalizing twice should be stable")
}
