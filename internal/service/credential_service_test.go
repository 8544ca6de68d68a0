package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{
			name:   "short secret fully masked",
			secret: "abc123",
			want:   "******",
		},
		{
			name:   "exactly eight chars fully masked",
			secret: "12345678",
			want:   "********",
		},
		{
			name:   "long secret keeps edges",
			secret: "sk-proj-abcdef1234",
			want:   "sk-p****1234",
		},
		{
			name:   "empty secret",
			secret: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSecret(tt.secret))
		})
	}
}

func TestMaskSecretNeverLeaksMiddle(t *testing.T) {
	secret := "sk-ant-REDACTED"
	masked := maskSecret(secret)
	assert.NotContains(t, masked, "verysecretmiddlepart")
	assert.True(t, strings.Contains(masked, "****"))
}
