package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my file (1).png", "my_file__1_.png"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"Ünïcode.txt", "_n_code.txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in))
	}
}
