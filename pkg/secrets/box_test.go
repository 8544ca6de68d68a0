package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestSealOpenRoundTrip(t *testing.T) {
	box, err := NewBox(testKey)
	assert.NoError(t, err)

	tests := []string{
		"sk-proj-abc123",
		"",
		"a key with spaces and unicode ñ 日本語",
		strings.Repeat("x", 4096),
	}

	for _, secret := range tests {
		sealed, err := box.Seal(secret)
		assert.NoError(t, err)
		assert.NotEqual(t, secret, sealed)

		opened, err := box.Open(sealed)
		assert.NoError(t, err)
		assert.Equal(t, secret, opened)
	}
}

func TestSealIsNonDeterministic(t *testing.T) {
	box, _ := NewBox(testKey)

	a, _ := box.Seal("same secret")
	b, _ := box.Seal("same secret")
	assert.NotEqual(t, a, b)
}

func TestOpenRejectsGarbage(t *testing.T) {
	box, _ := NewBox(testKey)

	_, err := box.Open("not base64 at all !!!")
	assert.ErrorIs(t, err, ErrCiphertextInvalid)

	_, err = box.Open("dG9vc2hvcnQ=")
	assert.ErrorIs(t, err, ErrCiphertextInvalid)
}

func TestOpenRejectsWrongKey(t *testing.T) {
	box, _ := NewBox(testKey)
	other, _ := NewBox("0000000000000000000000000000000000000000000000000000000000000001")

	sealed, _ := box.Seal("secret")
	_, err := other.Open(sealed)
	assert.ErrorIs(t, err, ErrCiphertextInvalid)
}

func TestNewBoxRejectsBadKeys(t *testing.T) {
	_, err := NewBox("short")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = NewBox("zz68616e676520746869732070617373776f726420746f206120736563726574")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
