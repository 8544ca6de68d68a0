package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{name: "token", frame: Frame{Type: FrameToken, Seq: 3, Content: "hello "}},
		{name: "done", frame: Frame{Type: FrameDone, Seq: 42}},
		{name: "error", frame: Frame{Type: FrameError, Seq: 7, Message: "upstream error: rate limited"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.frame.encode()
			assert.NoError(t, err)

			decoded, err := decodeFrame(raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.frame, decoded)
		})
	}
}

func TestFrameTerminal(t *testing.T) {
	assert.False(t, Frame{Type: FrameToken}.Terminal())
	assert.True(t, Frame{Type: FrameDone}.Terminal())
	assert.True(t, Frame{Type: FrameError}.Terminal())
}

func TestFrameSSE(t *testing.T) {
	f := Frame{Type: FrameToken, Seq: 1, Content: "hi"}
	sse := f.SSE()

	assert.Contains(t, sse, "data: ")
	assert.Contains(t, sse, `"type":"token"`)
	assert.Contains(t, sse, `"content":"hi"`)
	assert.True(t, len(sse) > 4 && sse[len(sse)-2:] == "\n\n")
}

func TestDecodeFrameRejectsGarbage(t *testing.T) {
	_, err := decodeFrame([]byte("{not json"))
	assert.Error(t, err)
}
