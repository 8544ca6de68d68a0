package stream

import (
	"encoding/json"
	"fmt"
)

// Frame types carried over the wire to the client and through Redis.
const (
	FrameToken = "token"
	FrameDone  = "done"
	FrameError = "error"
)

// Frame is one unit of an incremental chat response. Seq is assigned by the
// writer and is strictly increasing within a stream; subscribers use it to
// deduplicate the replay/live boundary on resume.
type Frame struct {
	Type    string `json:"type"`
	Seq     int64  `json:"seq"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

// Terminal reports whether no further frames follow this one.
func (f Frame) Terminal() bool {
	return f.Type == FrameDone || f.Type == FrameError
}

func (f Frame) encode() ([]byte, error) {
	return json.Marshal(f)
}

func decodeFrame(raw []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

// SSE renders the frame in server-sent-events framing.
func (f Frame) SSE() string {
	raw, _ := f.encode()
	return "data: " + string(raw) + "\n\n"
}
