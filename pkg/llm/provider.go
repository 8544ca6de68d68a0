package llm

import (
	"context"
	"errors"
	"io"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role          string // "user", "assistant", "system"
	Content       string
	AttachmentURL string // optional public URL of an uploaded attachment
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Stream is an open token stream from an upstream model. Recv returns the
// next text delta in upstream order, and io.EOF once the model is done.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// StreamProvider defines the contract for any LLM backend
type StreamProvider interface {
	// ChatStream opens a streaming completion for a chat history
	ChatStream(ctx context.Context, history []Message, options ...Option) (Stream, error)

	// Chat sends a chat history to the model and returns the full response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

// Collect drains a stream into the full response text. Providers use it to
// implement Chat on top of ChatStream.
func Collect(s Stream) (string, error) {
	defer s.Close()

	var out []byte
	for {
		delta, err := s.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return string(out), nil
			}
			return string(out), err
		}
		out = append(out, delta...)
	}
}

// NormalizeRole maps non-standard role labels to the common set.
func NormalizeRole(role string) string {
	if role == "model" {
		return "assistant"
	}
	return role
}
