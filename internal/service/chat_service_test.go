package service

import (
	"strings"
	"testing"

	"ai-chathub-be/internal/constant"
)

func TestNameFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain sentence",
			content: "What is the capital of France?",
			want:    "What is the capital of France?",
		},
		{
			name:    "empty content falls back to default",
			content: "",
			want:    constant.DefaultChatName,
		},
		{
			name:    "whitespace only falls back to default",
			content: "   \n\t  ",
			want:    constant.DefaultChatName,
		},
		{
			name:    "only first line is used",
			content: "Summarize this\nLine two\nLine three",
			want:    "Summarize this",
		},
		{
			name:    "leading whitespace trimmed",
			content: "  hello there",
			want:    "hello there",
		},
		{
			name:    "long content capped",
			content: strings.Repeat("a", 200),
			want:    strings.Repeat("a", constant.ChatNameMaxLen),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nameFromContent(tt.content)
			if got != tt.want {
				t.Errorf("nameFromContent(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestNameFromContentMultibyteCap(t *testing.T) {
	content := strings.Repeat("日", 100)
	got := nameFromContent(content)
	if runes := []rune(got); len(runes) != constant.ChatNameMaxLen {
		t.Errorf("expected %d runes, got %d", constant.ChatNameMaxLen, len(runes))
	}
}
