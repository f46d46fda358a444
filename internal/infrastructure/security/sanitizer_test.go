package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

func TestSanitizeCleansResponses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain command", raw: "ls -la", want: "ls -la"},
		{name: "surrounding whitespace", raw: "  \n ls -la \n", want: "ls -la"},
		{name: "fenced with language", raw: "```bash\nls -la\n```", want: "ls -la"},
		{name: "fenced without language", raw: "```\ngit status\n```", want: "git status"},
		{name: "inline fence", raw: "```pwd```", want: "pwd"},
		{name: "control characters", raw: "ls\x00 -la\x1b\x07", want: "ls -la"},
		{name: "keeps tabs", raw: "printf 'a\tb'", want: "printf 'a\tb'"},
		{name: "carriage returns", raw: "echo hi\r\n", want: "echo hi"},
		{name: "bidi override", raw: "ls \u202e-la", want: "ls -la"},
		{name: "full-width letters folded", raw: "ｒｍ -rf /", want: "rm -rf /"},
		{name: "multi-line within limit", raw: "cd src &&\nmake &&\nmake test", want: "cd src &&\nmake &&\nmake test"},
	}

	sanitizer := NewSanitizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitizer.Sanitize(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeRejectsSuspiciousShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "too long", raw: strings.Repeat("a", domain.MaxCommandLength+1)},
		{name: "too many lines", raw: "echo 1\necho 2\n\necho 3\necho 4"},
		{name: "empty after cleaning", raw: "```\n```"},
		{name: "only control characters", raw: "\x00\x01"},
	}

	sanitizer := NewSanitizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sanitizer.Sanitize(tt.raw)
			require.Error(t, err)
			require.True(t, errors.Is(err, domain.ErrResponseRejected), "error %v should wrap ErrResponseRejected", err)
		})
	}
}

func TestSanitizeLengthLimitAppliesAfterCleaning(t *testing.T) {
	sanitizer := NewSanitizer()
	raw := "```bash\n" + strings.Repeat("a", domain.MaxCommandLength) + "\n```"

	got, err := sanitizer.Sanitize(raw)
	require.NoError(t, err)
	require.Len(t, got, domain.MaxCommandLength)
}

func TestSanitizeBlankLinesDoNotCount(t *testing.T) {
	sanitizer := NewSanitizer()
	_, err := sanitizer.Sanitize("echo 1\n\n\n\necho 2\n   \necho 3")
	require.NoError(t, err)
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"ls -la",
		"```bash\nls -la\n```",
		"  ```sh\n  cd /tmp && ls  \n```  ",
		"``````pwd -P```",
		"echo \x1bhi\x7f",
		"ｅｃｈｏ ｈｉ",
		"e\x00\u0301cho",
	}

	sanitizer := NewSanitizer()
	for _, input := range inputs {
		once, err := sanitizer.Sanitize(input)
		require.NoError(t, err, input)
		twice, err := sanitizer.Sanitize(once)
		require.NoError(t, err, input)
		require.Equal(t, once, twice, "sanitize not idempotent for %q", input)
	}
}
