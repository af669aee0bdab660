package object

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "build/en/cv.pdf", want: "build/en/cv.pdf"},
		{name: "simple prefix", prefix: "root", key: "build/en/cv.pdf", want: "root/build/en/cv.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "build/en/cv.pdf", want: "root/build/en/cv.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/build/en/cv.pdf", want: "root/build/en/cv.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "build/en/cv.pdf", want: "root/sub/build/en/cv.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ApplyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("ApplyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestCleanKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "b1/en/default/cv.md", want: "b1/en/default/cv.md"},
		{key: "b1//en/./cv.md", want: "b1/en/cv.md"},
		{key: "b1\\en\\cv.md", want: "b1/en/cv.md"},
		{key: "../etc/passwd", wantErr: true},
		{key: "b1/../../x", wantErr: true},
		{key: "/abs/key", wantErr: true},
		{key: "  ", wantErr: true},
		{key: ".", wantErr: true},
	}
	for _, tt := range tests {
		got, err := CleanKey(tt.key)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("CleanKey(%q): expected ErrInvalidKey, got %v", tt.key, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("CleanKey(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
		}
	}
}

func TestCountingReader(t *testing.T) {
	t.Parallel()
	c := &CountingReader{R: strings.NewReader("hello world")}
	if _, err := io.Copy(io.Discard, c); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if c.N != 11 {
		t.Fatalf("expected 11 bytes, got %d", c.N)
	}
}
