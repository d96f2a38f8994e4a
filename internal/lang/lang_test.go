package lang

import "testing"

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "Go"},
		{"src/app.py", "Python"},
		{"component.TSX", "React TSX"},
		{"schema.SQL", "SQL"},
		{"README.md", "Markdown"},
		{"binary.exe", "Unknown"},
		{"Makefile", "Unknown"},
	}
	for _, tt := range tests {
		if got := FromPath(tt.path); got != tt.want {
			t.Errorf("FromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("handler.go") {
		t.Error("expected .go to be supported")
	}
	if IsSupported("image.png") {
		t.Error("expected .png to be unsupported")
	}
}
