package url

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "http scheme unchanged", input: "http://example.com", want: "http://example.com"},
		{name: "https scheme unchanged", input: "https://example.com", want: "https://example.com"},
		{name: "file scheme unchanged", input: "file:///path/to/file.html", want: "file:///path/to/file.html"},
		{name: "about scheme unchanged", input: "about:blank", want: "about:blank"},
		{name: "domain gets https", input: "example.com", want: "https://example.com"},
		{name: "domain with path gets https", input: "example.com/path", want: "https://example.com/path"},
		{name: "localhost with port", input: "localhost:8080", want: "https://localhost:8080"},
		{name: "search query unchanged", input: "hello world", want: "hello world"},
		{name: "single word unchanged", input: "golang", want: "golang"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_IPAddressGetsHTTPByDefault(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tailnet ipv4", input: "100.64.0.10", want: "http://100.64.0.10"},
		{name: "tailnet ipv4 with port", input: "100.64.0.10:8080", want: "http://100.64.0.10:8080"},
		{name: "ipv4 with path", input: "100.64.0.10/api", want: "http://100.64.0.10/api"},
		{name: "ipv6 bracketed", input: "[::1]:3000", want: "http://[::1]:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty string", input: "", want: false},
		{name: "https URL", input: "https://example.com", want: true},
		{name: "scheme without dot", input: "https://x", want: true},
		{name: "about URL", input: "about:blank", want: true},
		{name: "domain", input: "example.com", want: true},
		{name: "domain with path", input: "go.dev/doc/effective_go", want: true},
		{name: "search query", input: "hello world", want: false},
		{name: "space before domain", input: "two words.com", want: false},
		{name: "single word", input: "hello", want: false},
		{name: "leading dot", input: ".hidden", want: false},
		{name: "trailing dot", input: "trailing.", want: false},
		{name: "localhost", input: "localhost", want: true},
		{name: "localhost with port", input: "localhost:5173", want: true},
		{name: "localhost with path", input: "localhost/api/v1", want: true},
		{name: "localhostevil.com is a domain", input: "localhostevil.com", want: true},
		{name: "ipv4", input: "127.0.0.1", want: true},
		{name: "ipv4 with port", input: "100.64.0.10:3000", want: true},
		{name: "ipv6 bracketed", input: "[::1]", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LooksLikeURL(tt.input)
			if got != tt.want {
				t.Errorf("LooksLikeURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
