package streamname

import (
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "spaces become underscores",
			input: "this is a test",
			want:  "this_is_a_test",
		},
		{
			name:  "control characters and trailing newlines",
			input: "this\x00is a-test\n\n",
			want:  "this_is_a-test__",
		},
		{
			name:  "one underscore per multi-byte rune",
			input: "intérnaçionalization",
			want:  "int_rna_ionalization",
		},
		{
			name:  "already clean",
			input: "ranger_web-access_log",
			want:  "ranger_web-access_log",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "path separators",
			input: "../etc/passwd",
			want:  "___etc_passwd",
		},
		{
			name:  "dots",
			input: "service.requests",
			want:  "service_requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizePreservesRuneCount(t *testing.T) {
	inputs := []string{
		"plain",
		"with spaces and\ttabs",
		"éçü",
		"mixed ascii and 日本語",
		"",
	}

	for _, in := range inputs {
		got := Sanitize(in)
		if utf8.RuneCountInString(got) != utf8.RuneCountInString(in) {
			t.Errorf("Sanitize(%q): rune count %d, want %d",
				in, utf8.RuneCountInString(got), utf8.RuneCountInString(in))
		}
	}
}

func TestSanitizeOutputAlphabet(t *testing.T) {
	got := Sanitize("weird \x01\x02 name / with * every ~ kind % of ^ junk")
	for _, r := range got {
		if !validRune(r) {
			t.Fatalf("Sanitize produced invalid rune %q in %q", r, got)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"this is a test",
		"intérnaçionalization",
		"already_clean-name",
		"\n\n\n",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitizeCleanNameReturnsSameString(t *testing.T) {
	in := "clean_stream-1"
	if got := Sanitize(in); got != in {
		t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
	}
}
