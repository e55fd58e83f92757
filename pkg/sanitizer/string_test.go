package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Maya  ", "Maya"},
		{"Camp   Wildwood", "Camp Wildwood"},
		{"\tArt Camp\n", "Art Camp"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := TrimAndNormalize(tt.in); got != tt.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeFriends(t *testing.T) {
	got := NormalizeFriends([]string{" Ada ", "", "Ben", "Ada", "  "})
	want := []string{"Ada", "Ben"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeFriends = %v, want %v", got, want)
	}

	if got := NormalizeFriends(nil); len(got) != 0 {
		t.Errorf("NormalizeFriends(nil) = %v, want empty", got)
	}
}

func TestNormalizeNotes(t *testing.T) {
	in := "bring lunch  \nsunscreen\t\n\n"
	want := "bring lunch\nsunscreen"
	if got := NormalizeNotes(in); got != want {
		t.Errorf("NormalizeNotes(%q) = %q, want %q", in, got, want)
	}
}
