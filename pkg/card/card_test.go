package card

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/model"
)

func TestInitial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii", "jane", "J"},
		{"already upper", "Jane", "J"},
		{"multibyte", "élodie", "É"},
		{"leading space kept", " jane", " "},
		{"digit", "9lives", "9"},
		{"sharp s expands", "ßen", "SS"},
		{"ligature expands", "ﬁona", "FI"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initial(tt.in); got != tt.want {
				t.Fatalf("Initial(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	got := Build(model.UserInfo{Name: "ada lovelace", Email: "ada@example.com"})
	want := Card{Initial: "A", Name: "ada lovelace", Email: "ada@example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("card mismatch (-want +got):\n%s", diff)
	}
	if got.Empty() || !Build(model.UserInfo{}).Empty() {
		t.Fatalf("unexpected Empty result")
	}
}
