package models

import (
	"slices"
	"testing"
)

func TestModelNameForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw         string
		lower       string
		capitalized string
	}{
		{"user", "user", "User"},
		{"User", "user", "User"},
		{"userProfile", "userprofile", "UserProfile"},
		{"  post ", "post", "Post"},
		{"ÉCOLE", "école", "ÉCOLE"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n := NewModelName(tt.raw)
			if got := n.Lower(); got != tt.lower {
				t.Errorf("Lower() = %q, want %q", got, tt.lower)
			}
			if got := n.Capitalized(); got != tt.capitalized {
				t.Errorf("Capitalized() = %q, want %q", got, tt.capitalized)
			}
		})
	}
}

func TestNewModelName_NormalizesNFC(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent.
	decomposed := NewModelName("cafe\u0301")
	composed := NewModelName("caf\u00e9")
	if decomposed != composed {
		t.Errorf("NewModelName did not normalize: %q != %q", decomposed, composed)
	}
}

func TestProjectAnswers_ModelCount(t *testing.T) {
	t.Parallel()

	a := &ProjectAnswers{Models: []ModelName{"user", "post", "user"}}
	if got := a.ModelCount(); got != 3 {
		t.Errorf("ModelCount() = %d, want 3", got)
	}

	empty := &ProjectAnswers{}
	if got := empty.ModelCount(); got != 0 {
		t.Errorf("ModelCount() on empty answers = %d, want 0", got)
	}
}

func TestProjectAnswers_DuplicateModels(t *testing.T) {
	t.Parallel()

	t.Run("no_duplicates", func(t *testing.T) {
		a := &ProjectAnswers{Models: []ModelName{"user", "post"}}
		if dups := a.DuplicateModels(); len(dups) != 0 {
			t.Errorf("DuplicateModels() = %v, want empty", dups)
		}
	})

	t.Run("case_insensitive_duplicates", func(t *testing.T) {
		a := &ProjectAnswers{Models: []ModelName{"User", "post", "user", "USER", "Post"}}
		want := []string{"user", "post"}
		if dups := a.DuplicateModels(); !slices.Equal(dups, want) {
			t.Errorf("DuplicateModels() = %v, want %v", dups, want)
		}
	})
}
