package scene

import (
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"next-week", "Next Week"},
		{"cornell_box", "Cornell Box"},
		{"random", "Random"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestList(t *testing.T) {
	scenes := List()
	names := Names()
	if len(scenes) != 4 || len(names) != len(scenes) {
		t.Fatalf("Expected 4 scenes, got %d infos and %d names", len(scenes), len(names))
	}

	for i, info := range scenes {
		if info.ID != names[i] {
			t.Errorf("Scene %d: ID %q does not match name %q", i, info.ID, names[i])
		}
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("Scene %q is missing its display name or description", info.ID)
		}
	}

	if scenes[2].DisplayName != "Next Week" {
		t.Errorf("Expected display name %q, got %q", "Next Week", scenes[2].DisplayName)
	}
}
