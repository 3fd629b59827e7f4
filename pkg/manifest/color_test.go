// SPDX-License-Identifier: MPL-2.0

package manifest

import "testing"

func TestStripColors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "Hello", "Hello"},
		{"single span", "|cFFD700Gold|r Addon", "Gold Addon"},
		{"lowercase hex", "|cff00aaBlue|r", "Blue"},
		{"two spans stay separate", "|c00FF00A|r and |cFF0000B|r", "A and B"},
		{"unclosed span is literal", "|cFFFFFFNever closed", "|cFFFFFFNever closed"},
		{"short color code is literal", "|cFFFFText|r", "|cFFFFText|r"},
		{"non-hex color code is literal", "|cZZZZZZText|r", "|cZZZZZZText|r"},
		{"empty inner text", "Pre|c123456|rPost", "PrePost"},
		{"terminator without opener", "Just|r text", "Just|r text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripColors(tt.in); got != tt.want {
				t.Errorf("StripColors(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripColors_IdempotentWithoutMarkup(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "Plain", "Pipes | but no codes", "|r|r", "Harvest Map: 3.0"} {
		once := StripColors(s)
		if once != s {
			t.Errorf("StripColors(%q) = %q, want input unchanged", s, once)
		}
		if twice := StripColors(once); twice != once {
			t.Errorf("StripColors(StripColors(%q)) = %q, want %q", s, twice, once)
		}
	}
}
