package normalize

import "testing"

func TestTextEquivalence(t *testing.T) {
	tests := []struct {
		a string
		b string
	}{
		{"Καθημερινή", "καθημερινη"},
		{"Ταχυδρόμος", "ΤΑΧΥΔΡΟΜΟΣ"},
		{"Πρώτο Θέμα", "ΠΡΩΤΟ ΘΕΜΑ"},
		{"ΤΟ ΒΗΜΑ", "Το Βήμα"},
		{"Le Monde!", "le monde"},
		{"Ta Néa", "ta nea"},
		{"  Εστία  ", "εστια"},
	}

	for _, tt := range tests {
		if got, want := Text(tt.a), Text(tt.b); got != want {
			t.Errorf("Text(%q) = %q, Text(%q) = %q, expected equal", tt.a, got, tt.b, want)
		}
	}
}

func TestTextStripsPunctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Le Monde!", "le monde"},
		{"«Η Αυγή»", "η αυγη"},
		{"Sport-Day 24", "sportday 24"},
		{"a   b\tc", "a b c"},
		{"Ταχυδρόμος", "ταχυδρομοσ"},
	}

	for _, tt := range tests {
		if got := Text(tt.input); got != tt.expected {
			t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTextEmpty(t *testing.T) {
	if got := Text(""); got != "" {
		t.Errorf("Text(\"\") = %q, want empty", got)
	}
	if got := Text("   "); got != "" {
		t.Errorf("Text(blank) = %q, want empty", got)
	}
	if got := Text("!!!"); got != "" {
		t.Errorf("Text(punctuation only) = %q, want empty", got)
	}
}
