package util

import "testing"

func TestUnescapeClanTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no markup", "Serral", "Serral"},
		{"tagged name", "&lt;ENCE&gt;<sp/>Serral", "<ENCE> Serral"},
		{"space token only", "a<sp/>b", "a b"},
		{"angle brackets only", "&lt;x&gt;", "<x>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UnescapeClanTag(tt.input)
			if result != tt.expected {
				t.Errorf("UnescapeClanTag(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatSupply(t *testing.T) {
	tests := []struct {
		name     string
		used     int32
		cap      int32
		expected string
	}{
		{"early game", 12, 15, "12/15"},
		{"maxed", 200, 200, "200/200"},
		{"zero", 0, 0, "0/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatSupply(tt.used, tt.cap)
			if result != tt.expected {
				t.Errorf("FormatSupply(%d, %d) = %q, want %q", tt.used, tt.cap, result, tt.expected)
			}
		})
	}
}

func TestFormatResources(t *testing.T) {
	result := FormatResources(450, 120)
	expected := "450 minerals, 120 gas"
	if result != expected {
		t.Errorf("FormatResources(450, 120) = %q, want %q", result, expected)
	}
}

func TestMapLink(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain title", "Abyssal Reef", "https://liquipedia.net/starcraft2/Abyssal_Reef"},
		{"file suffix", "Abyssal Reef.SC2Map", "https://liquipedia.net/starcraft2/Abyssal_Reef"},
		{"single word", "Acropolis", "https://liquipedia.net/starcraft2/Acropolis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapLink(tt.title)
			if result != tt.expected {
				t.Errorf("MapLink(%q) = %q, want %q", tt.title, result, tt.expected)
			}
		})
	}
}
