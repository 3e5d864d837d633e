package language

import "testing"

func TestToISO3(t *testing.T) {
	cases := map[string]string{
		"ja":  "jpn",
		"JA":  "jpn",
		"id":  "ind",
		"ger": "deu",
		"jpn": "jpn",
		"xyz": "xyz",
		"q":   "und",
		"":    "und",
	}
	for input, want := range cases {
		if got := ToISO3(input); got != want {
			t.Fatalf("ToISO3(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("ja"); got != "Japanese" {
		t.Fatalf("unexpected display name: %q", got)
	}
	if got := DisplayName("ind"); got != "Indonesian" {
		t.Fatalf("unexpected display name: %q", got)
	}
	if got := DisplayName("qq"); got != "QQ" {
		t.Fatalf("unexpected fallback: %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("unexpected empty fallback: %q", got)
	}
}
