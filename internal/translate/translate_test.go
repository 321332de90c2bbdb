// internal/translate/translate_test.go
package translate

import "testing"

func mustCode(t *testing.T, id int) Code {
	t.Helper()
	c, err := Lookup(id)
	if err != nil {
		t.Fatalf("lookup %d: %v", id, err)
	}
	return c
}

func TestTranslateStandard(t *testing.T) {
	c := mustCode(t, Standard)
	got := string(c.Translate([]byte("ATGGCCAAATAAGG")))
	if got != "MAK*" {
		t.Fatalf("want MAK*, got %q", got)
	}
}

func TestTranslateMitochondrial(t *testing.T) {
	// TGA is Trp and AGA a stop in the vertebrate mitochondrial code.
	c := mustCode(t, 2)
	if got := string(c.Translate([]byte("TGAAGA"))); got != "W*" {
		t.Fatalf("want W*, got %q", got)
	}
}

func TestAmbiguousCodons(t *testing.T) {
	c := mustCode(t, Standard)
	cases := map[string]byte{
		"CTN": 'L', // all four are Leu
		"GGR": 'G',
		"NNN": 'X',
		"ATN": 'X', // Ile or Met
		"A-G": 'X',
	}
	for codon, want := range cases {
		if got := c.Codon(codon[0], codon[1], codon[2]); got != want {
			t.Errorf("%s: want %c, got %c", codon, want, got)
		}
	}
}

func TestUnknownTable(t *testing.T) {
	if _, err := Lookup(7); err == nil {
		t.Fatalf("expected error for retired table 7")
	}
}
