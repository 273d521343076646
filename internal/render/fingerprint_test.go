package render

import "testing"

func TestFingerprint_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		// Empty input hashes to the bare seed.
		{"empty", "", "0000000000001505"},
		{"single_byte", "a", "000000000002b606"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Fingerprint(tc.input); got != tc.want {
				t.Errorf("Fingerprint(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestFingerprint_Format(t *testing.T) {
	t.Parallel()

	got := Fingerprint("filing readiness report")
	if len(got) != 16 {
		t.Fatalf("checksum length = %d, want 16", len(got))
	}
	for _, r := range got {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("checksum %q contains non-hex rune %q", got, r)
		}
	}
}

// TestFingerprint_SingleCharSensitivity checks that changing one byte
// anywhere in the input changes the checksum.
func TestFingerprint_SingleCharSensitivity(t *testing.T) {
	t.Parallel()

	base := "The entity is broadly ready to file."
	ref := Fingerprint(base)
	for i := range base {
		mutated := base[:i] + "#" + base[i+1:]
		if Fingerprint(mutated) == ref {
			t.Errorf("mutation at byte %d did not change the checksum", i)
		}
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	markup := "<article>ready</article>"
	sum := Fingerprint(markup)
	if !Verify(markup, sum) {
		t.Fatal("Verify rejected a matching pair")
	}
	if Verify(markup+" ", sum) {
		t.Fatal("Verify accepted altered markup")
	}
	if Verify(markup, "deadbeefdeadbeef") {
		t.Fatal("Verify accepted a wrong checksum")
	}
}
