package judging

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello world\n", "hello world"},
		{"  1   2\t3 ", "1 2 3"},
		{"a\nb\nc", "a b c"},
		{"", ""},
		{"   \n\t ", ""},
		{"unchanged", "unchanged"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"a  b", " x\ny ", "", "single", "\t\t"}
	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", s, once, twice)
		}
	}
}
