package order

import "testing"

func TestIsValid(t *testing.T) {
	for _, d := range []Direction{Asc, Desc} {
		if !d.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", d)
		}
	}
	for _, d := range []Direction{"", "ASC", "ascending", "up"} {
		if d.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", d)
		}
	}
}

func TestReverse(t *testing.T) {
	if Asc.Reverse() != Desc {
		t.Errorf("Asc.Reverse() = %q", Asc.Reverse())
	}
	if Desc.Reverse() != Asc {
		t.Errorf("Desc.Reverse() = %q", Desc.Reverse())
	}
}
