package render_test

import (
	"testing"

	"github.com/dcernic/asm10/render"
)

func TestBase4(t *testing.T) {
	cases := []struct {
		v      int
		digits int
		want   string
	}{
		{0, 4, "aaaa"},
		{1, 4, "aaab"},
		{4, 4, "aaba"},
		{106, 4, "bccc"},
		{430, 5, "bccdc"},
	}
	for _, c := range cases {
		if got := render.Base4(c.v, c.digits); got != c.want {
			t.Errorf("Base4(%d, %d) = %q, want %q", c.v, c.digits, got, c.want)
		}
	}
}

func TestBase4Trimmed(t *testing.T) {
	cases := []struct {
		v    int
		want string
	}{
		{0, "a"},
		{5, "bb"},
		{12, "da"},
	}
	for _, c := range cases {
		if got := render.Base4Trimmed(c.v); got != c.want {
			t.Errorf("Base4Trimmed(%d) = %q, want %q", c.v, got, c.want)
		}
	}
}
