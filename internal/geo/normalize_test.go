package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"New Orleans", "new orleans"},
		{"  New   Orleans  ", "new orleans"},
		{"New Orleans, LA", "new orleans, la"},
		{"New Orleans ,LA", "new orleans, la"},
		{"St. Paul", "st paul"},
		{"Winston-Salem", "winston salem"},
		{"São Paulo", "são paulo"},
		{"QUÉBEC, QC", "québec, qc"},
		{"", ""},
		{" , , ", ""},
		{"Paris,", "paris"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"New Orleans, LA",
		"  St.   Louis , MO ",
		"tokyo",
		"Winston-Salem, NC",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
