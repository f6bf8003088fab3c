package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"  ":                    "",
		"ana@example.com":       "a***@e***.com",
		"a@b.io":                "a@b.io",
		"John@Mail.Example.org": "J***@M***.Example.org",
		"abc":                   "***",
		"noatsign":              "n***n",
		"@example.com":          "@***m",
	}
	for in, want := range cases {
		require.Equal(t, want, MaskEmail(in), "input %q", in)
	}
}
