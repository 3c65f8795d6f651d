package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"ana@example.com":  "a…@e….com",
		"A@b.co":           "a@b.co",
		"no-arroba":        "n…a",
		"ab":               "***",
		" User@Domain.io ": "u…@d….io",
	}
	for in, want := range cases {
		require.Equal(t, want, maskEmail(in), "input %q", in)
	}
}
