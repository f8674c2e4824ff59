package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestTokenGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "'class'", CLASS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
	require.Equal(t, "end of file", EOF.GoString())
}

func TestLookupKeyword(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok >= AND && tok <= WHILE
		val := LookupKeyword(tok.String())
		if expect {
			require.Equal(t, tok, val)
		} else {
			require.Equal(t, IDENT, val)
		}
	}
}

func TestLookupKeywordRejectsNonKeywordLexeme(t *testing.T) {
	require.Equal(t, IDENT, LookupKeyword("orchid"))
	require.Equal(t, IDENT, LookupKeyword(""))
}
