package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosUnknown(t *testing.T) {
	require.True(t, Pos(0).Unknown())
	require.False(t, Pos(1).Unknown())
}

func TestPositionString(t *testing.T) {
	require.Equal(t, "line 3", Position{Line: 3}.String())
	require.Equal(t, "test.lox:3", Position{Filename: "test.lox", Line: 3}.String())
}

func TestPositionIsValid(t *testing.T) {
	require.False(t, Position{Line: 0}.IsValid())
	require.True(t, Position{Line: 1}.IsValid())
}
