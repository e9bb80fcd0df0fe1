package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListNavigation(t *testing.T) {
	list, err := Lex("SELECT  /* x */ a , b")
	require.NoError(t, err)

	tok := list.Next()
	require.Equal(t, "SELECT", tok.Value)
	require.Equal(t, 1, list.Idx)

	tok = list.Next()
	require.Equal(t, "a", tok.Value)

	require.Equal(t, ",", list.PeekSignificant().Value)
	require.Equal(t, "a", list.Previous().Value)

	require.Nil(t, list.NextOfType(TypeKeyword))
	require.Equal(t, TypeOperator, list.Current().Type)

	tok = list.NextOfTypeAndValue(TypeOperator, ",")
	require.NotNil(t, tok)
	require.Equal(t, "b", list.Next().Value)
	require.Nil(t, list.Next())
	require.True(t, list.Done())
	require.Nil(t, list.Current())
}

func TestListRewindAndPeek(t *testing.T) {
	list, err := Lex("a b c")
	require.NoError(t, err)

	list.Rewind(-3)
	require.Equal(t, 0, list.Idx)
	require.Equal(t, "b", list.Peek(2).Value)
	require.Nil(t, list.Peek(-1))

	list.Rewind(100)
	require.Equal(t, list.Count, list.Idx)
	list.Advance()
	require.Equal(t, list.Count, list.Idx)

	require.Equal(t, "a b", Build(list.Slice(0, 3)))
	require.Nil(t, list.Slice(4, 2))
}
