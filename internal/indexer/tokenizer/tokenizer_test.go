package tokenizer

import (
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"white cat", []string{"white", "cat"}},
		{"  fancy   collar ", []string{"fancy", "collar"}},
		{"Cat, cat!", []string{"Cat,", "cat!"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Split(tt.in), "input %q", tt.in)
	}
}

func TestIsValidWord(t *testing.T) {
	assert.True(t, IsValidWord("кот"))
	assert.True(t, IsValidWord("-dog"))
	assert.False(t, IsValidWord("do\x12g"))
	assert.False(t, IsValidWord("\t"))
}

func TestStopWords(t *testing.T) {
	sw, err := StopWordsFromText("and in  on and")
	require.NoError(t, err)
	assert.Equal(t, 3, sw.Len())
	assert.True(t, sw.Contains("in"))
	assert.False(t, sw.Contains("cat"))
	assert.Equal(t, []string{"and", "in", "on"}, sw.Words())

	_, err = NewStopWords([]string{"ok", "b\x01ad"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestSplitNoStop(t *testing.T) {
	sw, err := NewStopWords([]string{"and", "the"})
	require.NoError(t, err)

	words, err := sw.SplitNoStop("the white cat and the collar")
	require.NoError(t, err)
	assert.Equal(t, []string{"white", "cat", "collar"}, words)

	_, err = sw.SplitNoStop("white c\x02at")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
