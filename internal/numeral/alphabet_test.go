package numeral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlphabet(t *testing.T) {
	t.Run("valid alphabets", func(t *testing.T) {
		tests := []struct {
			name    string
			symbols string
			base    int
			zero    rune
		}{
			{name: "binary", symbols: "01", base: 2, zero: '0'},
			{name: "letters", symbols: "abc", base: 3, zero: 'a'},
			{name: "default", symbols: DefaultSymbols, base: 62, zero: '0'},
			{name: "multibyte symbols", symbols: "αβγδ", base: 4, zero: 'α'},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := NewAlphabet(tt.symbols)

				require.NoError(t, err)
				assert.Equal(t, tt.base, got.Base())
				assert.Equal(t, tt.zero, got.Zero())
				assert.Equal(t, tt.symbols, got.String())
			})
		}
	})

	t.Run("degenerate alphabets", func(t *testing.T) {
		for _, symbols := range []string{"", "a", "aaaa"} {
			_, err := NewAlphabet(symbols)

			assert.ErrorIs(t, err, ErrDegenerateAlphabet, symbols)
		}
	})

	t.Run("duplicate symbol", func(t *testing.T) {
		_, err := NewAlphabet("abcb")

		require.ErrorIs(t, err, ErrDuplicateSymbol)
		var dup *DuplicateSymbolError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 'b', dup.Symbol)
		assert.Equal(t, 1, dup.First)
		assert.Equal(t, 3, dup.Second)
	})

	t.Run("must alphabet panics on invalid symbols", func(t *testing.T) {
		assert.Panics(t, func() { _ = MustAlphabet("x") })
	})
}

func TestAlphabet(t *testing.T) {
	a := MustAlphabet("xyz")

	t.Run("position of symbol", func(t *testing.T) {
		pos, ok := a.Position('z')

		assert.True(t, ok)
		assert.Equal(t, 2, pos)

		_, ok = a.Position('q')
		assert.False(t, ok)
	})

	t.Run("symbol of digit", func(t *testing.T) {
		assert.Equal(t, 'y', a.Symbol(1))
	})

	t.Run("contains text", func(t *testing.T) {
		assert.True(t, a.Contains("zyx"))
		assert.True(t, a.Contains(""))
		assert.False(t, a.Contains("xa"))
	})

	t.Run("equal", func(t *testing.T) {
		assert.True(t, a.Equal(MustAlphabet("xyz")))
		assert.False(t, a.Equal(MustAlphabet("zyx")))
		assert.False(t, a.Equal(MustAlphabet("xy")))
	})

	t.Run("zero value", func(t *testing.T) {
		var zero Alphabet

		assert.True(t, zero.IsZero())
		assert.False(t, a.IsZero())
		assert.Panics(t, func() { _ = zero.Zero() })
	})

	t.Run("default alphabet", func(t *testing.T) {
		assert.Equal(t, DefaultSymbols, DefaultAlphabet().String())
	})
}
