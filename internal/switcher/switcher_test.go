package switcher

import (
	"math/big"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/yap-sequencer/internal/numeral"
	"github.com/nestjam/yap-sequencer/internal/sequence"
)

func mustNew(t *testing.T, source, target string, options ...Option) Switcher {
	t.Helper()

	s, err := NewFromSymbols(source, target, options...)
	require.NoError(t, err)

	return s
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		target  string
		options []Option
		text    string
		dir     Direction
		want    string
	}{
		{name: "single digit", source: "0123456789", target: "01", text: "1", want: "1"},
		{name: "decimal to binary", source: "0123456789", target: "01", text: "100", want: "1100100"},
		{name: "binary to decimal", source: "01", target: "0123456789", text: "1100100", want: "100"},
		{
			name:    "target min length",
			source:  "abcdefg",
			target:  "abcdefghijklmnop",
			options: []Option{WithTargetMinLength(10)},
			text:    "a",
			want:    "aaaaaaaaaa",
		},
		{
			name:    "source min length",
			source:  "0123456789",
			target:  "abcdefghij",
			options: []Option{WithSourceMinLength(10)},
			text:    "a",
			dir:     Reverse,
			want:    "0000000000",
		},
		{
			name:    "default to base three",
			source:  numeral.DefaultSymbols,
			target:  "abc",
			options: []Option{WithTargetMinLength(8), WithSourceMinLength(2)},
			text:    "1C",
			want:    "aaabacab",
		},
		{
			name:    "base three to default",
			source:  numeral.DefaultSymbols,
			target:  "abc",
			options: []Option{WithTargetMinLength(8), WithSourceMinLength(2)},
			text:    "aaabacab",
			dir:     Reverse,
			want:    "1C",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sut := mustNew(t, tt.source, tt.target, tt.options...)

			got, err := sut.Convert(tt.text, tt.dir)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid symbol in source", func(t *testing.T) {
		sut := mustNew(t, "0123456789", "01")

		_, err := sut.Forward("12x")

		var symbolErr *numeral.InvalidSymbolError
		require.ErrorAs(t, err, &symbolErr)
		assert.Equal(t, 'x', symbolErr.Symbol)
		assert.Equal(t, 2, symbolErr.Offset)
	})

	t.Run("source symbol is invalid in reverse", func(t *testing.T) {
		sut := mustNew(t, "0123456789", "abcdefghij")

		_, err := sut.Reverse("5")

		assert.ErrorIs(t, err, numeral.ErrInvalidSymbol)
	})
}

func TestRoundTrip(t *testing.T) {
	sut := mustNew(t, "0123456789", "abcdefghij")

	for i := 0; i < 100; i++ {
		text := strconv.Itoa(i)

		forward, err := sut.Forward(text)
		require.NoError(t, err)

		got, err := sut.Reverse(forward)
		require.NoError(t, err)

		require.Equal(t, text, got)
	}
}

func TestConvertGeneratorOutput(t *testing.T) {
	sut := mustNew(t, "0123456789abcdef", "0123456789")
	g := sequence.MustNew(sequence.WithSymbols("0123456789abcdef"))

	for i := 0; i < 1000; i++ {
		g.Increment()

		got, err := sut.Forward(g.Current())

		require.NoError(t, err)
		require.Equal(t, g.Count().String(), got)
	}
}

func TestConvertCount(t *testing.T) {
	sut := mustNew(t, numeral.DefaultSymbols, "abc", WithTargetMinLength(8), WithSourceMinLength(2))

	assert.Equal(t, "aaabacab", sut.ConvertCount(big.NewInt(100), Forward))
	assert.Equal(t, "1C", sut.ConvertCount(big.NewInt(100), Reverse))
	assert.Equal(t, "aaaaaaaa", sut.ConvertCount(big.NewInt(0), Forward))
}

func TestNewFromSymbols(t *testing.T) {
	_, err := NewFromSymbols("0", "01")
	assert.ErrorIs(t, err, numeral.ErrDegenerateAlphabet)
	assert.ErrorContains(t, err, "source alphabet")

	_, err = NewFromSymbols("01", "0110")
	assert.ErrorIs(t, err, numeral.ErrDuplicateSymbol)
	assert.ErrorContains(t, err, "target alphabet")
}

func TestNew(t *testing.T) {
	t.Run("zero alphabet is rejected", func(t *testing.T) {
		var zero numeral.Alphabet

		_, err := New(zero, numeral.DefaultAlphabet())
		assert.ErrorIs(t, err, numeral.ErrDegenerateAlphabet)
		assert.ErrorContains(t, err, "source alphabet")

		_, err = New(numeral.DefaultAlphabet(), zero)
		assert.ErrorIs(t, err, numeral.ErrDegenerateAlphabet)
		assert.ErrorContains(t, err, "target alphabet")
	})

	t.Run("must new panics on zero alphabet", func(t *testing.T) {
		assert.Panics(t, func() { _ = MustNew(numeral.Alphabet{}, numeral.DefaultAlphabet()) })
	})

	t.Run("valid alphabets", func(t *testing.T) {
		sut, err := New(numeral.MustAlphabet("01"), numeral.MustAlphabet("abc"))
		require.NoError(t, err)

		got, err := sut.Forward("101")

		require.NoError(t, err)
		assert.Equal(t, "bc", got)
	})
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "reverse", Reverse.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
