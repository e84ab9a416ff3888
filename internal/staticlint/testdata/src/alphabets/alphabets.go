package alphabets

import (
	"numeral"
	"sequence"
)

const hex = "0123456789abcdef"

var (
	zero  = numeral.Alphabet{} // want "zero value alphabet can not encode ids"
	short = numeral.MustAlphabet("a") // want `invalid alphabet "a": alphabet must contain at least 2 distinct symbols`
	dup   = numeral.MustAlphabet("abca") // want `invalid alphabet "abca": duplicate symbol 'a' at positions 0 and 3`
	good  = numeral.MustAlphabet(hex)
)

func options(symbols string) []sequence.Option {
	return []sequence.Option{
		sequence.WithSymbols(symbols),
		sequence.WithSymbols("01"),
		sequence.WithSymbols(""), // want `invalid alphabet "": alphabet must contain at least 2 distinct symbols`
	}
}

func alphabet() (numeral.Alphabet, error) {
	return numeral.NewAlphabet(hex + "a") // want `invalid alphabet "0123456789abcdefa": duplicate symbol 'a' at positions 10 and 16`
}
