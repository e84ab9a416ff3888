package numeral

type Alphabet struct {
	symbols []rune
}

func NewAlphabet(symbols string) (Alphabet, error) {
	return Alphabet{symbols: []rune(symbols)}, nil
}

func MustAlphabet(symbols string) Alphabet {
	a, _ := NewAlphabet(symbols)
	return a
}
