package numeral

// DefaultSymbols содержит алфавит по умолчанию из 62 символов: цифры, строчные и прописные латинские буквы.
const DefaultSymbols = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const minBase = 2

var defaultAlphabet = MustAlphabet(DefaultSymbols)

// Alphabet описывает упорядоченный набор уникальных символов позиционной системы счисления.
// Символ с индексом 0 является нулевой цифрой, размер алфавита - основанием системы.
// Значение неизменяемо и может копироваться.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet создает алфавит из символов строки.
// Возвращает ErrDegenerateAlphabet, если различных символов меньше двух,
// и DuplicateSymbolError, если символ повторяется.
func NewAlphabet(symbols string) (Alphabet, error) {
	runes := []rune(symbols)
	index := make(map[rune]int, len(runes))

	var duplicate *DuplicateSymbolError
	for i, r := range runes {
		if first, ok := index[r]; ok {
			if duplicate == nil {
				duplicate = &DuplicateSymbolError{Symbol: r, First: first, Second: i}
			}
			continue
		}
		index[r] = i
	}

	if len(index) < minBase {
		return Alphabet{}, ErrDegenerateAlphabet
	}

	if duplicate != nil {
		return Alphabet{}, duplicate
	}

	return Alphabet{
		symbols: runes,
		index:   index,
	}, nil
}

// MustAlphabet создает алфавит и паникует, если символы не образуют корректный алфавит.
func MustAlphabet(symbols string) Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// DefaultAlphabet возвращает алфавит DefaultSymbols.
func DefaultAlphabet() Alphabet {
	return defaultAlphabet
}

// Base возвращает основание системы счисления.
func (a Alphabet) Base() int {
	return len(a.symbols)
}

// Zero возвращает нулевую цифру.
func (a Alphabet) Zero() rune {
	a.mustBeValid()
	return a.symbols[0]
}

// Symbol возвращает символ цифры с указанным значением.
func (a Alphabet) Symbol(digit int) rune {
	return a.symbols[digit]
}

// Position возвращает значение цифры, которую обозначает символ.
func (a Alphabet) Position(symbol rune) (int, bool) {
	pos, ok := a.index[symbol]
	return pos, ok
}

// Contains возвращает true, если все символы текста принадлежат алфавиту.
func (a Alphabet) Contains(text string) bool {
	for _, r := range text {
		if _, ok := a.index[r]; !ok {
			return false
		}
	}
	return true
}

// Equal возвращает true, если алфавиты состоят из одних и тех же символов в одном порядке.
func (a Alphabet) Equal(other Alphabet) bool {
	if len(a.symbols) != len(other.symbols) {
		return false
	}
	for i := range a.symbols {
		if a.symbols[i] != other.symbols[i] {
			return false
		}
	}
	return true
}

// IsZero возвращает true для нулевого значения Alphabet, которое не является корректным алфавитом.
func (a Alphabet) IsZero() bool {
	return len(a.symbols) == 0
}

// String возвращает символы алфавита в исходном порядке.
func (a Alphabet) String() string {
	return string(a.symbols)
}

func (a Alphabet) mustBeValid() {
	if len(a.symbols) < minBase {
		panic(ErrDegenerateAlphabet)
	}
}
