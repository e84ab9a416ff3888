package numeral

import (
	"errors"
	"fmt"
)

// Ошибки кодирования и декодирования.
var (
	ErrInvalidSymbol      = errors.New("invalid symbol")                                  // символ отсутствует в алфавите
	ErrDegenerateAlphabet = errors.New("alphabet must contain at least 2 distinct symbols") // алфавит короче двух символов
	ErrDuplicateSymbol    = errors.New("duplicate symbol")                                // символ повторяется в алфавите
	ErrOverflow           = errors.New("value overflows uint64")                          // значение не помещается в uint64
)

// InvalidSymbolError определяет ошибку, когда текст содержит символ вне алфавита.
type InvalidSymbolError struct {
	Symbol rune // недопустимый символ
	Offset int  // позиция символа в тексте (в символах, не в байтах)
}

// Error возвращает текст ошибки.
func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%v %q at position %d", ErrInvalidSymbol, e.Symbol, e.Offset)
}

// Unwrap возвращает ErrInvalidSymbol.
func (e *InvalidSymbolError) Unwrap() error {
	return ErrInvalidSymbol
}

// DuplicateSymbolError определяет ошибку, когда символ встречается в алфавите более одного раза.
type DuplicateSymbolError struct {
	Symbol rune // повторяющийся символ
	First  int  // позиция первого вхождения
	Second int  // позиция повторного вхождения
}

// Error возвращает текст ошибки.
func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("%v %q at positions %d and %d", ErrDuplicateSymbol, e.Symbol, e.First, e.Second)
}

// Unwrap возвращает ErrDuplicateSymbol.
func (e *DuplicateSymbolError) Unwrap() error {
	return ErrDuplicateSymbol
}
