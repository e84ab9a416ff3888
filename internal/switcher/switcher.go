// Package switcher переводит идентификаторы из одного алфавита в другой с сохранением порядкового номера.
package switcher

import (
	"fmt"
	"math/big"

	"github.com/nestjam/yap-sequencer/internal/numeral"
)

// Direction задает направление перевода.
type Direction int

const (
	// Forward переводит из исходного алфавита в целевой.
	Forward Direction = iota
	// Reverse переводит из целевого алфавита в исходный.
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Switcher хранит пару алфавитов и минимальные длины результата для каждого направления.
// Значение неизменяемо после создания. Нулевое значение непригодно, Switcher создается через New.
type Switcher struct {
	source          numeral.Alphabet
	target          numeral.Alphabet
	sourceMinLength int
	targetMinLength int
}

// Option определяет опцию настройки Switcher.
type Option func(*Switcher)

// WithSourceMinLength задает минимальную длину результата при переводе в исходный алфавит.
func WithSourceMinLength(n int) Option {
	return func(s *Switcher) {
		s.sourceMinLength = max(n, 0)
	}
}

// WithTargetMinLength задает минимальную длину результата при переводе в целевой алфавит.
func WithTargetMinLength(n int) Option {
	return func(s *Switcher) {
		s.targetMinLength = max(n, 0)
	}
}

// New создает Switcher для пары алфавитов. Нулевое значение Alphabet отклоняется с ErrDegenerateAlphabet.
func New(source, target numeral.Alphabet, options ...Option) (Switcher, error) {
	if source.IsZero() {
		return Switcher{}, fmt.Errorf("source alphabet: %w", numeral.ErrDegenerateAlphabet)
	}
	if target.IsZero() {
		return Switcher{}, fmt.Errorf("target alphabet: %w", numeral.ErrDegenerateAlphabet)
	}

	s := Switcher{
		source: source,
		target: target,
	}

	for _, opt := range options {
		opt(&s)
	}

	return s, nil
}

// MustNew создает Switcher и паникует, если один из алфавитов не задан.
func MustNew(source, target numeral.Alphabet, options ...Option) Switcher {
	s, err := New(source, target, options...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewFromSymbols создает Switcher, проверяя символы обоих алфавитов.
func NewFromSymbols(source, target string, options ...Option) (Switcher, error) {
	src, err := numeral.NewAlphabet(source)
	if err != nil {
		return Switcher{}, fmt.Errorf("source alphabet: %w", err)
	}

	dst, err := numeral.NewAlphabet(target)
	if err != nil {
		return Switcher{}, fmt.Errorf("target alphabet: %w", err)
	}

	return New(src, dst, options...)
}

// Source возвращает исходный алфавит.
func (s Switcher) Source() numeral.Alphabet {
	return s.source
}

// Target возвращает целевой алфавит.
func (s Switcher) Target() numeral.Alphabet {
	return s.target
}

// Convert декодирует text в алфавите, из которого ведется перевод,
// и кодирует результат в алфавите направления d.
func (s Switcher) Convert(text string, d Direction) (string, error) {
	from, _, _ := s.route(d)

	count, err := numeral.Decode(text, from)
	if err != nil {
		return "", err
	}

	return s.ConvertCount(count, d), nil
}

// ConvertCount записывает count в алфавите, в который ведется перевод в направлении d.
func (s Switcher) ConvertCount(count *big.Int, d Direction) string {
	_, to, minLength := s.route(d)
	return numeral.Encode(count, to, minLength)
}

// Forward переводит text из исходного алфавита в целевой.
func (s Switcher) Forward(text string) (string, error) {
	return s.Convert(text, Forward)
}

// Reverse переводит text из целевого алфавита в исходный.
func (s Switcher) Reverse(text string) (string, error) {
	return s.Convert(text, Reverse)
}

func (s Switcher) route(d Direction) (from, to numeral.Alphabet, minLength int) {
	if d == Reverse {
		return s.target, s.source, s.sourceMinLength
	}
	return s.source, s.target, s.targetMinLength
}
