package sequence

import (
	"fmt"
	"math/big"
)

// State содержит все, что нужно для восстановления генератора.
type State struct {
	Count     string `json:"count" yaml:"count"`           // счетчик в десятичной записи
	Alphabet  string `json:"alphabet" yaml:"alphabet"`     // символы алфавита
	MinLength int    `json:"min_length" yaml:"min_length"` // минимальная длина идентификатора
}

// Snapshot возвращает состояние генератора.
func (g *Generator) Snapshot() State {
	g.init()
	return State{
		Count:     g.counter.String(),
		Alphabet:  g.alphabet.String(),
		MinLength: g.minLength,
	}
}

// FromState восстанавливает генератор из состояния.
func FromState(s State) (*Generator, error) {
	count, err := ParseCount(s.Count)
	if err != nil {
		return nil, err
	}

	return New(
		WithSymbols(s.Alphabet),
		WithMinLength(s.MinLength),
		WithCount(count),
	)
}

// ParseCount разбирает десятичную запись неотрицательного счетчика.
func ParseCount(s string) (*big.Int, error) {
	count, ok := new(big.Int).SetString(s, 10)
	if !ok || count.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCount, s)
	}
	return count, nil
}

// Restore заменяет состояние генератора. При ошибке генератор не меняется.
func (g *Generator) Restore(s State) error {
	restored, err := FromState(s)
	if err != nil {
		return err
	}
	*g = *restored
	return nil
}
