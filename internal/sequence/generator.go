// Package sequence выдает последовательные идентификаторы, записывая значение счетчика
// в позиционной системе счисления с произвольным алфавитом.
//
// Generator не синхронизирован: при использовании из нескольких горутин доступ к нему
// должен упорядочивать вызывающий код.
package sequence

import (
	"errors"
	"math/big"

	"github.com/nestjam/yap-sequencer/internal/numeral"
)

// ErrInvalidCount возвращается, если сохраненное значение счетчика не является неотрицательным целым числом.
var ErrInvalidCount = errors.New("invalid count")

var one = big.NewInt(1)

// Generator хранит счетчик, алфавит и минимальную длину идентификатора.
// Нулевое значение готово к использованию: алфавит по умолчанию, счетчик равен нулю.
type Generator struct {
	counter   *big.Int
	alphabet  numeral.Alphabet
	minLength int
}

type config struct {
	alphabet  numeral.Alphabet
	minLength int
	count     *big.Int
	text      string
	hasText   bool
}

// Option определяет опцию настройки генератора.
type Option func(*config) error

// WithAlphabet задает алфавит идентификаторов.
func WithAlphabet(a numeral.Alphabet) Option {
	return func(c *config) error {
		if a.IsZero() {
			return numeral.ErrDegenerateAlphabet
		}
		c.alphabet = a
		return nil
	}
}

// WithSymbols задает алфавит идентификаторов строкой символов.
func WithSymbols(symbols string) Option {
	return func(c *config) error {
		a, err := numeral.NewAlphabet(symbols)
		if err != nil {
			return err
		}
		c.alphabet = a
		return nil
	}
}

// WithMinLength задает минимальную длину идентификатора.
func WithMinLength(n int) Option {
	return func(c *config) error {
		c.minLength = max(n, 0)
		return nil
	}
}

// WithCount задает начальное значение счетчика.
func WithCount(count *big.Int) Option {
	return func(c *config) error {
		c.count = clamp(count)
		return nil
	}
}

// WithUint64 задает начальное значение счетчика.
func WithUint64(count uint64) Option {
	return func(c *config) error {
		c.count = new(big.Int).SetUint64(count)
		return nil
	}
}

// WithText задает начальное значение счетчика идентификатором в алфавите генератора.
// Опция применяется после остальных опций, поэтому порядок относительно WithAlphabet не важен.
func WithText(text string) Option {
	return func(c *config) error {
		c.text = text
		c.hasText = true
		return nil
	}
}

// New создает генератор с алфавитом по умолчанию и счетчиком, равным нулю.
func New(options ...Option) (*Generator, error) {
	c := config{
		alphabet: numeral.DefaultAlphabet(),
		count:    new(big.Int),
	}

	for _, opt := range options {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}

	g := &Generator{
		counter:   c.count,
		alphabet:  c.alphabet,
		minLength: c.minLength,
	}

	if c.hasText {
		if err := g.JumpToText(c.text); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// MustNew создает генератор и паникует при ошибке в опциях.
func MustNew(options ...Option) *Generator {
	g, err := New(options...)
	if err != nil {
		panic(err)
	}
	return g
}

// Advance увеличивает счетчик на by.
func (g *Generator) Advance(by uint64) {
	g.init()
	if by == 1 {
		g.counter.Add(g.counter, one)
		return
	}
	g.counter.Add(g.counter, new(big.Int).SetUint64(by))
}

// Increment увеличивает счетчик на единицу.
func (g *Generator) Increment() {
	g.Advance(1)
}

// Retreat уменьшает счетчик на by. Счетчик не опускается ниже нуля.
func (g *Generator) Retreat(by uint64) {
	g.init()
	g.counter.Sub(g.counter, new(big.Int).SetUint64(by))
	if g.counter.Sign() < 0 {
		g.counter.SetInt64(0)
	}
}

// Decrement уменьшает счетчик на единицу.
func (g *Generator) Decrement() {
	g.Retreat(1)
}

// JumpTo устанавливает счетчик в значение count. Отрицательное значение считается нулем.
func (g *Generator) JumpTo(count *big.Int) {
	g.init()
	g.counter.Set(clamp(count))
}

// Skip устанавливает счетчик в значение n, пропуская первые n идентификаторов.
func (g *Generator) Skip(n uint64) {
	g.init()
	g.counter.SetUint64(n)
}

// JumpToText устанавливает счетчик в значение, которое обозначает text в алфавите генератора.
// При ошибке счетчик не меняется.
func (g *Generator) JumpToText(text string) error {
	g.init()
	count, err := numeral.Decode(text, g.alphabet)
	if err != nil {
		return err
	}
	g.counter = count
	return nil
}

// Current возвращает текущий идентификатор.
func (g *Generator) Current() string {
	g.init()
	return numeral.Encode(g.counter, g.alphabet, g.minLength)
}

// String возвращает текущий идентификатор.
func (g *Generator) String() string {
	return g.Current()
}

// Take возвращает текущий идентификатор и переходит к следующему.
func (g *Generator) Take() string {
	id := g.Current()
	g.Increment()
	return id
}

// TakeN возвращает n последовательных идентификаторов, начиная с текущего, и сдвигает счетчик на n.
func (g *Generator) TakeN(n int) []string {
	if n <= 0 {
		return nil
	}

	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = g.Take()
	}
	return ids
}

// Nth возвращает идентификатор с порядковым номером n, не меняя счетчик.
func (g *Generator) Nth(n *big.Int) string {
	g.init()
	return numeral.Encode(n, g.alphabet, g.minLength)
}

// Index возвращает порядковый номер идентификатора, не меняя счетчик.
func (g *Generator) Index(text string) (*big.Int, error) {
	g.init()
	return numeral.Decode(text, g.alphabet)
}

// Len возвращает длину текущего идентификатора.
func (g *Generator) Len() int {
	g.init()
	return numeral.Length(g.counter, g.alphabet, g.minLength)
}

// Count возвращает копию счетчика.
func (g *Generator) Count() *big.Int {
	g.init()
	return new(big.Int).Set(g.counter)
}

// Alphabet возвращает алфавит генератора.
func (g *Generator) Alphabet() numeral.Alphabet {
	g.init()
	return g.alphabet
}

// MinLength возвращает минимальную длину идентификатора.
func (g *Generator) MinLength() int {
	return g.minLength
}

// SetAlphabet меняет алфавит, не сбрасывая счетчик.
func (g *Generator) SetAlphabet(a numeral.Alphabet) error {
	if a.IsZero() {
		return numeral.ErrDegenerateAlphabet
	}
	g.alphabet = a
	return nil
}

// SetSymbols меняет алфавит на алфавит из символов строки, не сбрасывая счетчик.
func (g *Generator) SetSymbols(symbols string) error {
	a, err := numeral.NewAlphabet(symbols)
	if err != nil {
		return err
	}
	g.alphabet = a
	return nil
}

// SetMinLength меняет минимальную длину идентификатора, не сбрасывая счетчик.
func (g *Generator) SetMinLength(n int) {
	g.minLength = max(n, 0)
}

// Clone возвращает независимую копию генератора.
func (g *Generator) Clone() *Generator {
	g.init()
	return &Generator{
		counter:   g.Count(),
		alphabet:  g.alphabet,
		minLength: g.minLength,
	}
}

// Equal возвращает true, если у генераторов совпадают счетчик и алфавит.
func (g *Generator) Equal(other *Generator) bool {
	g.init()
	other.init()
	return g.counter.Cmp(other.counter) == 0 && g.alphabet.Equal(other.alphabet)
}

// Compare сравнивает счетчики генераторов и возвращает -1, 0 или +1.
func (g *Generator) Compare(other *Generator) int {
	g.init()
	other.init()
	return g.counter.Cmp(other.counter)
}

// init заполняет поля нулевого значения.
func (g *Generator) init() {
	if g.counter == nil {
		g.counter = new(big.Int)
	}
	if g.alphabet.IsZero() {
		g.alphabet = numeral.DefaultAlphabet()
	}
}

func clamp(count *big.Int) *big.Int {
	if count == nil || count.Sign() < 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(count)
}
