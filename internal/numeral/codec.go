// Package numeral конвертирует неотрицательные целые числа в строки позиционной системы счисления
// с произвольным алфавитом и обратно.
package numeral

import (
	"math"
	"math/big"
)

// Encode конвертирует число в строку на основании алфавита.
// Цифры записываются начиная со старшей, результат дополняется слева нулевой цифрой
// до длины minLength. Ноль кодируется одной нулевой цифрой, отрицательные числа считаются нулем.
func Encode(count *big.Int, a Alphabet, minLength int) string {
	a.mustBeValid()

	if count == nil || count.Sign() <= 0 {
		return EncodeUint64(0, a, minLength)
	}

	if count.IsUint64() {
		return EncodeUint64(count.Uint64(), a, minLength)
	}

	digits := make([]rune, 0, Length(count, a, minLength))
	base := big.NewInt(int64(a.Base()))
	rem := new(big.Int)
	n := new(big.Int).Set(count)

	for n.Sign() > 0 {
		n.QuoRem(n, base, rem)
		digits = append(digits, a.symbols[rem.Int64()])
	}

	return compose(digits, a, minLength)
}

// EncodeUint64 конвертирует число фиксированной разрядности в строку на основании алфавита.
func EncodeUint64(id uint64, a Alphabet, minLength int) string {
	a.mustBeValid()

	const maxUint64Digits = 64
	digits := make([]rune, 0, max(minLength, maxUint64Digits))
	base := uint64(a.Base())

	for {
		digits = append(digits, a.symbols[id%base])
		id /= base

		if id == 0 {
			break
		}
	}

	return compose(digits, a, minLength)
}

// compose дополняет цифры, записанные начиная с младшей, нулями и разворачивает их.
func compose(digits []rune, a Alphabet, minLength int) string {
	for len(digits) < minLength {
		digits = append(digits, a.symbols[0])
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	return string(digits)
}

// Decode конвертирует строку в число на основании алфавита.
// Ведущие нулевые цифры не меняют значения, пустая строка соответствует нулю.
// Возвращает InvalidSymbolError, если строка содержит символ вне алфавита.
func Decode(text string, a Alphabet) (*big.Int, error) {
	a.mustBeValid()

	var (
		count = new(big.Int)
		base  = uint64(a.Base())
		limit = math.MaxUint64 / base
		acc   uint64
		mul   uint64 = 1
		i     int
	)

	// Цифры накапливаются в uint64 и переносятся в count, пока множитель не переполнится.
	for _, r := range text {
		pos, ok := a.index[r]
		if !ok {
			return nil, &InvalidSymbolError{Symbol: r, Offset: i}
		}

		if mul > limit {
			accumulate(count, acc, mul)
			acc, mul = 0, 1
		}

		acc = acc*base + uint64(pos)
		mul *= base
		i++
	}

	accumulate(count, acc, mul)
	return count, nil
}

func accumulate(count *big.Int, acc, mul uint64) {
	if count.Sign() == 0 {
		count.SetUint64(acc)
		return
	}
	count.Mul(count, new(big.Int).SetUint64(mul))
	count.Add(count, new(big.Int).SetUint64(acc))
}

// DecodeUint64 конвертирует строку в число фиксированной разрядности.
// Возвращает ErrOverflow, если значение не помещается в uint64.
func DecodeUint64(text string, a Alphabet) (uint64, error) {
	count, err := Decode(text, a)
	if err != nil {
		return 0, err
	}

	if !count.IsUint64() {
		return 0, ErrOverflow
	}

	return count.Uint64(), nil
}

// Length возвращает длину строки, которую вернет Encode, не выполняя кодирования.
func Length(count *big.Int, a Alphabet, minLength int) int {
	a.mustBeValid()

	if count == nil || count.Sign() <= 0 {
		return max(minLength, 1)
	}

	if count.IsUint64() {
		return max(minLength, digitsUint64(count.Uint64(), uint64(a.Base())))
	}

	return max(minLength, digitsBig(count, a.Base()))
}

func digitsUint64(n, base uint64) int {
	digits := 1
	for n >= base {
		n /= base
		digits++
	}
	return digits
}

// digitsBig возвращает floor(log_base(n)) + 1 для n > 0.
// Оценка по числу бит уточняется сравнением со степенями основания.
func digitsBig(n *big.Int, base int) int {
	b := big.NewInt(int64(base))
	exp := int(float64(n.BitLen()-1) / math.Log2(float64(base)))

	pow := new(big.Int).Exp(b, big.NewInt(int64(exp)), nil)
	for exp > 0 && pow.Cmp(n) > 0 {
		pow.Quo(pow, b)
		exp--
	}

	next := new(big.Int).Mul(pow, b)
	for next.Cmp(n) <= 0 {
		next.Mul(next, b)
		exp++
	}

	return exp + 1
}
