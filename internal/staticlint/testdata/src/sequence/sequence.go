package sequence

type Option func()

func WithSymbols(symbols string) Option {
	return func() {}
}
