// Command lightid выдает последовательные идентификаторы локально и через сервер последовательностей.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		exit(err)
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
	os.Exit(1)
}
