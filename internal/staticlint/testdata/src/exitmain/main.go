package main

import (
	"fmt"
	myos "os"
)

func main() {
	fmt.Println("start")
	myos.Exit(1) // want "using exit in main"

	defer myos.Exit(2) // want "using exit in main"

	if len(myos.Args) > 1 {
		myos.Exit(3) // want "using exit in main"
	}

	run := func() {
		myos.Exit(4)
	}
	run()
}

func exit() {
	myos.Exit(1)
}
