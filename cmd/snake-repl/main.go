package main

import (
	"os"

	"snake/repl"
)

func main() {
	repl.Start(os.Stdin, os.Stdout)
}
