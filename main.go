package main

import (
	"fmt"
	"os"

	"go-memmanage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fatal(err)
	}
}

func fatal(val interface{}) {
	fmt.Fprintln(os.Stderr, val)
	os.Exit(1)
}
