package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidValues) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
