package main

import (
	"io"
	"os"
)

// forEachInput runs f over each named file, or over stdin when no
// files are given.
func forEachInput(args []string, f func(name string, r io.Reader) error) error {
	if len(args) == 0 {
		return f("stdin", os.Stdin)
	}
	for _, arg := range args {
		file, err := os.Open(arg)
		if err != nil {
			return err
		}
		err = f(arg, file)
		file.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
