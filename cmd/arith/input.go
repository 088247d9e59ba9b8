package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readSource returns the expression text from, in order of preference, a
// file, the positional arguments joined by spaces, or stdin.
func readSource(file string, args []string, stdin io.Reader) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", fmt.Errorf("give either an expression or --file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
