// Package input expands note arguments that use - (stdin) or @file syntax.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrStdinReused is returned when more than one argument asks for stdin
var ErrStdinReused = errors.New("stdin can only be read once")

// ExpandArgs replaces "-" with the lines read from stdin and "@path" with
// the lines of that file. Other arguments are kept as they are.
func ExpandArgs(args []string, stdin io.Reader) ([]string, error) {
	var result []string
	stdinUsed := false
	for _, a := range args {
		switch {
		case a == "-":
			if stdinUsed {
				return nil, ErrStdinReused
			}
			stdinUsed = true
			lines, err := ReadLines(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			result = append(result, lines...)
		case strings.HasPrefix(a, "@") && len(a) > 1:
			f, err := os.Open(a[1:])
			if err != nil {
				return nil, err
			}
			lines, err := ReadLines(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", a[1:], err)
			}
			result = append(result, lines...)
		default:
			result = append(result, a)
		}
	}
	return result, nil
}

// ReadLines returns the non-empty, trimmed lines of r
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
