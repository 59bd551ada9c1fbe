package bootstrap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConfirmFunc asks a yes/no question. The default answer is no.
type ConfirmFunc func(question string) (bool, error)

// TerminalConfirm prompts on out and reads the answer from in. When in is
// not an interactive terminal the question is still shown but answered
// with the default.
func TerminalConfirm(in *os.File, out io.Writer) ConfirmFunc {
	return func(question string) (bool, error) {
		fmt.Fprintf(out, "? %s (y/N) ", question)
		if !term.IsTerminal(int(in.Fd())) {
			fmt.Fprintln(out, "No")
			return false, nil
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("reading answer: %w", err)
		}
		return parseAnswer(line), nil
	}
}

func parseAnswer(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
