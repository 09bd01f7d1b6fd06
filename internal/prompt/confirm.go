package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ConfirmFunc asks question and reports whether the operator agreed.
type ConfirmFunc func(question string) (bool, error)

// Prompter reads answers line by line from In. One Prompter must be shared
// across questions so buffered input is not lost between them.
type Prompter struct {
	out         io.Writer
	reader      *bufio.Reader
	interactive bool
	styles      Styles
}

// New returns a Prompter reading from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		out:         out,
		reader:      bufio.NewReader(in),
		interactive: isTerminal(in),
		styles:      NewStyles(out),
	}
}

// Confirm prints "<question> (y/N) " and reads one line. Only "y" counts
// as agreement; anything else, including end of input, declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/N) ", p.styles.Question.Render(question))

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	// A piped answer is not echoed by the terminal.
	if !p.interactive {
		fmt.Fprintln(p.out)
	}
	return strings.TrimSpace(line) == "y", nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// AlwaysYes is a ConfirmFunc that agrees without asking.
func AlwaysYes(string) (bool, error) { return true, nil }

// AlwaysNo is a ConfirmFunc that declines without asking.
func AlwaysNo(string) (bool, error) { return false, nil }
