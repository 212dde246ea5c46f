package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var menu = []string{
	"1. Gemini 2.0 Experimental",
	"2. ChatGPT 4.0/4.0 mini",
	"3. GitHub Copilot",
}

// Prompter reads answers line by line. Prompts are only written when
// Interactive is set, so piped input produces clean output.
type Prompter struct {
	In          *bufio.Reader
	Out         io.Writer
	Interactive bool
}

// NewPrompter reads from in and writes prompts to out. Prompts are turned on
// only when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Prompter{In: bufio.NewReader(in), Out: out, Interactive: interactive}
}

// Choose prints the provider menu and returns the raw selection.
func (p *Prompter) Choose() (string, error) {
	if p.Interactive {
		for _, line := range menu {
			fmt.Fprintln(p.Out, line)
		}
	}
	option, err := p.line()
	if err != nil {
		return "", fmt.Errorf("read selection: %w", err)
	}
	if p.Interactive {
		fmt.Fprintf(p.Out, "Select option: %s\n", option)
	}
	return option, nil
}

func (p *Prompter) Question() (string, error) {
	if p.Interactive {
		fmt.Fprint(p.Out, "Question: ")
	}
	q, err := p.line()
	if err != nil {
		return "", fmt.Errorf("read question: %w", err)
	}
	return q, nil
}

func (p *Prompter) Mode() (string, error) {
	if p.Interactive {
		fmt.Fprintln(p.Out, "Suggest/Explain")
	}
	m, err := p.line()
	if err != nil {
		return "", fmt.Errorf("read copilot mode: %w", err)
	}
	return m, nil
}

// line returns one trimmed line; a final line without newline still counts.
func (p *Prompter) line() (string, error) {
	s, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
