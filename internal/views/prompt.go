package views

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/checkfox/go_carprice/internal/models"
)

// Prompter asks for field values on a line-oriented terminal
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading lines from in
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// AskField prompts for one field. A number in range picks a listed choice,
// an empty line keeps current, and any other text is taken verbatim.
func (p *Prompter) AskField(field models.Field, choices []string, current string) (string, error) {
	label := color.New(color.Bold).Sprint(field.Label())
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	if len(choices) > 0 {
		fmt.Fprintf(p.out, "%s ", color.New(color.FgHiBlack).Sprintf("(1-%d or text)", len(choices)))
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	if line == "" {
		if current == "" {
			color.New(color.FgHiBlack).Fprintln(p.out, "  "+field.Hint())
		}
		return current, nil
	}
	if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], nil
	}
	return line, nil
}

// Confirm asks a yes/no question, defaulting to no
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns one line without its terminator. A final unterminated
// line is returned; io.EOF only once input is exhausted.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
