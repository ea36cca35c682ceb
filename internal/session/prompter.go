package session

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads operator answers line by line. An EOF on the input
// stream is returned as [io.EOF] so the session can treat a closed
// terminal as a quit.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter wraps an input stream (usually stdin) and an output
// stream for the prompt text (usually stderr, so piped stdout stays
// clean).
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		if err == io.EOF && line != "" {
			// Last line without a trailing newline still counts.
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// Pause prints the label and waits for the operator to press Enter.
func (p *Prompter) Pause(label string) error {
	fmt.Fprint(p.w, promptStyle.Render(label+" ")+"\n> ")
	_, err := p.readLine()
	return err
}

// String asks for a line of text. An empty answer returns def.
func (p *Prompter) String(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	fmt.Fprint(p.w, promptStyle.Render(label)+": ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Int asks for a positive integer, re-prompting on anything else.
func (p *Prompter) Int(label string, def int) (int, error) {
	for {
		var answer string
		var err error
		if def > 0 {
			answer, err = p.String(label, strconv.Itoa(def))
		} else {
			answer, err = p.String(label, "")
		}
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr != nil || n < 1 {
			fmt.Fprintln(p.w, warnStyle.Render("please enter a positive number"))
			continue
		}
		return n, nil
	}
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.w, "%s [%s]: ", promptStyle.Render(label), hint)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.w, warnStyle.Render("please answer y or n"))
	}
}
