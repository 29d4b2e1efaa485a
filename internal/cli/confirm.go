package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the user to approve a destructive step.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// PromptConfirmer asks on out and reads a y/N answer from in. Anything other
// than "y" or "yes", including end of input, declines.
// Answers are read through one buffered reader, so a confirmer can ask
// several questions on the same input.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Confirm implements Confirmer.
func (p *PromptConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(p.Out, "%s [y/N] ", prompt)

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes", nil
}

// yesConfirmer approves everything; used for --yes.
type yesConfirmer struct{}

func (yesConfirmer) Confirm(string) (bool, error) { return true, nil }
