package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal and --yes was not given.
var ErrNotInteractive = errors.New("confirmation required: stdin is not a terminal, pass --yes")

// Prompt asks y/N questions on a terminal. It satisfies ops.Confirmer.
type Prompt struct {
	In  io.Reader
	Out io.Writer

	// Yes answers every question without asking.
	Yes bool

	// Interactive overrides terminal detection on In. Nil means detect.
	Interactive *bool
}

// Confirm prints prompt followed by " [y/N] " and reads one line.
// Only "y" or "yes" (any case) confirm.
func (p *Prompt) Confirm(ctx context.Context, prompt string) (bool, error) {
	if p.Yes {
		return true, nil
	}
	if !p.interactive() {
		return false, ErrNotInteractive
	}

	fmt.Fprintf(p.Out, "%s [y/N] ", prompt)

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		ch <- answer{line, err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.Out)
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && a.err != io.EOF {
			return false, fmt.Errorf("reading answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

func (p *Prompt) interactive() bool {
	if p.Interactive != nil {
		return *p.Interactive
	}
	return IsTerminal(p.In)
}
