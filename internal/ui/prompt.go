package ui

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
)

// ErrUserAborted is returned when the user aborts an interactive prompt.
// Esc, Ctrl+C and Ctrl+D all normalise to it.
var ErrUserAborted = errors.New("user aborted")

// NormalizeAbort converts known abort-like errors to ErrUserAborted.
func NormalizeAbort(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) {
		return ErrUserAborted
	}
	return err
}

// IsAbort returns true if the error represents a user abort.
func IsAbort(err error) bool {
	return errors.Is(err, ErrUserAborted)
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

// PromptConfirmer asks on the terminal with a huh form.
type PromptConfirmer struct{}

func (PromptConfirmer) Confirm(title, description string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, NormalizeAbort(err)
	}

	return confirmed, nil
}

// ErrNotInteractive is returned when a question needs a terminal to be asked.
var ErrNotInteractive = errors.New("confirmation needs an interactive terminal")

// NonInteractiveConfirmer refuses every question. It is used when there is
// no terminal to ask on.
type NonInteractiveConfirmer struct{}

func (NonInteractiveConfirmer) Confirm(string, string) (bool, error) {
	return false, ErrNotInteractive
}

// AutoConfirmer answers every question with Answer.
type AutoConfirmer struct {
	Answer bool
}

func (a AutoConfirmer) Confirm(string, string) (bool, error) {
	return a.Answer, nil
}
