package ui

import (
	"github.com/charmbracelet/huh/spinner"
)

// Step is a unit of work reported by a Progress.
type Step func() error

// Progress shows feedback while a step runs.
type Progress interface {
	Run(title string, step Step) error
}

// SpinnerProgress draws a spinner on the terminal while each step runs.
type SpinnerProgress struct{}

func (SpinnerProgress) Run(title string, step Step) error {
	var stepErr error
	err := spinner.New().
		Title(title).
		Action(func() { stepErr = step() }).
		Run()
	if err != nil {
		return NormalizeAbort(err)
	}
	return stepErr
}

// PlainProgress runs steps without drawing anything.
type PlainProgress struct{}

func (PlainProgress) Run(_ string, step Step) error {
	return step()
}
