package ui

import (
	"github.com/pkg/browser"
)

// Opener opens a URL for the user.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs in the system's default browser.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}
