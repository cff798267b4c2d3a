package checkout

import (
	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// SystemClipboard writes through the OS clipboard. Writes fail on
// headless hosts; callers treat that as non-fatal.
type SystemClipboard struct{}

// WriteText copies text to the system clipboard.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// BrowserOpener opens URLs in the default browser.
type BrowserOpener struct{}

// Open navigates to the given URL.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

var (
	_ Clipboard  = SystemClipboard{}
	_ LinkOpener = BrowserOpener{}
)
