// Package clipboard copies share links to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("clipboard unavailable")

// System writes to the OS clipboard through xclip, xsel, pbcopy or the
// Windows API, whichever the platform has.
type System struct {
	unsupported bool
}

// NewSystem checks clipboard support once.
func NewSystem() *System {
	return &System{unsupported: clipboard.Unsupported}
}

// WriteAll copies text. Callers show the text instead on ErrUnavailable.
func (s *System) WriteAll(text string) error {
	if s.unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}
