package interrupt

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

var (
	ErrNotTerminal  = errors.New("not a terminal")
	ErrNotSupported = errors.New("raw terminal mode is not supported on this platform")
)

// Terminal is an input terminal switched to non-canonical, no-echo mode with
// reads returning immediately. Restore must be called on every exit path.
type Terminal struct {
	fd    int
	saved *termState
}

// OpenStdin switches standard input to raw mode when it is a terminal.
func OpenStdin() (*Terminal, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, ErrNotTerminal
	}
	return OpenTerminal(int(fd))
}

// OpenTerminal switches fd to raw mode and remembers the previous settings.
func OpenTerminal(fd int) (*Terminal, error) {
	saved, err := makeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Terminal{fd: fd, saved: saved}, nil
}

// ReadKey returns a pending key press, or false when there is none.
func (t *Terminal) ReadKey() (byte, bool) {
	return readByte(t.fd)
}

// Restore puts back the settings found by OpenTerminal. It is safe to call
// more than once.
func (t *Terminal) Restore() error {
	if t == nil || t.saved == nil {
		return nil
	}
	err := restore(t.fd, t.saved)
	t.saved = nil
	return err
}
