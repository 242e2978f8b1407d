package interrupt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type termState = unix.Termios

func makeRaw(fd int) (*termState, error) {
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}
	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	// TCSETSF flushes pending input like tcsetattr(TCSAFLUSH)
	if err := unix.IoctlSetTermios(fd, unix.TCSETSF, &raw); err != nil {
		return nil, fmt.Errorf("setting raw terminal mode: %w", err)
	}
	return saved, nil
}

func restore(fd int, saved *termState) error {
	if err := unix.IoctlSetTermios(fd, unix.TCSETSF, saved); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}

func readByte(fd int) (byte, bool) {
	var buf [1]byte
	n, err := unix.Read(fd, buf[:])
	if err != nil || n != 1 {
		return 0, false
	}
	return buf[0], true
}
