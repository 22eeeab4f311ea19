//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package term

import "golang.org/x/sys/unix"

type rawState struct {
	fd    int
	saved unix.Termios
}

// enterRaw disables line buffering and echo on fd. Reads return at once,
// with zero bytes when nothing was typed. Signal keys keep working, so
// Ctrl-C still interrupts the program.
func enterRaw(fd int) (*rawState, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	state := &rawState{fd: fd, saved: *termios}
	raw := *termios

	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8

	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *rawState) restore() error {
	return unix.IoctlSetTermios(s.fd, ioctlSetTermios, &s.saved)
}
