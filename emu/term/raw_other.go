//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package term

import "errors"

type rawState struct{}

func enterRaw(int) (*rawState, error) {
	return nil, errors.New("raw terminal mode is not supported on this platform")
}

func (s *rawState) restore() error {
	return nil
}
