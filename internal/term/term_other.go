//go:build !unix && !windows

package term

import "errors"

func columns(uintptr) (int, error) {
	return 0, errors.New("term: unsupported platform")
}
