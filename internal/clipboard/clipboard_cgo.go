//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"golang.design/x/clipboard"
)

type designBackend struct{}

func openBackend() (backend, error) {
	if !hasDisplay() {
		return nil, errNoDisplay
	}
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return designBackend{}, nil
}

func format(k Kind) clipboard.Format {
	if k == PNG {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func (designBackend) Write(k Kind, data []byte) error {
	clipboard.Write(format(k), data)
	return nil
}

func (designBackend) Read(k Kind) ([]byte, error) {
	return clipboard.Read(format(k)), nil
}
