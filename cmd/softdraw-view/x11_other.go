//go:build !linux

package main

import (
	"context"
	"errors"
)

func runX11(ctx context.Context, a *app, title string, fps int) error {
	return errors.New("x11 backend is only available on Linux")
}
