//go:build !windows

package main

import (
	"context"
	"errors"
	"io"
)

var errUnsupported = errors.New("traylocate needs a Windows notification area")

func runLocate(context.Context, io.Writer) error { return errUnsupported }

func runWatch(context.Context, io.Writer) error { return errUnsupported }
