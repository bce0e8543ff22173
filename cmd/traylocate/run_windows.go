//go:build windows

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rpdg/trayloc"
	"github.com/rpdg/trayloc/mouse"
	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/placement"
	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/taskbar"
	"github.com/rpdg/trayloc/window"
)

// setup registers the demo icon. The icon window belongs to the calling
// thread, so callers keep the OS thread locked until cleanup.
func setup() (*notifyicon.Host, func(), error) {
	runtime.LockOSThread()

	if err := window.EnablePerMonitorDPI(); err != nil {
		logger.Warn("failed to enable DPI awareness", "error", err)
	}
	if !window.IsPerMonitorDPIAware() {
		logger.Warn("not per-monitor DPI aware; coordinates may be scaled")
	}

	c, _ := cfg.Color()
	w, h := notifyicon.SmallIconSize()
	host, err := notifyicon.NewHost(1, solidIcon(w, h, c), cfg.Tooltip)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, nil, err
	}
	id, _ := host.Identifier()
	logger.Debug("icon registered", "icon", id, "width", w, "height", h)

	cleanup := func() {
		if err := host.Close(); err != nil {
			logger.Warn("failed to remove icon", "error", err)
		}
		runtime.UnlockOSThread()
	}
	return host, cleanup, nil
}

func runLocate(ctx context.Context, out io.Writer) error {
	host, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tb := taskbar.New()
	r := trayloc.New(trayloc.WithLogger(logger), trayloc.WithTaskbar(tb))
	printTaskbar(out, tb)

	// The shell needs a moment to lay out a new icon.
	if err := sleep(ctx, cfg.Interval); err != nil {
		return nil
	}

	for i := 0; i < cfg.Repeat; i++ {
		if i > 0 {
			if err := sleep(ctx, cfg.Interval); err != nil {
				return nil
			}
		}
		report(out, r, tb, host)
	}
	return nil
}

func report(out io.Writer, r *trayloc.Resolver, tb *taskbar.Info, host *notifyicon.Host) {
	start := time.Now()
	rect, err := r.Locate(host, cfg.Accuracy, cfg.TolerateHidden)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, trayloc.ErrIconNotFound):
		fmt.Fprintf(out, "icon:           unknown (%v, %s)\n", err, elapsed.Round(time.Millisecond))
		return
	case err != nil:
		fmt.Fprintf(out, "icon:           error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "icon:           %s in %s\n", formatRect(rect), elapsed.Round(time.Millisecond))

	if in, err := r.InFlyout(host); err == nil {
		fmt.Fprintf(out, "in fly-out:     %t\n", in)
	}

	id, _ := host.Identifier()
	pt := placement.Live(tb, rect, cfg.WindowWidth, cfg.WindowHeight, window.Scale(id.Owner), false)
	fmt.Fprintf(out, "popup at:       (%d,%d) for %dx%d\n", pt.X, pt.Y, cfg.WindowWidth, cfg.WindowHeight)
}

func runWatch(ctx context.Context, out io.Writer) error {
	host, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tb := taskbar.New()
	r := trayloc.New(trayloc.WithLogger(logger), trayloc.WithTaskbar(tb))
	r.PrimeProbe()

	held := make(chan screen.Point, 1)
	hold := mouse.NewHoldDetector(cfg.HoldDuration, func(b mouse.Button, pt screen.Point) {
		select {
		case held <- pt:
		default:
		}
	})
	if err := mouse.Start(hold.Handle); err != nil {
		return err
	}
	defer func() {
		hold.Cancel()
		if err := mouse.Stop(); err != nil {
			logger.Warn("failed to remove mouse hook", "error", err)
		}
	}()

	fmt.Fprintln(out, "hold a mouse button on the icon; Ctrl+C to quit")
	for {
		select {
		case <-ctx.Done():
			return nil
		case pt := <-held:
			on, err := r.ContainsPoint(host, pt)
			if err != nil {
				logger.Debug("exact icon rectangle unavailable", "error", err)
			}
			if on || err != nil {
				report(out, r, tb, host)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
