package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rpdg/trayloc/screen"
	"github.com/rpdg/trayloc/taskbar"
)

var (
	configPath string
	flagCfg    = DefaultConfig()

	cfg    *Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "traylocate",
	Short: "Locate a notification area icon on screen",
	Long: `traylocate adds an icon to the notification area, resolves its screen
rectangle and prints it together with the taskbar layout and where a popup
for the icon would be placed.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runLocate(ctx, cmd.OutOrStdout())
	},
}

var taskbarCmd = &cobra.Command{
	Use:   "taskbar",
	Short: "Print the taskbar and notification area geometry",
	RunE: func(cmd *cobra.Command, args []string) error {
		printTaskbar(cmd.OutOrStdout(), taskbar.New())
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report the icon position whenever a mouse button is held on it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runWatch(ctx, cmd.OutOrStdout())
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.IntVar(&flagCfg.Accuracy, "accuracy", flagCfg.Accuracy, "extra consecutive matches the color probe needs")
	pf.BoolVar(&flagCfg.TolerateHidden, "tolerate-hidden", flagCfg.TolerateHidden, "report icons hidden in the overflow area")
	pf.IntVar(&flagCfg.Repeat, "repeat", flagCfg.Repeat, "number of resolutions")
	pf.DurationVar(&flagCfg.Interval, "interval", flagCfg.Interval, "pause between resolutions")
	pf.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "debug, info, warn or error")
	pf.StringVar(&flagCfg.IconColor, "icon-color", flagCfg.IconColor, "icon fill as #rrggbb")
	pf.StringVar(&flagCfg.Tooltip, "tooltip", flagCfg.Tooltip, "icon tooltip")
	pf.Int32Var(&flagCfg.WindowWidth, "width", flagCfg.WindowWidth, "popup width for placement")
	pf.Int32Var(&flagCfg.WindowHeight, "height", flagCfg.WindowHeight, "popup height for placement")
	pf.DurationVar(&flagCfg.HoldDuration, "hold", flagCfg.HoldDuration, "hold time that triggers a report in watch mode")

	rootCmd.AddCommand(taskbarCmd)
	rootCmd.AddCommand(watchCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c := DefaultConfig()
	if configPath != "" {
		var err error
		if c, err = LoadConfig(configPath); err != nil {
			return err
		}
	}
	overlayFlags(c, flagCfg, cmd.Flags().Changed)
	if err := c.Validate(); err != nil {
		return err
	}

	level, _ := c.Level()
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	cfg = c
	return nil
}

// overlayFlags copies every flag the user set explicitly from f onto c.
func overlayFlags(c, f *Config, changed func(string) bool) {
	if changed("accuracy") {
		c.Accuracy = f.Accuracy
	}
	if changed("tolerate-hidden") {
		c.TolerateHidden = f.TolerateHidden
	}
	if changed("repeat") {
		c.Repeat = f.Repeat
	}
	if changed("interval") {
		c.Interval = f.Interval
	}
	if changed("log-level") {
		c.LogLevel = f.LogLevel
	}
	if changed("icon-color") {
		c.IconColor = f.IconColor
	}
	if changed("tooltip") {
		c.Tooltip = f.Tooltip
	}
	if changed("width") {
		c.WindowWidth = f.WindowWidth
	}
	if changed("height") {
		c.WindowHeight = f.WindowHeight
	}
	if changed("hold") {
		c.HoldDuration = f.HoldDuration
	}
}

func printTaskbar(w io.Writer, tb *taskbar.Info) {
	d := tb.Describe()
	if !d.Known() {
		fmt.Fprintln(w, "taskbar:        unknown")
		return
	}
	fmt.Fprintf(w, "taskbar:        %s edge, %s\n", d.Edge, formatRect(d.Rect))
	fmt.Fprintf(w, "auto-hide:      %t (hidden now: %t)\n", d.State.AutoHide(), tb.Hidden())
	fmt.Fprintf(w, "always on top:  %t\n", d.State.AlwaysTop())
	if r, ok := tb.NotifyAreaRect(); ok {
		fmt.Fprintf(w, "notify area:    %s\n", formatRect(r))
	}
	if r, ok := tb.OverflowButtonRect(); ok {
		fmt.Fprintf(w, "overflow:       %s\n", formatRect(r))
	}
	fmt.Fprintf(w, "focused:        %t\n", tb.NotifyAreaActive())
}

func formatRect(r screen.Rect) string {
	return fmt.Sprintf("(%d,%d) %dx%d", r.Left, r.Top, r.Width(), r.Height())
}
