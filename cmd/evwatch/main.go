package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "evwatch"
	app.Description = "Watch window input events and fire bound triggers"
	app.Usage = "evwatch [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Replay a script instead of reading a terminal",
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "Read events from an SDL2 window (requires a build with -tags sdl2)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode",
			Value: 600,
		},
		cli.StringFlag{
			Name:  "script",
			Usage: "Headless event script, one '<frame> <action> [arg]' per line",
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Frames polled per second (ignored in headless mode)",
			Value: 60,
		},
		cli.BoolFlag{
			Name:  "precise",
			Usage: "Use the adaptive frame limiter instead of a ticker",
		},
		cli.DurationFlag{
			Name:  "key-timeout",
			Usage: "How long a terminal key stays down without a repeat",
		},
		cli.StringSliceFlag{
			Name:  "bind",
			Usage: "Trigger to log, e.g. 'pressed:Space' or 'held:Ctrl+S' (repeatable)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Minimum log level: debug, info, warn or error",
			Value: "info",
		},
	}
	app.Action = runWatch

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running evwatch", "error", err)
		os.Exit(1)
	}
}
