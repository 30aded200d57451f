// Package main runs a teleop program against fake hardware with scripted gamepads.
//
//	teleopsim --program relic-recovery --ticks 100 --stick ly=-1@0-49 --press left@50
//	teleopsim --program velocity-vortex --missing conveyorServo --press driver:A@2 --press operator:RT@5-60
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/config"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/opmode"
	_ "github.com/fieldbot/teleop/opmode/register"
)

const (
	programFlag    = "program"
	ticksFlag      = "ticks"
	hzFlag         = "hz"
	configFlag     = "config"
	missingFlag    = "missing"
	pressFlag      = "press"
	stickFlag      = "stick"
	printEveryFlag = "print-every"
	logFileFlag    = "log-file"
	logLevelFlag   = "log-level"
	debugFlag      = "debug"
	envFileFlag    = "env-file"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:            "teleopsim",
		Usage:           "run a teleop program against fake hardware",
		HideHelpCommand: true,
		Writer:          out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    programFlag,
				Aliases: []string{"p"},
				Usage:   "program to run (see list)",
				EnvVars: []string{"TELEOP_PROGRAM"},
			},
			&cli.IntFlag{
				Name:  ticksFlag,
				Value: 50,
				Usage: "number of ticks to run",
			},
			&cli.IntFlag{
				Name:  hzFlag,
				Value: 50,
				Usage: "simulated tick rate",
			},
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
				EnvVars: []string{"TELEOP_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  missingFlag,
				Usage: "device `NAME` to leave out of the hardware map",
			},
			&cli.StringSliceFlag{
				Name:  pressFlag,
				Usage: "hold a button, `[pad:]BUTTON@N[-M]`",
			},
			&cli.StringSliceFlag{
				Name:  stickFlag,
				Usage: "hold an axis, `[pad:]AXIS=VALUE[@N[-M]]`",
			},
			&cli.IntFlag{
				Name:  printEveryFlag,
				Usage: "print telemetry every `N` ticks instead of once at the end",
			},
			&cli.StringFlag{
				Name:    logFileFlag,
				Usage:   "also write logs to `FILE`",
				EnvVars: []string{"TELEOP_LOG_FILE"},
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "log `LEVEL`, one of debug, info, warn or error",
				EnvVars: []string{"TELEOP_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  debugFlag,
				Usage: "enable debug logging, same as --log-level debug",
			},
			&cli.StringFlag{
				Name:  envFileFlag,
				Value: ".env",
				Usage: "load environment variables from `FILE` when it exists",
			},
		},
		Before: loadEnv,
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the registered programs",
				Action: func(c *cli.Context) error {
					for _, name := range opmode.RegisteredNames() {
						reg, _ := opmode.Lookup(name)
						if _, err := io.WriteString(c.App.Writer, name+"\t"+reg.Description+"\n"); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
	}
}

// loadEnv loads the env file. Flags are parsed before it runs, so values it sets are read
// through stringOrEnv.
func loadEnv(c *cli.Context) error {
	path := c.String(envFileFlag)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "failed to load %s", path)
	}
	return nil
}

func runAction(c *cli.Context) (err error) {
	program := stringOrEnv(c, programFlag, "TELEOP_PROGRAM")
	if program == "" {
		return errors.Errorf("--%s is required, one of: %s", programFlag, strings.Join(opmode.RegisteredNames(), ", "))
	}

	log := logging.NewLogger("teleopsim")
	if lvl := stringOrEnv(c, logLevelFlag, "TELEOP_LOG_LEVEL"); lvl != "" {
		level, err := logging.LevelFromString(lvl)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}
	if c.Bool(debugFlag) {
		log.SetLevel(logging.DEBUG)
	}
	if path := stringOrEnv(c, logFileFlag, "TELEOP_LOG_FILE"); path != "" {
		file := logging.NewFileAppender(path, 10, 3)
		log.AddAppender(file)
		defer func() {
			err = multierr.Combine(err, log.Sync(), file.Close())
		}()
	}

	conf := config.Default()
	if path := stringOrEnv(c, configFlag, "TELEOP_CONFIG"); path != "" {
		if conf, err = config.Read(path); err != nil {
			return err
		}
	}
	events, err := parseEvents(c.StringSlice(pressFlag), c.StringSlice(stickFlag))
	if err != nil {
		return err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	_, err = run(ctx, options{
		program:    program,
		ticks:      c.Int(ticksFlag),
		hz:         c.Int(hzFlag),
		conf:       conf,
		missing:    c.StringSlice(missingFlag),
		events:     events,
		printEvery: c.Int(printEveryFlag),
	}, c.App.Writer, log)
	return err
}

func stringOrEnv(c *cli.Context, flag, env string) string {
	if v := c.String(flag); v != "" {
		return v
	}
	return os.Getenv(env)
}
