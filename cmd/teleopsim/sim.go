package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fieldbot/teleop/components/base/mecanum"
	"github.com/fieldbot/teleop/components/input"
	inputfake "github.com/fieldbot/teleop/components/input/fake"
	"github.com/fieldbot/teleop/config"
	"github.com/fieldbot/teleop/control"
	"github.com/fieldbot/teleop/logging"
	"github.com/fieldbot/teleop/opmode"
	"github.com/fieldbot/teleop/robot"
	"github.com/fieldbot/teleop/robot/fake"
	"github.com/fieldbot/teleop/telemetry"
)

// MaxTurnRateDegPerSec is the simulated turn rate of the mecanum base at full rotation power.
const MaxTurnRateDegPerSec = 180.0

type options struct {
	program    string
	ticks      int
	hz         int
	conf       *config.Config
	missing    []string
	events     []event
	printEvery int
}

// CycleStats summarises the wall time spent inside each tick.
type CycleStats struct {
	Mean, P95, Max time.Duration
}

type result struct {
	runID     string
	hardware  *fake.Hardware
	robot     *robot.Context
	telemetry *telemetry.Buffer
	program   opmode.OpMode
	cycles    CycleStats
	tickErrs  int
}

type simulator struct {
	opts     options
	out      io.Writer
	logger   logging.Logger
	clock    *clock.Mock
	driver   *inputfake.Gamepad
	operator *inputfake.Gamepad
}

func run(ctx context.Context, opts options, out io.Writer, logger logging.Logger) (*result, error) {
	reg, ok := opmode.Lookup(opts.program)
	if !ok {
		return nil, errors.Errorf("unknown program %q, known programs: %v", opts.program, opmode.RegisteredNames())
	}
	if opts.hz <= 0 {
		return nil, errors.Errorf("hz must be positive, got %d", opts.hz)
	}
	s := &simulator{
		opts:     opts,
		out:      out,
		logger:   logger,
		clock:    clock.NewMock(),
		driver:   inputfake.NewGamepad(),
		operator: inputfake.NewGamepad(),
	}
	res := &result{
		runID:     uuid.NewString(),
		hardware:  fake.NewHardware(reg.Devices, opts.missing, nil),
		telemetry: telemetry.NewBuffer(),
	}
	logger.Infow("starting simulation", "run", res.runID, "program", opts.program, "ticks", opts.ticks, "hz", opts.hz)

	res.robot = robot.NewContext(robot.Dependencies{
		Hardware:  res.hardware,
		Driver:    s.driver,
		Operator:  s.operator,
		Telemetry: res.telemetry,
		Clock:     s.clock,
		Config:    opts.conf,
		Logger:    logger,
	})
	op, err := opmode.New(opts.program, res.robot)
	if err != nil {
		return nil, err
	}
	res.program = op
	if err := op.Init(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to init %s", opts.program)
	}
	if op.WarningGenerated() {
		s.printWarning(op.WarningMessage())
	}

	period := time.Second / time.Duration(opts.hz)
	durations := make([]float64, 0, opts.ticks)
	for tick := 0; tick < opts.ticks; tick++ {
		if err := ctx.Err(); err != nil {
			op.Stop(ctx)
			return res, err
		}
		s.applyEvents(tick)
		if logger.GetLevel() == logging.DEBUG {
			logger.Debugw("gamepads", "tick", tick, "driver", input.Snap(s.driver), "operator", input.Snap(s.operator))
		}
		res.telemetry.Clear()

		start := time.Now()
		op.Loop(ctx)
		durations = append(durations, float64(time.Since(start)))

		s.integrateHeading(res.hardware, period)
		s.clock.Add(period)
		if s.opts.printEvery > 0 && (tick+1)%s.opts.printEvery == 0 {
			fmt.Fprintf(s.out, "tick %d\n%s\n", tick+1, res.telemetry.String())
		}
	}
	op.Stop(ctx)

	res.cycles, err = summarise(durations)
	if err != nil {
		return res, err
	}
	if s.opts.printEvery <= 0 {
		fmt.Fprintf(s.out, "%s\n", res.telemetry.String())
	}
	fmt.Fprintf(s.out, "run %s: %d ticks, mean %v p95 %v max %v\n",
		res.runID, opts.ticks, res.cycles.Mean, res.cycles.P95, res.cycles.Max)
	return res, nil
}

func (s *simulator) applyEvents(tick int) {
	s.driver.Reset()
	s.operator.Reset()
	for _, e := range s.opts.events {
		if !e.active(tick) {
			continue
		}
		pad := s.driver
		if e.pad == operatorPad {
			pad = s.operator
		}
		pad.Set(e.control, e.value)
	}
}

// integrateHeading turns the fake IMU by the rotation the mecanum wheels were commanded.
func (s *simulator) integrateHeading(hw *fake.Hardware, dt time.Duration) {
	imu := hw.IMU()
	if imu == nil {
		return
	}
	var wheels [4]float64
	for i, name := range mecanum.MotorNames {
		m, ok := hw.Motors[name]
		if !ok {
			return
		}
		wheels[i] = m.CommandedPower()
	}
	rotation := (wheels[0] - wheels[1] + wheels[2] - wheels[3]) / 4
	heading, err := imu.Heading(context.Background())
	if err != nil {
		return
	}
	// Positive rotation is clockwise, which lowers the heading.
	imu.SetHeading(control.WrapDegrees(heading - rotation*MaxTurnRateDegPerSec*dt.Seconds()))
}

func (s *simulator) printWarning(msg string) {
	banner := color.New(color.FgYellow, color.Bold)
	if _, err := banner.Fprintf(s.out, "WARNING: %s\n", msg); err != nil {
		s.logger.Debugw("could not print warning", "error", err)
	}
}

func summarise(durations []float64) (CycleStats, error) {
	if len(durations) == 0 {
		return CycleStats{}, nil
	}
	mean, meanErr := stats.Mean(durations)
	p95, p95Err := stats.Percentile(durations, 95)
	longest, maxErr := stats.Max(durations)
	if err := multierr.Combine(meanErr, p95Err, maxErr); err != nil {
		return CycleStats{}, errors.Wrap(err, "failed to summarise cycle times")
	}
	return CycleStats{Mean: time.Duration(mean), P95: time.Duration(p95), Max: time.Duration(longest)}, nil
}
