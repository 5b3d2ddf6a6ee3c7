// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adxl372 talks to an ADXL372 accelerometer on a SPI port.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/GermanBionicSystems/accel/adxl372"
	"github.com/GermanBionicSystems/accel/screen1d"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	flagPort    = "spi"
	flagHz      = "hz"
	flagVerbose = "verbose"
	flagCount   = "count"
	flagODR     = "odr"
	flagBW      = "bw"
	flagBars    = "bars"
	flagWidth   = "width"
	flagDepth   = "depth"
	flagMode    = "mode"
	flagFormat  = "format"
	flagWait    = "wait"
)

func main() {
	var logger *zap.SugaredLogger
	freq := adxl372.DefaultOpts.SPIFrequency

	app := &cli.App{
		Name:  "adxl372",
		Usage: "talk to an ADXL372 accelerometer over SPI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagPort,
				Usage: "SPI port to use, first available if empty",
			},
			&cli.GenericFlag{
				Name:  flagHz,
				Value: &freq,
				Usage: "SPI clock frequency",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "enable debug logging, including every register access",
			},
		},
		Before: func(c *cli.Context) error {
			var l *zap.Logger
			var err error
			if c.Bool(flagVerbose) {
				l, err = zap.NewDevelopment()
			} else {
				l, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}
			logger = l.Sugar()
			if _, err := host.Init(); err != nil {
				return fmt.Errorf("host init: %w", err)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
	}

	// withDev opens the port and the device, runs f then releases both.
	withDev := func(f func(c *cli.Context, d *adxl372.Dev) error) cli.ActionFunc {
		return func(c *cli.Context) (err error) {
			p, err := spireg.Open(c.String(flagPort))
			if err != nil {
				return err
			}
			o := adxl372.DefaultOpts
			o.SPIFrequency = freq
			d, err := adxl372.NewSPI(p, &o)
			if err != nil {
				return multierr.Combine(err, p.Close())
			}
			if c.Bool(flagVerbose) {
				d.EnableDebug(logger.Debugf)
			}
			logger.Debugw("opened", "port", p.String(), "device", d.String(), "frequency", freq.String())
			defer func() {
				err = multierr.Combine(err, d.Halt(), p.Close())
			}()
			return f(c, d)
		}
	}

	app.Commands = []*cli.Command{
		{
			Name:   "id",
			Usage:  "print the identification registers and verify the part",
			Action: withDev(idAction),
		},
		{
			Name:   "reset",
			Usage:  "soft reset the part",
			Action: withDev(resetAction),
		},
		{
			Name:   "status",
			Usage:  "print the status registers",
			Action: withDev(statusAction),
		},
		{
			Name:  "read",
			Usage: "read samples in full bandwidth mode",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: flagCount, Value: 10, Usage: "number of samples"},
				&cli.IntFlag{Name: flagODR, Value: 400, Usage: "output data rate in Hz"},
				&cli.IntFlag{Name: flagBW, Value: 200, Usage: "filter bandwidth in Hz"},
				&cli.BoolFlag{Name: flagBars, Usage: "draw bar graphs instead of printing values"},
				&cli.IntFlag{Name: flagWidth, Value: 24, Usage: "width of each bar"},
			},
			Action: withDev(readAction),
		},
		{
			Name:  "peak",
			Usage: "record peak acceleration for a while then print it",
			Flags: []cli.Flag{
				&cli.DurationFlag{Name: flagWait, Value: time.Second, Usage: "recording time"},
			},
			Action: withDev(peakAction),
		},
		{
			Name:  "fifo",
			Usage: "fill the FIFO then print its content",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: flagDepth, Value: 510, Usage: "FIFO entries to keep"},
				&cli.StringFlag{Name: flagMode, Value: "Streamed", Usage: "Bypassed, Streamed, Triggered or OldestSaved"},
				&cli.StringFlag{Name: flagFormat, Value: "XYZ", Usage: "stored axes: X, Y, Z, XY, XZ, YZ, XYZ or XYZPeak"},
				&cli.DurationFlag{Name: flagWait, Value: 100 * time.Millisecond, Usage: "time to let the FIFO fill"},
			},
			Action: withDev(fifoAction),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "adxl372: %s.\n", err)
		os.Exit(1)
	}
}

func idAction(c *cli.Context, d *adxl372.Dev) error {
	b, err := d.ReadRegister(adxl372.AdiDevID, 4)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "ADI device ID: %#02x\n", b[0])
	fmt.Fprintf(c.App.Writer, "MEMS ID:       %#02x\n", b[1])
	fmt.Fprintf(c.App.Writer, "Device ID:     %#02x\n", b[2])
	fmt.Fprintf(c.App.Writer, "Revision:      %#02x\n", b[3])
	return d.Verify()
}

func resetAction(c *cli.Context, d *adxl372.Dev) error {
	if err := d.Reset(); err != nil {
		return err
	}
	return d.Verify()
}

func statusAction(c *cli.Context, d *adxl372.Dev) error {
	s, err := d.Status()
	if err != nil {
		return err
	}
	a, err := d.ActivityStatus()
	if err != nil {
		return err
	}
	n, err := d.FIFOEntries()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "status:   %s\nactivity: %#02x\nFIFO:     %d entries\n", s, a, n)
	return nil
}

func readAction(c *cli.Context, d *adxl372.Dev) error {
	o, err := parseODR(c.Int(flagODR))
	if err != nil {
		return err
	}
	bw, err := parseBandwidth(c.Int(flagBW))
	if err != nil {
		return err
	}
	if err := d.SetODR(o); err != nil {
		return err
	}
	if err := d.SetBandwidth(bw); err != nil {
		return err
	}
	if err := d.SetOpMode(adxl372.FullBandwidth); err != nil {
		return err
	}
	var s1d *screen1d.Dev
	if c.Bool(flagBars) {
		s1d = screen1d.New(&screen1d.Opts{X: c.Int(flagWidth)})
		defer s1d.Halt()
	}
	for i := 0; i < c.Int(flagCount); i++ {
		s, err := d.ReadAcceleration(c.Context)
		if err != nil {
			return err
		}
		if s1d != nil {
			if err := s1d.Show(s); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(c.App.Writer, s)
	}
	return nil
}

func peakAction(c *cli.Context, d *adxl372.Dev) error {
	if err := d.ConfigureFIFO(512, adxl372.FIFOStreamed, adxl372.FIFOXYZPeak); err != nil {
		return err
	}
	select {
	case <-c.Context.Done():
		return c.Context.Err()
	case <-time.After(c.Duration(flagWait)):
	}
	s, err := d.ReadPeakAcceleration()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, s)
	return nil
}

func fifoAction(c *cli.Context, d *adxl372.Dev) error {
	m, err := parseFIFOMode(c.String(flagMode))
	if err != nil {
		return err
	}
	f, err := parseFIFOFormat(c.String(flagFormat))
	if err != nil {
		return err
	}
	if err := d.ConfigureFIFO(c.Int(flagDepth), m, f); err != nil {
		return err
	}
	select {
	case <-c.Context.Done():
		return c.Context.Err()
	case <-time.After(c.Duration(flagWait)):
	}
	n, err := d.FIFOEntries()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d entries\n", n)
	// One entry must stay in the FIFO.
	if n < 2 {
		return nil
	}
	e, err := d.ReadFIFO(n - 1)
	if err != nil {
		return err
	}
	for _, s := range adxl372.GroupFIFO(e, f) {
		fmt.Fprintln(c.App.Writer, s)
	}
	return nil
}

func parseODR(hz int) (adxl372.ODR, error) {
	for o := adxl372.ODR400Hz; o <= adxl372.ODR6400Hz; o++ {
		if o.Hz() == hz {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unsupported output data rate %dHz", hz)
}

func parseBandwidth(hz int) (adxl372.Bandwidth, error) {
	for b := adxl372.BW200Hz; b <= adxl372.BW3200Hz; b++ {
		if b.Hz() == hz {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unsupported bandwidth %dHz", hz)
}

func parseFIFOMode(s string) (adxl372.FIFOMode, error) {
	for m := adxl372.FIFOBypassed; m <= adxl372.FIFOOldestSaved; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown FIFO mode %q", s)
}

func parseFIFOFormat(s string) (adxl372.FIFOFormat, error) {
	for f := adxl372.FIFOXYZ; f <= adxl372.FIFOXYZPeak; f++ {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown FIFO format %q", s)
}
