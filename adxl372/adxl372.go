// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	// ErrWrongDevice is returned by Verify when AdiDevID does not read 0xAD.
	ErrWrongDevice = errors.New("adxl372: wrong device")
	// ErrNotXAxisRegister is returned when a threshold is replicated to all
	// axes from an address that is not the X axis high byte of a group.
	ErrNotXAxisRegister = errors.New("adxl372: not an X axis threshold register")
	// ErrInvalidArgument is returned when a value is outside of its domain.
	ErrInvalidArgument = errors.New("adxl372: invalid argument")
	// ErrReadOnlyRegister is returned on an attempt to write a read-only
	// register.
	ErrReadOnlyRegister = errors.New("adxl372: register is read-only")
	// ErrWriteOnlyRegister is returned on an attempt to read a write-only
	// register.
	ErrWriteOnlyRegister = errors.New("adxl372: register is write-only")
	// ErrDataReadyTimeout is returned when no sample became available within
	// Opts.DataReadyTimeout.
	ErrDataReadyTimeout = errors.New("adxl372: timed out waiting for data ready")
)

// SPI settings of the part: mode 0, 8 bits words, up to 10MHz.
var (
	SpiMode = spi.Mode0
	SpiBits = 8
)

// Opts holds the configuration options for the device.
type Opts struct {
	// SPIFrequency is the bus clock. Default is 10MHz.
	SPIFrequency physic.Frequency
	// DataReadyTimeout bounds how long ReadAcceleration polls the status
	// register. 0 means no timeout, only the context can stop the poll.
	DataReadyTimeout time.Duration
	// PollInterval is the pause between two status reads while waiting for a
	// sample. 0 selects the default.
	PollInterval time.Duration
	// ResetDelay is the time to wait after a soft reset before the part is
	// used again.
	ResetDelay time.Duration
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	SPIFrequency:     10 * physic.MegaHertz,
	DataReadyTimeout: time.Second,
	PollInterval:     500 * time.Microsecond,
	ResetDelay:       time.Second,
}

// State is the configuration the driver last wrote to the part.
type State struct {
	Mode               OpMode
	ODR                ODR
	Bandwidth          Bandwidth
	Autosleep          bool
	WakeUpRate         WakeUpRate
	ActivityMode       ActivityMode
	FilterSettle       FilterSettle
	InstantOnThreshold InstantOnThreshold
	// ActivityTime and InactivityTime are the durations requested by the
	// caller, not the register codes derived from them.
	ActivityTime   time.Duration
	InactivityTime time.Duration
	FIFODepth      int
	FIFOMode       FIFOMode
	FIFOFormat     FIFOFormat
}

// powerOnState mirrors the register reset values.
var powerOnState = State{
	Mode:               StandBy,
	ODR:                ODR400Hz,
	Bandwidth:          BW200Hz,
	WakeUpRate:         WUR52ms,
	ActivityMode:       ActivityDefault,
	FilterSettle:       FilterSettle370ms,
	InstantOnThreshold: InstantOnLow,
	// A count of 0 still requires one period.
	ActivityTime:   actPeriod,
	InactivityTime: inactPeriod,
	// FIFOSamples resets to 0x80.
	FIFODepth:  0x80 + 1,
	FIFOMode:   FIFOBypassed,
	FIFOFormat: FIFOXYZ,
}

// Dev is a driver for the ADXL372 accelerometer.
//
// All methods are safe for concurrent use; each operation holds the device
// for all of its bus exchanges.
type Dev struct {
	t     transport
	opts  Opts
	mu    sync.Mutex
	state State

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSPI returns a Dev that communicates over SPI with an ADXL372.
//
// The port is connected but nothing is sent to the part. The driver assumes
// the part is in its power-on state; call Reset to make sure of it. The Opts
// can be nil.
func NewSPI(p spi.Port, o *Opts) (*Dev, error) {
	if o == nil {
		o = &DefaultOpts
	}
	f := o.SPIFrequency
	if f == 0 {
		f = DefaultOpts.SPIFrequency
	}
	c, err := p.Connect(f, SpiMode, SpiBits)
	if err != nil {
		return nil, fmt.Errorf("adxl372: %w", err)
	}
	return newDev(c, *o), nil
}

func newDev(c conn.Conn, o Opts) *Dev {
	return &Dev{
		t:     transport{c: c, debug: noop},
		opts:  o,
		state: powerOnState,
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("ADXL372{%s}", d.t.c)
}

// EnableDebug traces every register access through f.
func (d *Dev) EnableDebug(f DebugF) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if f == nil {
		f = noop
	}
	d.t.debug = f
}

// State returns the configuration last written by the driver.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Halt stops SenseContinuous if running and puts the part in StandBy.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()
	if cancel != nil {
		cancel()
		d.wg.Wait()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setOpMode(StandBy)
}

// SetOpMode sets the operating mode.
func (d *Dev) SetOpMode(m OpMode) error {
	if m > FullBandwidth {
		return fmt.Errorf("%w: operating mode %d", ErrInvalidArgument, m)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setOpMode(m)
}

func (d *Dev) setOpMode(m OpMode) error {
	if err := d.t.update(PowerCtl, powerCtlOpModeMask, powerCtlOpModePos, byte(m)); err != nil {
		return err
	}
	d.state.Mode = m
	return nil
}

// SetODR sets the output data rate.
//
// Activity and inactivity timers set before are not rescaled; set them again
// after changing to or from ODR6400Hz.
func (d *Dev) SetODR(o ODR) error {
	if o > ODR6400Hz {
		return fmt.Errorf("%w: output data rate %d", ErrInvalidArgument, o)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.update(Timing, timingODRMask, timingODRPos, byte(o)); err != nil {
		return err
	}
	d.state.ODR = o
	return nil
}

// SetBandwidth sets the bandwidth of the anti-aliasing filter. It should be no
// more than half the output data rate.
func (d *Dev) SetBandwidth(b Bandwidth) error {
	if b > BW3200Hz {
		return fmt.Errorf("%w: bandwidth %d", ErrInvalidArgument, b)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.update(Measure, measureBandwidthMask, measureBandwidthPos, byte(b)); err != nil {
		return err
	}
	d.state.Bandwidth = b
	return nil
}

// SetAutosleep makes the part go back to WakeUp mode on inactivity and into
// measurement on activity.
func (d *Dev) SetAutosleep(enable bool) error {
	var v byte
	if enable {
		v = 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.update(Measure, measureAutosleepMask, measureAutosleepPos, v); err != nil {
		return err
	}
	d.state.Autosleep = enable
	return nil
}

// SetWakeUpRate sets the duration of the sleep phase of WakeUp mode.
func (d *Dev) SetWakeUpRate(w WakeUpRate) error {
	if w > WUR24576ms {
		return fmt.Errorf("%w: wake-up rate %d", ErrInvalidArgument, w)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.update(Timing, timingWURMask, timingWURPos, byte(w)); err != nil {
		return err
	}
	d.state.WakeUpRate = w
	return nil
}

// SetActivityMode sets the activity and inactivity processing mode.
func (d *Dev) SetActivityMode(m ActivityMode) error {
	if m > ActivityLooped {
		return fmt.Errorf("%w: activity mode %d", ErrInvalidArgument, m)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.update(Measure, measureActProcMask, measureActProcPos, byte(m)); err != nil {
		return err
	}
	d.state.ActivityMode = m
	return nil
}

// SetFilterSettle sets the filter settling time.
func (d *Dev) SetFilterSettle(f FilterSettle) error {
	if f > FilterSettle16ms {
		return fmt.Errorf("%w: filter settle %d", ErrInvalidArgument, f)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.update(PowerCtl, powerCtlFilterSettleMask, powerCtlFilterSettlePos, byte(f)); err != nil {
		return err
	}
	d.state.FilterSettle = f
	return nil
}

// SetInstantOnThreshold sets the impact level that wakes the part in
// InstantOn mode.
func (d *Dev) SetInstantOnThreshold(t InstantOnThreshold) error {
	if t > InstantOnHigh {
		return fmt.Errorf("%w: instant-on threshold %d", ErrInvalidArgument, t)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.update(PowerCtl, powerCtlInstaOnMask, powerCtlInstaOnPos, byte(t)); err != nil {
		return err
	}
	d.state.InstantOnThreshold = t
	return nil
}

// SetThreshold writes t to the threshold register pair whose high byte is at
// addr.
//
// With replicate, the same pair is written to the X, Y and Z registers of the
// group in one burst; addr must then be XThreshActH, XThreshAct2H or
// XThreshInactH, otherwise ErrNotXAxisRegister is returned and nothing is
// written.
func (d *Dev) SetThreshold(addr byte, t Threshold, replicate bool) error {
	if t.MilliG < 0 {
		return fmt.Errorf("%w: negative threshold %dmg", ErrInvalidArgument, t.MilliG)
	}
	if replicate {
		if !isXThresholdHigh(addr) {
			return fmt.Errorf("%w: %#x", ErrNotXAxisRegister, addr)
		}
	} else if !isThresholdHigh(addr) {
		return fmt.Errorf("%w: %#x is not a threshold high byte register", ErrInvalidArgument, addr)
	}
	b := encodeThreshold(t)
	data := b[:]
	if replicate {
		data = []byte{b[0], b[1], b[0], b[1], b[0], b[1]}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t.write(addr, data...)
}

// SetThresholds writes t to the X, Y and Z registers of the group k.
func (d *Dev) SetThresholds(k ThresholdKind, t Threshold) error {
	addr, ok := k.xHigh()
	if !ok {
		return fmt.Errorf("%w: threshold kind %d", ErrInvalidArgument, k)
	}
	return d.SetThreshold(addr, t, true)
}

func isXThresholdHigh(addr byte) bool {
	return addr == XThreshActH || addr == XThreshAct2H || addr == XThreshInactH
}

func isThresholdHigh(addr byte) bool {
	for _, x := range []byte{XThreshActH, XThreshAct2H, XThreshInactH} {
		if addr == x || addr == x+2 || addr == x+4 {
			return true
		}
	}
	return false
}

// SetActivityTime sets how long activity must last to be detected.
//
// The duration is converted to periods of 3.3ms at 6400Hz and 6.6ms at other
// output data rates, using the rate last set with SetODR, rounding to the
// nearest period. A count of 0 still needs one period. Durations outside of
// [0, 255] periods are limited and saturated is true.
func (d *Dev) SetActivityTime(t time.Duration) (saturated bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	count, saturated := periods(t, activityPeriod(d.state.ODR), 0xFF)
	if err := d.t.write(TimeAct, byte(count)); err != nil {
		return saturated, err
	}
	d.state.ActivityTime = t
	return saturated, nil
}

// SetInactivityTime sets how long inactivity must last to be detected.
//
// The duration is converted to periods of 13ms at 6400Hz and 26ms at other
// output data rates, using the rate last set with SetODR, rounding to the
// nearest period. Durations outside of [0, 65535] periods are limited and
// saturated is true.
func (d *Dev) SetInactivityTime(t time.Duration) (saturated bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	count, saturated := periods(t, inactivityPeriod(d.state.ODR), 0xFFFF)
	if err := d.t.write(TimeInactH, byte(count>>8)); err != nil {
		return saturated, err
	}
	if err := d.t.write(TimeInactL, byte(count)); err != nil {
		return saturated, err
	}
	d.state.InactivityTime = t
	return saturated, nil
}

// ConfigureFIFO sets the FIFO depth, mode and format.
//
// depth is the number of FIFO entries kept, one per stored axis, from 1 to
// 512; any other value selects 512. The FIFO can only be configured in StandBy: the part is put in StandBy
// first and left in FullBandwidth after, whatever the mode was before. If a bus
// exchange fails midway the part may be left in StandBy.
func (d *Dev) ConfigureFIFO(depth int, m FIFOMode, f FIFOFormat) error {
	if m > FIFOOldestSaved {
		return fmt.Errorf("%w: FIFO mode %d", ErrInvalidArgument, m)
	}
	if f > FIFOXYZPeak {
		return fmt.Errorf("%w: FIFO format %d", ErrInvalidArgument, f)
	}
	samples, ctl, depth := encodeFIFO(depth, m, f)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.setOpMode(StandBy); err != nil {
		return err
	}
	if err := d.t.write(FIFOSamples, samples); err != nil {
		return err
	}
	if err := d.t.write(FIFOCtl, ctl); err != nil {
		return err
	}
	d.state.FIFODepth = depth
	d.state.FIFOMode = m
	d.state.FIFOFormat = f
	return d.setOpMode(FullBandwidth)
}

// DeviceID returns the content of AdiDevID, 0xAD on a genuine part.
func (d *Dev) DeviceID() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t.readByte(AdiDevID)
}

// Verify returns ErrWrongDevice if the part does not identify as an Analog
// Devices accelerometer. Any other value usually means wrong wiring or chip
// select.
func (d *Dev) Verify() error {
	id, err := d.DeviceID()
	if err != nil {
		return err
	}
	if id != AdiDevIDValue {
		return fmt.Errorf("%w: id %#x, expected %#x", ErrWrongDevice, id, AdiDevIDValue)
	}
	return nil
}

// Status reads the Status1 register.
func (d *Dev) Status() (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.t.readByte(Status1)
	return Status(s), err
}

// ActivityStatus reads the Status2 register.
func (d *Dev) ActivityStatus() (ActivityStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.t.readByte(Status2)
	return ActivityStatus(s), err
}

// ReadAcceleration waits for a new sample then reads it.
//
// The status register is polled every Opts.PollInterval until DataReady is
// set, Opts.DataReadyTimeout elapsed (ErrDataReadyTimeout) or ctx is done.
func (d *Dev) ReadAcceleration(ctx context.Context) (Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.waitDataReady(ctx); err != nil {
		return Sample{}, err
	}
	b, err := d.t.read(XDataH, 6)
	if err != nil {
		return Sample{}, err
	}
	return decodeSample(b), nil
}

func (d *Dev) waitDataReady(ctx context.Context) error {
	var deadline time.Time
	if d.opts.DataReadyTimeout > 0 {
		deadline = time.Now().Add(d.opts.DataReadyTimeout)
	}
	var tick *time.Ticker
	defer func() {
		if tick != nil {
			tick.Stop()
		}
	}()
	for {
		s, err := d.t.readByte(Status1)
		if err != nil {
			return err
		}
		if Status(s)&DataReady != 0 {
			return nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return ErrDataReadyTimeout
		}
		if tick == nil {
			interval := d.opts.PollInterval
			if interval <= 0 {
				interval = DefaultOpts.PollInterval
			}
			tick = time.NewTicker(interval)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}

// ReadPeakAcceleration reads the highest peak recorded while the FIFO is in
// the FIFOXYZPeak format.
func (d *Dev) ReadPeakAcceleration() (Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, err := d.t.read(XMaxPeakH, 6)
	if err != nil {
		return Sample{}, err
	}
	return decodeSample(b), nil
}

// FIFOEntries returns the number of entries currently held by the FIFO.
func (d *Dev) FIFOEntries() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, err := d.t.read(FIFOEntries2, 2)
	if err != nil {
		return 0, err
	}
	return decodeFIFOEntries(b), nil
}

// ReadFIFO pops n entries from the FIFO. Use GroupFIFO to turn them into
// samples. One entry must always be left in the FIFO.
func (d *Dev) ReadFIFO(n int) ([]FIFOEntry, error) {
	if n < 1 || n > maxFIFODepth {
		return nil, fmt.Errorf("%w: FIFO read of %d entries", ErrInvalidArgument, n)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	b, err := d.t.read(FIFOData, 2*n)
	if err != nil {
		return nil, err
	}
	out := make([]FIFOEntry, n)
	for i := range out {
		out[i] = decodeFIFOEntry(b[2*i], b[2*i+1])
	}
	return out, nil
}

// SenseContinuous reads a sample every interval and sends it on the returned
// channel until Halt is called. Samples that fail to be read are skipped.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan Sample, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval %s", ErrInvalidArgument, interval)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return nil, errors.New("adxl372: already sensing, call Halt first")
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	ch := make(chan Sample)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(ch)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			s, err := d.ReadAcceleration(ctx)
			if err != nil {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case ch <- s:
			}
		}
	}()
	return ch, nil
}

// Reset performs a soft reset and waits Opts.ResetDelay. The driver state goes
// back to the power-on defaults.
func (d *Dev) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.t.write(SReset, resetCode); err != nil {
		return err
	}
	time.Sleep(d.opts.ResetDelay)
	d.state = powerOnState
	return nil
}

// shadowed registers can only be written through their setters so that State
// stays in sync.
func shadowed(addr byte) bool {
	switch addr {
	case TimeAct, TimeInactH, TimeInactL, FIFOSamples, FIFOCtl, Timing, Measure, PowerCtl, SReset:
		return true
	}
	return false
}

// ReadRegister reads n consecutive registers starting at addr.
//
// Every register of the burst must be readable. FIFOData does not
// auto-increment: a burst there pops n bytes from the FIFO.
func (d *Dev) ReadRegister(addr byte, n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: read of %d bytes", ErrInvalidArgument, n)
	}
	last := n
	if addr == FIFOData {
		last = 1
	}
	for i := 0; i < last; i++ {
		a := int(addr) + i
		if a > 0xFF {
			return nil, fmt.Errorf("%w: read past %#x", ErrInvalidArgument, addr)
		}
		switch RegisterAccess(byte(a)) {
		case WriteOnly:
			return nil, fmt.Errorf("%w: %#x", ErrWriteOnlyRegister, a)
		case Reserved:
			return nil, fmt.Errorf("%w: reserved register %#x", ErrInvalidArgument, a)
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t.read(addr, n)
}

// WriteRegister writes data to consecutive registers starting at addr.
//
// Registers backing State (timing, measure, power control, FIFO control,
// activity timers and reset) are refused; use the dedicated methods.
func (d *Dev) WriteRegister(addr byte, data ...byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty write", ErrInvalidArgument)
	}
	for i := range data {
		a := addr + byte(i)
		switch RegisterAccess(a) {
		case ReadOnly:
			return fmt.Errorf("%w: %#x", ErrReadOnlyRegister, a)
		case Reserved:
			return fmt.Errorf("%w: reserved register %#x", ErrInvalidArgument, a)
		}
		if shadowed(a) {
			return fmt.Errorf("%w: register %#x has a dedicated setter", ErrInvalidArgument, a)
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t.write(addr, data...)
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
