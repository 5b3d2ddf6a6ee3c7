// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"fmt"
	"strings"
	"time"
)

// OpMode is the operating mode stored in the power control register.
type OpMode byte

const (
	// StandBy is the low-current mode; no measurements are taken.
	StandBy OpMode = 0
	// WakeUp sleeps for the wake-up rate then wakes for the filter settle time.
	WakeUp OpMode = 1
	// InstantOn stays in low-current mode until an impact above the instant-on
	// threshold is seen, then switches to measurement.
	InstantOn OpMode = 2
	// FullBandwidth is the full bandwidth measurement mode.
	FullBandwidth OpMode = 3
)

func (m OpMode) String() string {
	switch m {
	case StandBy:
		return "StandBy"
	case WakeUp:
		return "WakeUp"
	case InstantOn:
		return "InstantOn"
	case FullBandwidth:
		return "FullBandwidth"
	default:
		return fmt.Sprintf("OpMode(%d)", byte(m))
	}
}

// ODR is the output data rate.
type ODR byte

const (
	ODR400Hz  ODR = 0
	ODR800Hz  ODR = 1
	ODR1600Hz ODR = 2
	ODR3200Hz ODR = 3
	ODR6400Hz ODR = 4
)

var odrHz = [...]int{400, 800, 1600, 3200, 6400}

// Hz returns the sampling frequency in hertz, 0 if o is not valid.
func (o ODR) Hz() int {
	if int(o) >= len(odrHz) {
		return 0
	}
	return odrHz[o]
}

func (o ODR) String() string {
	if int(o) >= len(odrHz) {
		return fmt.Sprintf("ODR(%d)", byte(o))
	}
	return fmt.Sprintf("%dHz", odrHz[o])
}

// Bandwidth of the internal anti-aliasing filter. It should be no more than
// half the ODR; the driver does not enforce it.
type Bandwidth byte

const (
	BW200Hz  Bandwidth = 0
	BW400Hz  Bandwidth = 1
	BW800Hz  Bandwidth = 2
	BW1600Hz Bandwidth = 3
	BW3200Hz Bandwidth = 4
)

var bandwidthHz = [...]int{200, 400, 800, 1600, 3200}

// Hz returns the filter bandwidth in hertz, 0 if b is not valid.
func (b Bandwidth) Hz() int {
	if int(b) >= len(bandwidthHz) {
		return 0
	}
	return bandwidthHz[b]
}

func (b Bandwidth) String() string {
	if int(b) >= len(bandwidthHz) {
		return fmt.Sprintf("Bandwidth(%d)", byte(b))
	}
	return fmt.Sprintf("%dHz", bandwidthHz[b])
}

// WakeUpRate is the duration of the sleep phase of wake-up mode.
type WakeUpRate byte

const (
	WUR52ms    WakeUpRate = 0
	WUR104ms   WakeUpRate = 1
	WUR208ms   WakeUpRate = 2
	WUR512ms   WakeUpRate = 3
	WUR2048ms  WakeUpRate = 4
	WUR4096ms  WakeUpRate = 5
	WUR8192ms  WakeUpRate = 6
	WUR24576ms WakeUpRate = 7
)

var wakeUpPeriods = [...]time.Duration{
	52 * time.Millisecond,
	104 * time.Millisecond,
	208 * time.Millisecond,
	512 * time.Millisecond,
	2048 * time.Millisecond,
	4096 * time.Millisecond,
	8192 * time.Millisecond,
	24576 * time.Millisecond,
}

// Period returns the sleep duration, 0 if w is not valid.
func (w WakeUpRate) Period() time.Duration {
	if int(w) >= len(wakeUpPeriods) {
		return 0
	}
	return wakeUpPeriods[w]
}

func (w WakeUpRate) String() string {
	if int(w) >= len(wakeUpPeriods) {
		return fmt.Sprintf("WakeUpRate(%d)", byte(w))
	}
	return wakeUpPeriods[w].String()
}

// ActivityMode selects how activity and inactivity detection interact.
type ActivityMode byte

const (
	// ActivityDefault runs activity and inactivity detection simultaneously;
	// the host reads and clears interrupts.
	ActivityDefault ActivityMode = 0
	// ActivityLinked looks for activity after inactivity and vice versa; the
	// host must service interrupts.
	ActivityLinked ActivityMode = 1
	// ActivityLooped behaves like ActivityLinked without host servicing.
	ActivityLooped ActivityMode = 2
)

func (m ActivityMode) String() string {
	switch m {
	case ActivityDefault:
		return "Default"
	case ActivityLinked:
		return "Linked"
	case ActivityLooped:
		return "Looped"
	default:
		return fmt.Sprintf("ActivityMode(%d)", byte(m))
	}
}

// FilterSettle is the filter settling time on wake-up.
type FilterSettle byte

const (
	// FilterSettle370ms should be used whenever an internal filter is enabled.
	FilterSettle370ms FilterSettle = 0
	// FilterSettle16ms is only suitable with both filters disabled.
	FilterSettle16ms FilterSettle = 1
)

func (f FilterSettle) String() string {
	switch f {
	case FilterSettle370ms:
		return "370ms"
	case FilterSettle16ms:
		return "16ms"
	default:
		return fmt.Sprintf("FilterSettle(%d)", byte(f))
	}
}

// InstantOnThreshold is the impact level that wakes the part in InstantOn
// mode.
type InstantOnThreshold byte

const (
	InstantOnLow  InstantOnThreshold = 0 // 10-15g
	InstantOnHigh InstantOnThreshold = 1 // 30-40g
)

func (t InstantOnThreshold) String() string {
	switch t {
	case InstantOnLow:
		return "Low"
	case InstantOnHigh:
		return "High"
	default:
		return fmt.Sprintf("InstantOnThreshold(%d)", byte(t))
	}
}

// FIFOMode is the buffering mode of the FIFO.
type FIFOMode byte

const (
	// FIFOBypassed disables the FIFO.
	FIFOBypassed FIFOMode = 0
	// FIFOStreamed keeps the last N samples.
	FIFOStreamed FIFOMode = 1
	// FIFOTriggered streams until an event then keeps the samples around it.
	FIFOTriggered FIFOMode = 2
	// FIFOOldestSaved keeps the first N samples; the FIFO must be disabled
	// and enabled again to collect a new set.
	FIFOOldestSaved FIFOMode = 3
)

func (m FIFOMode) String() string {
	switch m {
	case FIFOBypassed:
		return "Bypassed"
	case FIFOStreamed:
		return "Streamed"
	case FIFOTriggered:
		return "Triggered"
	case FIFOOldestSaved:
		return "OldestSaved"
	default:
		return fmt.Sprintf("FIFOMode(%d)", byte(m))
	}
}

// FIFOFormat selects which axes are stored in the FIFO.
//
// 3-axis and peak formats can hold at most 170 samples, 2-axis formats 256.
// Only single axis formats can use the full 512 entries.
type FIFOFormat byte

const (
	FIFOXYZ     FIFOFormat = 0
	FIFOX       FIFOFormat = 1
	FIFOY       FIFOFormat = 2
	FIFOXY      FIFOFormat = 3
	FIFOZ       FIFOFormat = 4
	FIFOXZ      FIFOFormat = 5
	FIFOYZ      FIFOFormat = 6
	FIFOXYZPeak FIFOFormat = 7
)

// axes returns the axes stored per sample, in FIFO order.
func (f FIFOFormat) axes() []axis {
	switch f {
	case FIFOX:
		return []axis{axisX}
	case FIFOY:
		return []axis{axisY}
	case FIFOXY:
		return []axis{axisX, axisY}
	case FIFOZ:
		return []axis{axisZ}
	case FIFOXZ:
		return []axis{axisX, axisZ}
	case FIFOYZ:
		return []axis{axisY, axisZ}
	case FIFOXYZ, FIFOXYZPeak:
		return []axis{axisX, axisY, axisZ}
	default:
		return nil
	}
}

func (f FIFOFormat) String() string {
	if f == FIFOXYZPeak {
		return "XYZPeak"
	}
	a := f.axes()
	if a == nil {
		return fmt.Sprintf("FIFOFormat(%d)", byte(f))
	}
	var b strings.Builder
	for _, x := range a {
		b.WriteString(x.String())
	}
	return b.String()
}

type axis byte

const (
	axisX axis = iota
	axisY
	axisZ
)

func (a axis) String() string {
	return string("XYZ"[a])
}

// ThresholdKind selects one of the three threshold register groups.
type ThresholdKind byte

const (
	// Activity is the activity detection threshold.
	Activity ThresholdKind = iota
	// Activity2 is the motion warning threshold. It can raise an interrupt
	// or a status bit but takes no part in linked or looped processing.
	Activity2
	// Inactivity is the inactivity detection threshold.
	Inactivity
)

// xHigh returns the address of the X axis high byte of the group.
func (k ThresholdKind) xHigh() (byte, bool) {
	switch k {
	case Activity:
		return XThreshActH, true
	case Activity2:
		return XThreshAct2H, true
	case Inactivity:
		return XThreshInactH, true
	default:
		return 0, false
	}
}

func (k ThresholdKind) String() string {
	switch k {
	case Activity:
		return "Activity"
	case Activity2:
		return "Activity2"
	case Inactivity:
		return "Inactivity"
	default:
		return fmt.Sprintf("ThresholdKind(%d)", byte(k))
	}
}

// Threshold configures one axis of activity or inactivity detection.
type Threshold struct {
	// MilliG is the threshold in mg. The part resolves 100mg per code and
	// holds 11 bits; larger values wrap.
	MilliG int
	// Referenced selects referenced (AC) processing instead of absolute.
	Referenced bool
	// Enabled includes the axis in detection.
	Enabled bool
}

// Status is the content of the Status1 register.
type Status byte

const (
	DataReady   Status = 1 << 0
	FIFOReady   Status = 1 << 1
	FIFOFull    Status = 1 << 2
	FIFOOverrun Status = 1 << 3
	// UserNVMBusy is set while the non-volatile memory is being loaded.
	UserNVMBusy Status = 1 << 5
	// Awake is set when the part is in measurement, after activity in
	// linked or looped mode.
	Awake Status = 1 << 6
	// ErrUserRegs flags an error detected in the user register
	// configuration.
	ErrUserRegs Status = 1 << 7
)

func (s Status) String() string {
	var out []string
	for _, f := range []struct {
		bit  Status
		name string
	}{
		{DataReady, "DataReady"},
		{FIFOReady, "FIFOReady"},
		{FIFOFull, "FIFOFull"},
		{FIFOOverrun, "FIFOOverrun"},
		{UserNVMBusy, "UserNVMBusy"},
		{Awake, "Awake"},
		{ErrUserRegs, "ErrUserRegs"},
	} {
		if s&f.bit != 0 {
			out = append(out, f.name)
			s &^= f.bit
		}
	}
	if s != 0 {
		out = append(out, fmt.Sprintf("%#x", byte(s)))
	}
	if len(out) == 0 {
		return "0"
	}
	return strings.Join(out, "|")
}

// ActivityStatus is the raw content of the Status2 register. Refer to the
// datasheet for the meaning of each bit.
type ActivityStatus byte

// MilliGPerLSB is the scale of a Sample: 100mg per least significant bit.
const MilliGPerLSB = 100

// Sample is one acceleration measurement in raw LSBs. Multiply by
// MilliGPerLSB to get mg.
type Sample struct {
	X int16
	Y int16
	Z int16
}

// String returns a string representation of the Sample.
func (s Sample) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", s.X, s.Y, s.Z)
}

// FIFOEntry is one 16-bit word read from the FIFO.
type FIFOEntry struct {
	Value int16
	// SeriesStart is set on the first axis of each sample set.
	SeriesStart bool
}
