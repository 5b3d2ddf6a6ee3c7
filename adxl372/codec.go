// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import "time"

// encodeField returns cur with value placed at shift. mask holds the bits of
// cur to preserve. value is not range checked: bits shifted outside the field
// are dropped by the mask.
func encodeField(cur, mask, shift, value byte) byte {
	return (cur & mask) | ((value << shift) &^ mask)
}

// decodeField extracts the field cleared by mask from reg.
func decodeField(reg, mask, shift byte) byte {
	return (reg &^ mask) >> shift
}

// decode12 converts a left justified 12-bit two's complement value.
//
// The low nibble of lo is padding (or flags in the FIFO).
func decode12(hi, lo byte) int16 {
	v := (uint16(hi)<<8 | uint16(lo)) >> 4
	if v&0x800 != 0 {
		return int16(v) - 4096
	}
	return int16(v)
}

// decodeSample converts a 6 bytes burst (XH, XL, YH, YL, ZH, ZL).
func decodeSample(b []byte) Sample {
	return Sample{
		X: decode12(b[0], b[1]),
		Y: decode12(b[2], b[3]),
		Z: decode12(b[4], b[5]),
	}
}

// maxThresholdCode is the largest 11-bit threshold code.
const maxThresholdCode = 0x7FF

// encodeThreshold packs a threshold into its high and low register bytes.
//
// The code is mg/100 truncated to 11 bits: the top 8 bits go in the high
// byte, the bottom 3 bits in bits 7..5 of the low byte.
func encodeThreshold(t Threshold) [2]byte {
	code := uint16(t.MilliG/MilliGPerLSB) & maxThresholdCode
	low := byte(code << 5)
	if t.Referenced {
		low |= threshReferencedBit
	}
	if t.Enabled {
		low |= threshEnableBit
	}
	return [2]byte{byte(code >> 3), low}
}

// Timer period of the activity and inactivity counters.
const (
	actPeriodFast   = 3300 * time.Microsecond
	actPeriod       = 6600 * time.Microsecond
	inactPeriodFast = 13 * time.Millisecond
	inactPeriod     = 26 * time.Millisecond
)

func activityPeriod(o ODR) time.Duration {
	if o == ODR6400Hz {
		return actPeriodFast
	}
	return actPeriod
}

func inactivityPeriod(o ODR) time.Duration {
	if o == ODR6400Hz {
		return inactPeriodFast
	}
	return inactPeriod
}

// periods returns round(d/period), rounding half up, limited to [0, limit].
// saturated is true when d had to be limited.
func periods(d, period time.Duration, limit uint16) (count uint16, saturated bool) {
	if d <= 0 {
		return 0, d < 0
	}
	// Round on quotient and remainder so large durations cannot overflow.
	n := d / period
	if d%period >= period-period/2 {
		n++
	}
	if n > time.Duration(limit) {
		return limit, true
	}
	return uint16(n), false
}

// Depth limits of the FIFO.
const (
	minFIFODepth = 1
	maxFIFODepth = 512
)

// encodeFIFO returns the FIFOSamples and FIFOCtl register values.
//
// depth outside [1, 512] is set to 512. The part keeps one slot free so the
// stored value is depth-1; its 9th bit goes in FIFOCtl.
func encodeFIFO(depth int, m FIFOMode, f FIFOFormat) (samples, ctl byte, actual int) {
	if depth < minFIFODepth || depth > maxFIFODepth {
		depth = maxFIFODepth
	}
	hw := uint16(depth - 1)
	ctl = byte(m)<<fifoCtlModePos | byte(f)<<fifoCtlFormatPos | byte(hw>>8)<<fifoCtlSamp8Pos
	return byte(hw), ctl, depth
}

// decodeFIFOEntries combines FIFOEntries2 and FIFOEntries1.
func decodeFIFOEntries(b []byte) int {
	return int(b[0]&0x3)<<8 | int(b[1])
}

// decodeFIFOEntry converts one 16-bit word read from FIFOData.
func decodeFIFOEntry(hi, lo byte) FIFOEntry {
	return FIFOEntry{Value: decode12(hi, lo), SeriesStart: lo&0x1 != 0}
}

// GroupFIFO assembles FIFO entries into samples according to format. Axes not
// stored by format are left at 0.
//
// For multi-axis formats, entries before the first series start are skipped,
// as is any incomplete set at the end. A set that does not begin with a series
// start is dropped and grouping resumes at the next one.
func GroupFIFO(entries []FIFOEntry, format FIFOFormat) []Sample {
	axes := format.axes()
	if len(axes) == 0 {
		return nil
	}
	var out []Sample
	for i := 0; i+len(axes) <= len(entries); {
		if len(axes) > 1 && !entries[i].SeriesStart {
			i++
			continue
		}
		var s Sample
		for j, a := range axes {
			v := entries[i+j].Value
			switch a {
			case axisX:
				s.X = v
			case axisY:
				s.Y = v
			case axisZ:
				s.Z = v
			}
		}
		out = append(out, s)
		i += len(axes)
	}
	return out
}
