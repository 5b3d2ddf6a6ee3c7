// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeField(t *testing.T) {
	fields := []struct {
		name  string
		mask  byte
		shift byte
		width byte
	}{
		{"opmode", powerCtlOpModeMask, powerCtlOpModePos, 2},
		{"filter settle", powerCtlFilterSettleMask, powerCtlFilterSettlePos, 1},
		{"instant-on", powerCtlInstaOnMask, powerCtlInstaOnPos, 1},
		{"odr", timingODRMask, timingODRPos, 3},
		{"wur", timingWURMask, timingWURPos, 3},
		{"bandwidth", measureBandwidthMask, measureBandwidthPos, 3},
		{"actproc", measureActProcMask, measureActProcPos, 2},
		{"autosleep", measureAutosleepMask, measureAutosleepPos, 1},
	}
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			for cur := 0; cur < 256; cur++ {
				for v := byte(0); v < 1<<f.width; v++ {
					got := encodeField(byte(cur), f.mask, f.shift, v)
					if d := decodeField(got, f.mask, f.shift); d != v {
						t.Fatalf("encodeField(%#x, %#x, %d, %d) = %#x, decodes to %d", cur, f.mask, f.shift, v, got, d)
					}
					if got&f.mask != byte(cur)&f.mask {
						t.Fatalf("encodeField(%#x, %#x, %d, %d) = %#x changed preserved bits", cur, f.mask, f.shift, v, got)
					}
				}
			}
		})
	}
}

func TestEncodeFieldOverflow(t *testing.T) {
	// A value wider than the field is cut by the mask, neighbours survive.
	if got := encodeField(0xE0, timingWURMask, timingWURPos, 0xFF); got != 0xFC {
		t.Errorf("got %#x, expected 0xfc", got)
	}
}

func TestDecodeSample(t *testing.T) {
	tests := []struct {
		in   []byte
		want Sample
	}{
		{[]byte{0x7F, 0xF0, 0x80, 0x00, 0x00, 0x10}, Sample{X: 2047, Y: -2048, Z: 1}},
		{[]byte{0xFF, 0xF0, 0x00, 0x00, 0xFF, 0xEF}, Sample{X: -1, Y: 0, Z: -2}},
		// The padding nibble is ignored.
		{[]byte{0x00, 0x1F, 0x00, 0x0F, 0x01, 0x00}, Sample{X: 1, Y: 0, Z: 16}},
	}
	for _, test := range tests {
		if got := decodeSample(test.in); got != test.want {
			t.Errorf("decodeSample(% x) = %s, expected %s", test.in, got, test.want)
		}
	}
}

func TestEncodeThreshold(t *testing.T) {
	tests := []struct {
		in   Threshold
		want [2]byte
	}{
		{Threshold{MilliG: 100, Referenced: true, Enabled: true}, [2]byte{0x00, 0x23}},
		{Threshold{MilliG: 100}, [2]byte{0x00, 0x20}},
		{Threshold{MilliG: 199, Enabled: true}, [2]byte{0x00, 0x21}},
		{Threshold{MilliG: 1000, Referenced: true}, [2]byte{0x01, 0x42}},
		{Threshold{MilliG: 204700, Enabled: true}, [2]byte{0xFF, 0xE1}},
		// 2048 does not fit in 11 bits.
		{Threshold{MilliG: 204800, Enabled: true}, [2]byte{0x00, 0x01}},
		{Threshold{MilliG: 0}, [2]byte{0x00, 0x00}},
	}
	for _, test := range tests {
		if got := encodeThreshold(test.in); got != test.want {
			t.Errorf("encodeThreshold(%+v) = % x, expected % x", test.in, got, test.want)
		}
	}
}

func TestPeriods(t *testing.T) {
	tests := []struct {
		name      string
		d         time.Duration
		period    time.Duration
		limit     uint16
		want      uint16
		saturated bool
	}{
		{"one activity period", 6600 * time.Microsecond, activityPeriod(ODR400Hz), 0xFF, 1, false},
		{"one fast activity period", 3300 * time.Microsecond, activityPeriod(ODR6400Hz), 0xFF, 1, false},
		{"half rounds up", 9900 * time.Microsecond, actPeriod, 0xFF, 2, false},
		{"below half rounds down", 9899 * time.Microsecond, actPeriod, 0xFF, 1, false},
		{"zero", 0, actPeriod, 0xFF, 0, false},
		{"negative", -time.Second, actPeriod, 0xFF, 0, true},
		{"activity saturates", 2 * time.Second, activityPeriod(ODR6400Hz), 0xFF, 0xFF, true},
		{"largest activity", 255 * actPeriod, actPeriod, 0xFF, 0xFF, false},
		{"inactivity", 300 * inactPeriod, inactivityPeriod(ODR800Hz), 0xFFFF, 300, false},
		{"fast inactivity", 26 * time.Millisecond, inactivityPeriod(ODR6400Hz), 0xFFFF, 2, false},
		{"inactivity saturates", 70000 * inactPeriod, inactPeriod, 0xFFFF, 0xFFFF, true},
		{"largest duration activity", math.MaxInt64, actPeriod, 0xFF, 0xFF, true},
		{"largest duration fast activity", math.MaxInt64, actPeriodFast, 0xFF, 0xFF, true},
		{"largest duration inactivity", math.MaxInt64, inactPeriod, 0xFFFF, 0xFFFF, true},
		{"just above largest inactivity", 65535*inactPeriod + inactPeriod/2, inactPeriod, 0xFFFF, 0xFFFF, true},
		{"just below largest inactivity", 65535*inactPeriod + inactPeriod/2 - 1, inactPeriod, 0xFFFF, 0xFFFF, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, sat := periods(test.d, test.period, test.limit)
			if got != test.want || sat != test.saturated {
				t.Errorf("periods(%s, %s) = %d, %t; expected %d, %t", test.d, test.period, got, sat, test.want, test.saturated)
			}
		})
	}
}

func TestEncodeFIFO(t *testing.T) {
	tests := []struct {
		depth   int
		mode    FIFOMode
		format  FIFOFormat
		samples byte
		ctl     byte
		actual  int
	}{
		{512, FIFOBypassed, FIFOXYZ, 0xFF, 0x01, 512},
		{1, FIFOBypassed, FIFOXYZ, 0x00, 0x00, 1},
		{0, FIFOBypassed, FIFOXYZ, 0xFF, 0x01, 512},
		{-5, FIFOBypassed, FIFOXYZ, 0xFF, 0x01, 512},
		{513, FIFOBypassed, FIFOXYZ, 0xFF, 0x01, 512},
		{256, FIFOBypassed, FIFOXYZ, 0xFF, 0x00, 256},
		{257, FIFOBypassed, FIFOXYZ, 0x00, 0x01, 257},
		{170, FIFOStreamed, FIFOXYZ, 0xA9, 0x02, 170},
		{1, FIFOOldestSaved, FIFOXYZPeak, 0x00, 0x3E, 1},
		{100, FIFOTriggered, FIFOYZ, 0x63, 0x34, 100},
	}
	for _, test := range tests {
		samples, ctl, actual := encodeFIFO(test.depth, test.mode, test.format)
		if samples != test.samples || ctl != test.ctl || actual != test.actual {
			t.Errorf("encodeFIFO(%d, %s, %s) = %#x, %#x, %d; expected %#x, %#x, %d",
				test.depth, test.mode, test.format, samples, ctl, actual, test.samples, test.ctl, test.actual)
		}
	}
}

func TestDecodeFIFOEntries(t *testing.T) {
	tests := []struct {
		in   []byte
		want int
	}{
		{[]byte{0x02, 0x34}, 564},
		{[]byte{0xFE, 0x34}, 564},
		{[]byte{0x03, 0xFF}, 1023},
		{[]byte{0x00, 0x00}, 0},
	}
	for _, test := range tests {
		if got := decodeFIFOEntries(test.in); got != test.want {
			t.Errorf("decodeFIFOEntries(% x) = %d, expected %d", test.in, got, test.want)
		}
	}
}

func TestGroupFIFO(t *testing.T) {
	e := func(v int16, start bool) FIFOEntry { return FIFOEntry{Value: v, SeriesStart: start} }
	tests := []struct {
		name    string
		entries []FIFOEntry
		format  FIFOFormat
		want    []Sample
	}{
		{
			name:    "xyz",
			entries: []FIFOEntry{e(1, true), e(2, false), e(3, false), e(4, true), e(5, false), e(6, false)},
			format:  FIFOXYZ,
			want:    []Sample{{1, 2, 3}, {4, 5, 6}},
		},
		{
			name:    "leading and trailing partial sets",
			entries: []FIFOEntry{e(9, false), e(1, true), e(2, false), e(3, false), e(4, true)},
			format:  FIFOXYZPeak,
			want:    []Sample{{1, 2, 3}},
		},
		{
			name:    "xz",
			entries: []FIFOEntry{e(1, true), e(3, false), e(-1, true), e(-3, false)},
			format:  FIFOXZ,
			want:    []Sample{{X: 1, Z: 3}, {X: -1, Z: -3}},
		},
		{
			name:    "single axis ignores series start",
			entries: []FIFOEntry{e(7, false), e(8, true)},
			format:  FIFOY,
			want:    []Sample{{Y: 7}, {Y: 8}},
		},
		{
			name:    "invalid format",
			entries: []FIFOEntry{e(1, true)},
			format:  FIFOFormat(8),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, GroupFIFO(test.entries, test.format)); diff != "" {
				t.Errorf("GroupFIFO() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegisterAccess(t *testing.T) {
	tests := []struct {
		addr byte
		want Access
	}{
		{AdiDevID, ReadOnly},
		{Status1, ReadOnly},
		{ZDataL, ReadOnly},
		{0x0E, Reserved},
		{XMaxPeakH, ReadOnly},
		{ZMaxPeakL, ReadOnly},
		{0x1F, Reserved},
		{OffsetX, ReadWrite},
		{XThreshActH, ReadWrite},
		{PowerCtl, ReadWrite},
		{SelfTest, ReadWrite},
		{SReset, WriteOnly},
		{FIFOData, ReadOnly},
		{0x43, Reserved},
	}
	for _, test := range tests {
		if got := RegisterAccess(test.addr); got != test.want {
			t.Errorf("RegisterAccess(%#x) = %s, expected %s", test.addr, got, test.want)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		in   fmtStringer
		want string
	}{
		{FullBandwidth, "FullBandwidth"},
		{OpMode(9), "OpMode(9)"},
		{ODR6400Hz, "6400Hz"},
		{BW200Hz, "200Hz"},
		{WUR24576ms, "24.576s"},
		{ActivityLooped, "Looped"},
		{FilterSettle16ms, "16ms"},
		{InstantOnHigh, "High"},
		{FIFOOldestSaved, "OldestSaved"},
		{FIFOXZ, "XZ"},
		{FIFOXYZPeak, "XYZPeak"},
		{Inactivity, "Inactivity"},
		{DataReady | FIFOOverrun, "DataReady|FIFOOverrun"},
		{Status(0), "0"},
		{DataReady | Awake, "DataReady|Awake"},
		{UserNVMBusy | ErrUserRegs, "UserNVMBusy|ErrUserRegs"},
		{Status(0x10), "0x10"},
		{Status(0x11), "DataReady|0x10"},
		{Sample{1, -2, 3}, "X:1 Y:-2 Z:3"},
	}
	for _, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("String() = %q, expected %q", got, test.want)
		}
	}
}

type fmtStringer interface {
	String() string
}
