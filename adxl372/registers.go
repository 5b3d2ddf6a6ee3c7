// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

// Register addresses.
const (
	AdiDevID     = 0x00 // Analog Devices, Inc., accelerometer ID
	MstDevID     = 0x01 // Analog Devices MEMS device ID
	DevID        = 0x02 // Device ID
	RevID        = 0x03 // Product revision ID
	Status1      = 0x04 // Status register 1
	Status2      = 0x05 // Status register 2
	FIFOEntries2 = 0x06 // Valid data samples in the FIFO [9:8]
	FIFOEntries1 = 0x07 // Valid data samples in the FIFO [7:0]

	// Data registers
	XDataH = 0x08 // X-axis acceleration data [11:4]
	XDataL = 0x09 // X-axis acceleration data [3:0] | dummy LSBs
	YDataH = 0x0A // Y-axis acceleration data [11:4]
	YDataL = 0x0B // Y-axis acceleration data [3:0] | dummy LSBs
	ZDataH = 0x0C // Z-axis acceleration data [11:4]
	ZDataL = 0x0D // Z-axis acceleration data [3:0] | dummy LSBs

	XMaxPeakH = 0x15 // X-axis MaxPeak acceleration data [11:4]
	XMaxPeakL = 0x16 // X-axis MaxPeak acceleration data [3:0]
	YMaxPeakH = 0x17 // Y-axis MaxPeak acceleration data [11:4]
	YMaxPeakL = 0x18 // Y-axis MaxPeak acceleration data [3:0]
	ZMaxPeakH = 0x19 // Z-axis MaxPeak acceleration data [11:4]
	ZMaxPeakL = 0x1A // Z-axis MaxPeak acceleration data [3:0]

	OffsetX = 0x20 // X axis offset
	OffsetY = 0x21 // Y axis offset
	OffsetZ = 0x22 // Z axis offset

	// Activity / inactivity detection
	XThreshActH   = 0x23 // X axis Activity Threshold [15:8]
	XThreshActL   = 0x24 // X axis Activity Threshold [7:0]
	YThreshActH   = 0x25 // Y axis Activity Threshold [15:8]
	YThreshActL   = 0x26 // Y axis Activity Threshold [7:0]
	ZThreshActH   = 0x27 // Z axis Activity Threshold [15:8]
	ZThreshActL   = 0x28 // Z axis Activity Threshold [7:0]
	TimeAct       = 0x29 // Activity Time
	XThreshInactH = 0x2A // X axis Inactivity Threshold [15:8]
	XThreshInactL = 0x2B // X axis Inactivity Threshold [7:0]
	YThreshInactH = 0x2C // Y axis Inactivity Threshold [15:8]
	YThreshInactL = 0x2D // Y axis Inactivity Threshold [7:0]
	ZThreshInactH = 0x2E // Z axis Inactivity Threshold [15:8]
	ZThreshInactL = 0x2F // Z axis Inactivity Threshold [7:0]
	TimeInactH    = 0x30 // Inactivity Time [15:8]
	TimeInactL    = 0x31 // Inactivity Time [7:0]
	XThreshAct2H  = 0x32 // X axis Activity2 Threshold [15:8]
	XThreshAct2L  = 0x33 // X axis Activity2 Threshold [7:0]
	YThreshAct2H  = 0x34 // Y axis Activity2 Threshold [15:8]
	YThreshAct2L  = 0x35 // Y axis Activity2 Threshold [7:0]
	ZThreshAct2H  = 0x36 // Z axis Activity2 Threshold [15:8]
	ZThreshAct2L  = 0x37 // Z axis Activity2 Threshold [7:0]

	// Control registers
	HPF         = 0x38 // High Pass Filter
	FIFOSamples = 0x39 // FIFO Samples
	FIFOCtl     = 0x3A // FIFO Control
	Int1Map     = 0x3B // Interrupt 1 mapping control
	Int2Map     = 0x3C // Interrupt 2 mapping control
	Timing      = 0x3D // Timing
	Measure     = 0x3E // Measure
	PowerCtl    = 0x3F // Power control
	SelfTest    = 0x40 // Self Test
	SReset      = 0x41 // Reset
	FIFOData    = 0x42 // FIFO Data
)

// Values read back from the identification registers of a genuine part.
const (
	AdiDevIDValue = 0xAD
	MstDevIDValue = 0x1D
	DevIDValue    = 0xFA
	RevIDValue    = 0x02
)

// resetCode triggers a power-on-equivalent reset when written to SReset.
const resetCode = 0x52

// Masks preserve every bit of the register except the field being set.
const (
	measureAutosleepMask     = 0xBF
	measureBandwidthMask     = 0xF8
	measureActProcMask       = 0xCF
	timingODRMask            = 0x1F
	timingWURMask            = 0xE3
	powerCtlOpModeMask       = 0xFC
	powerCtlInstaOnMask      = 0xDF
	powerCtlFilterSettleMask = 0xEF
)

// Position of fields in their respective registers.
const (
	measureBandwidthPos     = 0
	measureAutosleepPos     = 6
	measureActProcPos       = 4
	timingODRPos            = 5
	timingWURPos            = 2
	powerCtlOpModePos       = 0
	powerCtlInstaOnPos      = 5
	powerCtlFilterSettlePos = 4
	fifoCtlSamp8Pos         = 0
	fifoCtlModePos          = 1
	fifoCtlFormatPos        = 3
)

// Threshold low byte flags.
const (
	threshEnableBit     = 1 << 0
	threshReferencedBit = 1 << 1
)

// spiRead is ORed into the shifted register address for a read.
const spiRead = 1

// Access describes how a register may be accessed over the bus.
type Access byte

const (
	// ReadOnly registers hold identification, status or data.
	ReadOnly Access = iota
	// WriteOnly registers only accept writes (SReset).
	WriteOnly
	// ReadWrite registers hold configuration that may share bits between
	// fields and are updated with read-modify-write.
	ReadWrite
	// Reserved addresses are not part of the register map.
	Reserved
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "R"
	case WriteOnly:
		return "W"
	case ReadWrite:
		return "RW"
	default:
		return "reserved"
	}
}

// RegisterAccess returns the access class of the register at addr.
func RegisterAccess(addr byte) Access {
	switch {
	case addr <= ZDataL:
		return ReadOnly
	case addr >= XMaxPeakH && addr <= ZMaxPeakL:
		return ReadOnly
	case addr >= OffsetX && addr <= SelfTest:
		return ReadWrite
	case addr == SReset:
		return WriteOnly
	case addr == FIFOData:
		return ReadOnly
	default:
		return Reserved
	}
}
