// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"fmt"

	"periph.io/x/conn/v3"
)

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// transport performs register accesses over a full duplex connection.
//
// Every access is a single exchange: the first byte is the register address
// shifted left by one with the read flag in bit 0, followed by the payload
// (writes) or as many don't care bytes as there are bytes to read. The first
// byte clocked back is discarded.
type transport struct {
	c     conn.Conn
	debug DebugF
}

// read reads n consecutive registers starting at addr.
func (t *transport) read(addr byte, n int) ([]byte, error) {
	t.debug("read register %#x count %d", addr, n)
	w := make([]byte, n+1)
	w[0] = addr<<1 | spiRead
	r := make([]byte, n+1)
	if err := t.c.Tx(w, r); err != nil {
		return nil, fmt.Errorf("adxl372: read %#x: %w", addr, err)
	}
	t.debug("register content % x", r[1:])
	return r[1:], nil
}

// readByte reads the register at addr.
func (t *transport) readByte(addr byte) (byte, error) {
	r, err := t.read(addr, 1)
	if err != nil {
		return 0, err
	}
	return r[0], nil
}

// write writes data to consecutive registers starting at addr.
func (t *transport) write(addr byte, data ...byte) error {
	t.debug("write register %#x value % x", addr, data)
	w := make([]byte, 0, len(data)+1)
	w = append(w, addr<<1)
	w = append(w, data...)
	if err := t.c.Tx(w, nil); err != nil {
		return fmt.Errorf("adxl372: write %#x: %w", addr, err)
	}
	return nil
}

// update sets one field of the register at addr with a read-modify-write.
//
// The read and the write are two separate exchanges.
func (t *transport) update(addr, mask, shift, value byte) error {
	cur, err := t.readByte(addr)
	if err != nil {
		return err
	}
	next := encodeField(cur, mask, shift, value)
	t.debug("update register %#x %#x -> %#x", addr, cur, next)
	return t.write(addr, next)
}

func noop(string, ...interface{}) {}
