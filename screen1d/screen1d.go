// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen1d shows accelerometer samples as three bar graphs on a
// single terminal line using ANSI color codes.
//
// It also implements display.Drawer so the strip of cells can be drawn to
// directly.
package screen1d

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/accel/adxl372"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"golang.org/x/image/colornames"
	"periph.io/x/conn/v3/display"
)

// FullScale is the magnitude of a full bar, the largest 12-bit sample.
const FullScale = 2048

// Axis colors.
var (
	ColorX     = colornames.Red
	ColorY     = colornames.Lime
	ColorZ     = colornames.Blue
	ColorEmpty = colornames.Dimgray
)

// Opts represents the options available for this display.
type Opts struct {
	// X is the number of cells of each bar.
	X       int
	Palette *ansi256.Palette
	// W is the output, a colorable stdout when nil.
	W io.Writer

	_ struct{}
}

// Dev renders samples on the console.
type Dev struct {
	w       io.Writer
	l       int
	palette ansi256.Palette

	// cells holds 3 bars of l cells.
	cells []color.Color
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:       w,
		l:       opts.X,
		palette: *p,
		cells:   make([]color.Color, 3*opts.X),
	}
	for i := range d.cells {
		d.cells[i] = ColorEmpty
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen1D{%d}", d.l)
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and moves to the next line.
func (d *Dev) Halt() error {
	_, err := io.WriteString(d.w, "\n\033[0m")
	return err
}

// Show redraws the line with one bar per axis of s.
func (d *Dev) Show(s adxl372.Sample) error {
	for i, a := range []struct {
		v int16
		c color.Color
	}{{s.X, ColorX}, {s.Y, ColorY}, {s.Z, ColorZ}} {
		n := fill(a.v, d.l)
		bar := d.cells[i*d.l : (i+1)*d.l]
		for j := range bar {
			if j < n {
				bar[j] = a.c
			} else {
				bar[j] = ColorEmpty
			}
		}
	}
	return d.refresh()
}

// fill returns the number of cells out of l lit for v, rounded to nearest.
func fill(v int16, l int) int {
	m := int(v)
	if m < 0 {
		m = -m
	}
	n := (m*l + FullScale/2) / FullScale
	if n > l {
		return l
	}
	return n
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer. The three bars are laid out one after
// the other.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: 3 * d.l, Y: 1}}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	for x := r.Min.X; x < r.Max.X; x++ {
		d.cells[x] = src.At(sp.X+x-r.Min.X, sp.Y)
	}
	return d.refresh()
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i, c := range d.cells {
		_, _ = d.buf.WriteString(d.palette.Block(color.NRGBAModel.Convert(c).(color.NRGBA)))
		if (i+1)%d.l == 0 {
			_, _ = d.buf.WriteString("\033[0m ")
		}
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
