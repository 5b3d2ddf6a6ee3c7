// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen1d

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/GermanBionicSystems/accel/adxl372"
	"github.com/maruel/ansi256"
)

func expected(cells ...[]color.Color) string {
	p := ansi256.Default
	s := "\r\033[0m"
	for _, bar := range cells {
		for _, c := range bar {
			s += p.Block(color.NRGBAModel.Convert(c).(color.NRGBA))
		}
		s += "\033[0m "
	}
	return s
}

func bar(c color.Color, lit, l int) []color.Color {
	out := make([]color.Color, l)
	for i := range out {
		if i < lit {
			out[i] = c
		} else {
			out[i] = ColorEmpty
		}
	}
	return out
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{X: 4, W: &buf})
	if s := d.String(); s != "Screen1D{4}" {
		t.Fatal(s)
	}
	if err := d.Show(adxl372.Sample{X: 1024, Y: -2048, Z: 0}); err != nil {
		t.Fatal(err)
	}
	want := expected(bar(ColorX, 2, 4), bar(ColorY, 4, 4), bar(ColorZ, 0, 4))
	if got := buf.String(); got != want {
		t.Fatalf("got %q, expected %q", got, want)
	}
	buf.Reset()
	if err := d.Show(adxl372.Sample{X: 0, Y: 100, Z: 2047}); err != nil {
		t.Fatal(err)
	}
	want = expected(bar(ColorX, 0, 4), bar(ColorY, 0, 4), bar(ColorZ, 4, 4))
	if got := buf.String(); got != want {
		t.Fatalf("got %q, expected %q", got, want)
	}
	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\n\033[0m" {
		t.Fatalf("got %q", got)
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		v    int16
		l    int
		want int
	}{
		{0, 10, 0},
		{2047, 10, 10},
		{-2048, 10, 10},
		{1024, 10, 5},
		{-102, 10, 0},
		{103, 10, 1},
		{32767, 10, 10},
	}
	for _, test := range tests {
		if got := fill(test.v, test.l); got != test.want {
			t.Errorf("fill(%d, %d) = %d, expected %d", test.v, test.l, got, test.want)
		}
	}
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{X: 2, W: &buf})
	if b := d.Bounds(); b != image.Rect(0, 0, 6, 1) {
		t.Fatalf("unexpected bounds %v", b)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 6, 1))
	for x := 0; x < 6; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: byte(40 * x), A: 255})
	}
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	c := func(x int) color.Color { return img.At(x, 0) }
	want := expected([]color.Color{c(0), c(1)}, []color.Color{c(2), c(3)}, []color.Color{c(4), c(5)})
	if got := buf.String(); got != want {
		t.Fatalf("got %q, expected %q", got, want)
	}
}
