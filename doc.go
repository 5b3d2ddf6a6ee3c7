// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accel is a container for the ADXL372 accelerometer driver and its
// tools.
//
// See package adxl372 for the driver, screen1d for a terminal bar graph of
// samples and cmd/adxl372 for a command line tool.
package accel
