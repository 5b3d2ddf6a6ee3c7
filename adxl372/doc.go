// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl372 controls an ADXL372 ±200g 3-axis accelerometer over SPI.
//
// The driver keeps an in-memory copy of the configuration it has written
// (see State). The chip has no way to report that it was reset behind the
// driver's back: if the part is power cycled or reset without going through
// Dev.Reset, State no longer matches the hardware until every setter is
// called again.
//
// Operations that need more than one bus exchange are not transactional. A
// bus failure in the middle of ConfigureFIFO for example can leave the part in
// StandBy.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/adxl372.pdf
package adxl372
