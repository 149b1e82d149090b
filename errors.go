// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package fbgs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported is returned for data modes other than engineering units.
	ErrNotSupported = errors.New("not supported")
	// ErrTimestampFormat is returned when a Date value does not match the layout.
	ErrTimestampFormat = errors.New("invalid timestamp format")
	// ErrDegenerateDuration is returned when the recording spans no time.
	ErrDegenerateDuration = errors.New("recording duration is not positive")
	// ErrEmptyTable is returned for files with a header but no rows.
	ErrEmptyTable = errors.New("table has no rows")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrNotNumeric is returned when a data cell is not a number.
	ErrNotNumeric = errors.New("value is not numeric")
	// ErrInvalidChannel is returned by Validate.
	ErrInvalidChannel = errors.New("invalid channel")
)

// TimestampError records a Date value that could not be parsed.
type TimestampError struct {
	Row    int
	Value  string
	Layout string
	Err    error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("row %d: %v: %q does not match %q: %v", e.Row, ErrTimestampFormat, e.Value, e.Layout, e.Err)
}

func (e *TimestampError) Unwrap() []error {
	return []error{ErrTimestampFormat, e.Err}
}

// CellError records a data cell that could not be converted to a sample.
type CellError struct {
	Row    int
	Column string
	Value  string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d column %q: %v: %q", e.Row, e.Column, ErrNotNumeric, e.Value)
}

func (e *CellError) Unwrap() error {
	return ErrNotNumeric
}
