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
	"fmt"
	"strconv"
	"time"
)

// Rate is a sampling frequency estimated from the Date column.
type Rate struct {
	Start    time.Time // Timestamp of the first row
	End      time.Time // Last timestamp floored to the second, plus one second
	Duration float64   // End - Start in seconds
	Samples  int       // Number of rows
	Fs       float64   // Samples / Duration rounded to 2 decimals
}

// Consistent reports whether Duration*Fs reproduces the row count exactly.
func (r Rate) Consistent() bool {
	return r.Duration*r.Fs == float64(r.Samples)
}

// EstimateRate derives one sampling frequency for a whole file from its
// Date column. The instrument stamps rows with whole seconds only, so the
// last timestamp is floored and extended by a second to bound the end of
// the final sample interval. The quantisation error is spread over the
// full recording and the result is rounded to the 0.01 Hz the instrument
// configures its rates in.
func EstimateRate(dates []string, layout string) (Rate, error) {
	if len(dates) == 0 {
		return Rate{}, ErrEmptyTable
	}

	start, err := parseTimestamp(dates[0], layout, 0)
	if err != nil {
		return Rate{}, err
	}
	last, err := parseTimestamp(dates[len(dates)-1], layout, len(dates)-1)
	if err != nil {
		return Rate{}, err
	}

	end := last.Truncate(time.Second).Add(time.Second)
	duration := end.Sub(start).Seconds()
	if duration <= 0 {
		return Rate{}, fmt.Errorf("%w: %s to %s", ErrDegenerateDuration, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return Rate{
		Start:    start,
		End:      end,
		Duration: duration,
		Samples:  len(dates),
		Fs:       round2(float64(len(dates)) / duration),
	}, nil
}

// parseTimestamp parses a Date cell. When the default layout is in use,
// RFC 3339 offsets ("Z", "+00:00") are accepted as well.
func parseTimestamp(value, layout string, row int) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err == nil {
		return t, nil
	}
	if layout == DefaultTimestampLayout {
		if t, rfcErr := time.Parse(time.RFC3339Nano, value); rfcErr == nil {
			return t, nil
		}
	}
	return time.Time{}, &TimestampError{Row: row, Value: value, Layout: layout, Err: err}
}

// round2 rounds x to two decimals, ties to even on the exact binary value.
func round2(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return v
}
