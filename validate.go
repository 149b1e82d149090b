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
	"math"
	"time"
)

var startTimestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// Validate checks that channels have the shape SEP005 consumers expect:
// a name, at least one sample, a positive finite sampling frequency and a
// parseable start timestamp. All violations are reported together.
func Validate(channels []Channel) error {
	var errs []error
	for i, ch := range channels {
		fail := func(format string, args ...any) {
			errs = append(errs, fmt.Errorf("%w: channel %d (%q): %s", ErrInvalidChannel, i, ch.Name, fmt.Sprintf(format, args...)))
		}

		if ch.Name == "" {
			fail("empty name")
		}
		if len(ch.Data) == 0 {
			fail("no samples")
		}
		if math.IsNaN(ch.Fs) || math.IsInf(ch.Fs, 0) || ch.Fs <= 0 {
			fail("sampling frequency %v is not positive", ch.Fs)
		}
		if _, err := parseStartTimestamp(ch.StartTimestamp); err != nil {
			fail("start timestamp %q is not a timestamp with offset", ch.StartTimestamp)
		}
	}
	return errors.Join(errs...)
}
