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
	"time"

	"go.uber.org/zap"
)

// FromTable converts a loaded table into channels.
//
// A table that fails the sampling consistency check is not an error: with
// QA enabled the result carries StatusRejected and no channels. Bad
// timestamps, non-numeric data and unsupported modes are returned as errors.
func FromTable(t *Table, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	res, err := fromTable(t, cfg)
	cfg.metrics.observe(res, err)
	return res, err
}

func fromTable(t *Table, cfg *config) (*Result, error) {
	if err := checkMode(cfg.mode); err != nil {
		return nil, err
	}

	res := &Result{}
	if status, ok := t.Column(ColumnErrorStatus); ok {
		res.ErrorStatus = status
	}

	dates, ok := t.Column(ColumnDate)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, ColumnDate)
	}

	rate, err := EstimateRate(dates, cfg.layout)
	if err != nil {
		return nil, fmt.Errorf("error estimating sampling frequency: %w", err)
	}
	res.Rate = rate

	if !rate.Consistent() {
		cfg.logger.Warn("inconsistent number of samples for estimated sampling frequency",
			zap.Int("samples", rate.Samples),
			zap.Float64("fs", rate.Fs),
			zap.Float64("duration", rate.Duration),
			zap.Bool("qa", cfg.qa))
		if cfg.qa {
			res.Status = StatusRejected
			res.Reason = fmt.Sprintf("inconsistent number of samples (%d) for estimated sampling frequency of %g Hz",
				rate.Samples, rate.Fs)
			return res, nil
		}
	}

	start := formatStartTimestamp(rate.Start)
	for _, name := range t.Header {
		if IsReserved(name) {
			continue
		}
		data, err := t.Samples(name)
		if err != nil {
			return nil, err
		}
		res.Channels = append(res.Channels, Channel{
			Group:          Group,
			Name:           name,
			Data:           data,
			StartTimestamp: start,
			Fs:             rate.Fs,
		})
	}

	cfg.logger.Debug("converted FBGS table",
		zap.Int("channels", len(res.Channels)),
		zap.Float64("fs", rate.Fs))
	return res, nil
}

func checkMode(mode Mode) error {
	switch mode {
	case ModeEngineeringUnits, "eu":
		return nil
	case ModeWavelength, "wl":
		return fmt.Errorf("%w: data mode %s is not implemented", ErrNotSupported, ModeWavelength)
	default:
		return fmt.Errorf("%w: data mode %q is not a valid option", ErrNotSupported, mode)
	}
}

// formatStartTimestamp renders t in UTC as "2006-01-02 15:04:05+00:00",
// with microseconds only when present.
func formatStartTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 != 0 {
		return t.Format("2006-01-02 15:04:05.000000-07:00")
	}
	return t.Format("2006-01-02 15:04:05-07:00")
}
