// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package fbgs

import "go.uber.org/zap"

type config struct {
	qa      bool
	mode    Mode
	layout  string
	logger  *zap.Logger
	metrics *Metrics
}

// Option configures a single read.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{
		qa:     true,
		mode:   ModeEngineeringUnits,
		layout: DefaultTimestampLayout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.L()
	}
	return cfg
}

// WithQA enables or disables rejection of files whose row count does not
// match the estimated sampling frequency. Enabled by default.
func WithQA(qa bool) Option {
	return func(c *config) {
		c.qa = qa
	}
}

// WithMode selects the data mode. Only ModeEngineeringUnits is implemented.
func WithMode(mode Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithTimestampLayout overrides the Go time layout of the Date column.
func WithTimestampLayout(layout string) Option {
	return func(c *config) {
		c.layout = layout
	}
}

// WithLogger sets the logger that receives warnings. Defaults to zap.L().
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics records read outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}
