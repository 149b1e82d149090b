// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package fbgs reads the tab-separated logs written by FBGS fiber Bragg
// grating interrogators and converts them into SEP005 style channels.
package fbgs

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Read converts the FBGS file at path into channels.
//
// A missing file is logged and yields no channels and no error, so batch
// importers can scan candidate paths. A file rejected by the quality gate
// likewise yields no channels.
func Read(path string, opts ...Option) ([]Channel, error) {
	res, err := ReadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return res.Channels, nil
}

// ReadFile is like Read but returns the full result, including the
// outcome status and the raw error status column.
func ReadFile(path string, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)

	if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
		cfg.logger.Warn("no FBGS file at path", zap.String("path", path))
		res := &Result{Status: StatusMissingFile, Reason: fmt.Sprintf("no FBGS file at %s", path)}
		cfg.metrics.observe(res, nil)
		return res, nil
	}

	t, err := OpenTable(path)
	if err != nil {
		cfg.metrics.observe(nil, err)
		return nil, err
	}

	res, err := fromTable(t, cfg)
	cfg.metrics.observe(res, err)
	if err != nil {
		return nil, fmt.Errorf("error converting %s: %w", path, err)
	}
	return res, nil
}

// Decode converts an FBGS log read from r.
func Decode(r io.Reader, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)

	t, err := Load(r)
	if err != nil {
		cfg.metrics.observe(nil, err)
		return nil, err
	}

	res, err := fromTable(t, cfg)
	cfg.metrics.observe(res, err)
	return res, err
}
