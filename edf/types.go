// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package edf encodes and decodes the European Data Format, used here as an
// interchange target for converted FBGS channels.
package edf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Version string

const (
	// Version0 represents the version of the EDF/EDF+ standard.
	Version0 Version = "0"
)

const (
	fixedHeaderBytes  = 256
	signalHeaderBytes = 256
	// Largest data record recommended by the EDF standard.
	maxRecordBytes = 61440
)

// Header represents the EDF/EDF+ file header.
type Header struct {
	Version            Version       // Version of the EDF/EDF+ standard (usually "0")
	PatientID          string        // Identification of the patient
	RecordingID        string        // Identification of the recording session
	StartTime          time.Time     // Start date of the recording (UTC, second precision)
	HeaderBytes        int           // Number of bytes in the header
	DataRecordDuration time.Duration // Duration of a single data record
	DataRecords        int           // Number of data records, -1 if unknown
	SignalCount        int           // Number of signals in each data record
	Signals            []Signal      // Details of each signal
}

// RecordBytes returns the size in bytes of one data record.
func (h *Header) RecordBytes() int {
	n := 0
	for _, sig := range h.Signals {
		n += sig.SamplesPerRecord * 2
	}
	return n
}

// Signal represents the characteristics of each signal in the EDF/EDF+ file.
type Signal struct {
	Label             string  // Label of the signal (e.g., a sensor name)
	TransducerType    string  // Type of transducer used
	PhysicalDimension string  // Physical dimension (e.g., uV, mV)
	PhysicalMin       float64 // Minimum physical value
	PhysicalMax       float64 // Maximum physical value
	DigitalMin        int     // Minimum digital value
	DigitalMax        int     // Maximum digital value
	Prefiltering      string  // Pre-filtering information
	SamplesPerRecord  int     // Number of samples in each data record for this signal
	Reserved          string  // Reserved for future use
}

// SampleRate returns the number of samples per second of the signal.
func (s Signal) SampleRate(recordDuration time.Duration) float64 {
	if recordDuration <= 0 {
		return 0
	}
	return float64(s.SamplesPerRecord) / recordDuration.Seconds()
}

// signalField is one column of the per-signal header area. Each field is
// stored for all signals in turn before the next field begins.
type signalField struct {
	name   string
	width  int
	format func(s *Signal) string
	parse  func(s *Signal, v string) error
}

var signalFields = []signalField{
	{"label", 16,
		func(s *Signal) string { return s.Label },
		func(s *Signal, v string) error { s.Label = v; return nil }},
	{"transducer type", 80,
		func(s *Signal) string { return s.TransducerType },
		func(s *Signal, v string) error { s.TransducerType = v; return nil }},
	{"physical dimension", 8,
		func(s *Signal) string { return s.PhysicalDimension },
		func(s *Signal, v string) error { s.PhysicalDimension = v; return nil }},
	{"physical minimum", 8,
		func(s *Signal) string { return formatPhysicalValue(s.PhysicalMin) },
		func(s *Signal, v string) (err error) { s.PhysicalMin, err = parseFloat(v); return }},
	{"physical maximum", 8,
		func(s *Signal) string { return formatPhysicalValue(s.PhysicalMax) },
		func(s *Signal, v string) (err error) { s.PhysicalMax, err = parseFloat(v); return }},
	{"digital minimum", 8,
		func(s *Signal) string { return strconv.Itoa(s.DigitalMin) },
		func(s *Signal, v string) (err error) { s.DigitalMin, err = strconv.Atoi(v); return }},
	{"digital maximum", 8,
		func(s *Signal) string { return strconv.Itoa(s.DigitalMax) },
		func(s *Signal, v string) (err error) { s.DigitalMax, err = strconv.Atoi(v); return }},
	{"prefiltering", 80,
		func(s *Signal) string { return s.Prefiltering },
		func(s *Signal, v string) error { s.Prefiltering = v; return nil }},
	{"samples per record", 8,
		func(s *Signal) string { return strconv.Itoa(s.SamplesPerRecord) },
		func(s *Signal, v string) (err error) { s.SamplesPerRecord, err = strconv.Atoi(v); return }},
	{"reserved", 32,
		func(s *Signal) string { return s.Reserved },
		func(s *Signal, v string) error { s.Reserved = v; return nil }},
}

// pad left-justifies s in a space-filled field of the given width,
// truncating when it does not fit.
func pad(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", v, err)
	}
	return f, nil
}

// formatPhysicalValue renders val in at most 8 characters.
func formatPhysicalValue(val float64) string {
	for prec := 6; prec >= 0; prec-- {
		s := strconv.FormatFloat(val, 'f', prec, 64)
		if len(s) <= 8 {
			return s
		}
	}
	return strconv.FormatFloat(val, 'g', 2, 64)
}
