// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package fbgs

// Group is the channel group assigned to every FBGS channel.
const Group = "fbgs"

// Column names with a fixed meaning in FBGS log files.
const (
	ColumnDate        = "Date"
	ColumnTime        = "Time"
	ColumnLinenumber  = "Linenumber"
	ColumnErrorStatus = "Error status"
)

// DefaultTimestampLayout is the layout of the Date column.
const DefaultTimestampLayout = "2006-01-02T15:04:05-0700"

// reserved columns never become channels.
var reserved = map[string]bool{
	ColumnDate:        true,
	ColumnTime:        true,
	ColumnLinenumber:  true,
	ColumnErrorStatus: true,
}

// IsReserved reports whether the named column is excluded from channel extraction.
func IsReserved(column string) bool {
	return reserved[column]
}

// Mode selects which representation of the measurement is extracted.
type Mode string

const (
	// ModeEngineeringUnits reads the converted physical values as stored.
	ModeEngineeringUnits Mode = "engineering_units"
	// ModeWavelength reads raw reflected wavelengths. Not implemented.
	ModeWavelength Mode = "wavelength"
)

// Channel is a single uniformly sampled series (SEP005 layout).
type Channel struct {
	Group          string    // Always "fbgs"
	Name           string    // Source column name
	Data           []float64 // Samples in file order, NaN for empty cells
	StartTimestamp string    // Time of the first sample, UTC with explicit offset
	Fs             float64   // Sampling frequency in Hz
	UnitStr        string    // Unit of the samples, unknown for FBGS exports
}

// Status tags the outcome of a read.
type Status int

const (
	// StatusOK means every data column was converted.
	StatusOK Status = iota
	// StatusMissingFile means no file existed at the requested path.
	StatusMissingFile
	// StatusRejected means the quality gate found the sample count
	// inconsistent with the estimated sampling frequency.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissingFile:
		return "missing"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the outcome of converting one FBGS file.
type Result struct {
	Channels    []Channel
	ErrorStatus []string // Raw "Error status" column, nil when absent
	Status      Status
	Reason      string // Why Status is not StatusOK
	Rate        Rate   // Sampling estimate, zero for missing files
}
