// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Writer writes EDF files.
type Writer struct {
	w           io.WriteSeeker
	hdr         *Header
	dataRecords int // Number of data records written so far.
}

// Create creates a new EDF writer that writes to the given writer.
func Create(w io.WriteSeeker, hdr Header) (*Writer, error) {
	if hdr.SignalCount != len(hdr.Signals) {
		return nil, fmt.Errorf("signal count %d does not match %d signal headers", hdr.SignalCount, len(hdr.Signals))
	}
	if hdr.RecordBytes() > maxRecordBytes {
		return nil, fmt.Errorf("data record too large: %d bytes, max is %d bytes", hdr.RecordBytes(), maxRecordBytes)
	}

	hdr.Signals = append([]Signal(nil), hdr.Signals...)
	for i := range hdr.Signals {
		// Calibrate against the values a reader will see in the header.
		sig := &hdr.Signals[i]
		sig.PhysicalMin, _ = strconv.ParseFloat(formatPhysicalValue(sig.PhysicalMin), 64)
		sig.PhysicalMax, _ = strconv.ParseFloat(formatPhysicalValue(sig.PhysicalMax), 64)
	}
	hdr.HeaderBytes = fixedHeaderBytes + hdr.SignalCount*signalHeaderBytes
	hdr.DataRecords = -1 // Unknown number of data records (at this time).

	ew := &Writer{w: w, hdr: &hdr}
	if err := ew.writeHeader(); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	return ew, nil
}

// Close finalizes the EDF file by updating the header with the total number of data records.
func (ew *Writer) Close() error {
	ew.hdr.DataRecords = ew.dataRecords
	if err := ew.writeHeader(); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	return nil
}

// WriteRecord appends a single data record, one sample slice per signal.
func (ew *Writer) WriteRecord(signals [][]float64) error {
	if len(signals) != ew.hdr.SignalCount {
		return fmt.Errorf("expected %d signals, got %d", ew.hdr.SignalCount, len(signals))
	}
	for i, samples := range signals {
		if want := ew.hdr.Signals[i].SamplesPerRecord; len(samples) != want {
			return fmt.Errorf("signal %d: expected %d samples, got %d", i, want, len(samples))
		}
	}

	pos := int64(ew.hdr.HeaderBytes) + int64(ew.dataRecords)*int64(ew.hdr.RecordBytes())
	if _, err := ew.w.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("error seeking to record %d: %w", ew.dataRecords, err)
	}

	writer := bufio.NewWriter(ew.w)
	buf := make([]byte, 2)
	for i, samples := range signals {
		signal := ew.hdr.Signals[i]
		for _, sample := range samples {
			binary.LittleEndian.PutUint16(buf, uint16(convertPhysicalToDigital(sample, signal)))
			if _, err := writer.Write(buf); err != nil {
				return err
			}
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	ew.dataRecords++
	return nil
}

func (ew *Writer) writeHeader() error {
	if _, err := ew.w.Seek(0, io.SeekStart); err != nil {
		return err
	}

	hdr := ew.hdr
	start := hdr.StartTime.UTC()
	fixed := []struct {
		value string
		width int
	}{
		{string(hdr.Version), 8},
		{hdr.PatientID, 80},
		{hdr.RecordingID, 80},
		{start.Format("02.01.06"), 8},
		{start.Format("15.04.05"), 8},
		{strconv.Itoa(hdr.HeaderBytes), 8},
		{"", 44},
		{strconv.Itoa(hdr.DataRecords), 8},
		{strconv.FormatFloat(hdr.DataRecordDuration.Seconds(), 'f', -1, 64), 8},
		{strconv.Itoa(hdr.SignalCount), 4},
	}

	writer := bufio.NewWriter(ew.w)
	for _, f := range fixed {
		if _, err := writer.WriteString(pad(f.value, f.width)); err != nil {
			return err
		}
	}
	for _, f := range signalFields {
		for i := range hdr.Signals {
			if _, err := writer.WriteString(pad(f.format(&hdr.Signals[i]), f.width)); err != nil {
				return err
			}
		}
	}

	return writer.Flush()
}

// convertPhysicalToDigital converts a physical value to a digital value
// using the calibration factors, clamped to the digital range.
func convertPhysicalToDigital(physical float64, sig Signal) int16 {
	if sig.PhysicalMax == sig.PhysicalMin || math.IsNaN(physical) {
		return int16(sig.DigitalMin)
	}
	digital := (physical-sig.PhysicalMin)*float64(sig.DigitalMax-sig.DigitalMin)/(sig.PhysicalMax-sig.PhysicalMin) +
		float64(sig.DigitalMin)
	digital = math.Round(digital)
	digital = math.Max(digital, float64(sig.DigitalMin))
	digital = math.Min(digital, float64(sig.DigitalMax))
	return int16(digital)
}
