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
	"strconv"
	"strings"
	"time"
)

// Reader reads EDF/EDF+ files.
type Reader struct {
	r   io.ReadSeeker
	hdr *Header
}

// Open opens an EDF/EDF+ file for reading.
func Open(r io.ReadSeeker) (*Reader, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking to header: %w", err)
	}
	reader := bufio.NewReader(r)

	b := make([]byte, fixedHeaderBytes)
	if _, err := io.ReadFull(reader, b); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	field := func(from, to int) string {
		return strings.TrimSpace(string(b[from:to]))
	}

	hdr := &Header{
		Version:     Version(field(0, 8)),
		PatientID:   field(8, 88),
		RecordingID: field(88, 168),
	}

	start, err := time.Parse("02.01.06 15.04.05", field(168, 176)+" "+field(176, 184))
	if err != nil {
		return nil, fmt.Errorf("error parsing start time: %w", err)
	}
	hdr.StartTime = start.UTC()

	if hdr.HeaderBytes, err = strconv.Atoi(field(184, 192)); err != nil {
		return nil, fmt.Errorf("error parsing header bytes: %w", err)
	}
	if hdr.DataRecords, err = strconv.Atoi(field(236, 244)); err != nil {
		return nil, fmt.Errorf("error parsing number of data records: %w", err)
	}
	if hdr.DataRecordDuration, err = time.ParseDuration(field(244, 252) + "s"); err != nil {
		return nil, fmt.Errorf("error parsing data record duration: %w", err)
	}
	if hdr.SignalCount, err = strconv.Atoi(field(252, 256)); err != nil {
		return nil, fmt.Errorf("error parsing signal count: %w", err)
	}
	if hdr.SignalCount < 0 {
		return nil, fmt.Errorf("invalid signal count: %d", hdr.SignalCount)
	}

	hdr.Signals = make([]Signal, hdr.SignalCount)
	for _, f := range signalFields {
		buf := make([]byte, f.width)
		for i := range hdr.Signals {
			if _, err := io.ReadFull(reader, buf); err != nil {
				return nil, fmt.Errorf("error reading signal headers: %w", err)
			}
			if err := f.parse(&hdr.Signals[i], strings.TrimSpace(string(buf))); err != nil {
				return nil, fmt.Errorf("error parsing signal %d %s: %w", i, f.name, err)
			}
		}
	}

	return &Reader{
		r:   r,
		hdr: hdr,
	}, nil
}

// Header returns a copy of the parsed file header.
func (er *Reader) Header() Header {
	hdr := *er.hdr
	hdr.Signals = append([]Signal(nil), er.hdr.Signals...)
	return hdr
}

// SignalReader reads continuous signal data from an EDF/EDF+ file.
type SignalReader struct {
	r             io.ReadSeeker
	hdr           *Header
	signal        Signal
	recordSize    int // Total size of one data record
	signalOffset  int // Byte offset of the signal in a record
	currentRecord int // Current record being processed
	currentSample int // Current sample in the record
}

// Signal creates a new SignalReader for a specified signal index.
func (er *Reader) Signal(signalIndex int) (*SignalReader, error) {
	if signalIndex < 0 || signalIndex >= len(er.hdr.Signals) {
		return nil, fmt.Errorf("signal index out of range")
	}

	signalOffset := 0
	for _, sig := range er.hdr.Signals[:signalIndex] {
		signalOffset += sig.SamplesPerRecord * 2
	}

	return &SignalReader{
		r:            er.r,
		hdr:          er.hdr,
		signal:       er.hdr.Signals[signalIndex],
		recordSize:   er.hdr.RecordBytes(),
		signalOffset: signalOffset,
	}, nil
}

// Read fills the provided float64 slice with the physical values from the signal.
// Samples of one record are contiguous, so they are fetched with a single
// read per record.
func (sr *SignalReader) Read(data []float64) (int, error) {
	n := 0
	for n < len(data) {
		if sr.currentRecord >= sr.hdr.DataRecords {
			return n, io.EOF
		}

		want := min(sr.signal.SamplesPerRecord-sr.currentSample, len(data)-n)
		pos := int64(sr.hdr.HeaderBytes) + int64(sr.currentRecord)*int64(sr.recordSize) +
			int64(sr.signalOffset) + int64(sr.currentSample*2)
		if _, err := sr.r.Seek(pos, io.SeekStart); err != nil {
			return n, fmt.Errorf("error seeking to position: %w", err)
		}

		buf := make([]byte, want*2)
		if _, err := io.ReadFull(sr.r, buf); err != nil {
			return n, fmt.Errorf("error reading sample data: %w", err)
		}
		for i := 0; i < want; i++ {
			digital := int16(binary.LittleEndian.Uint16(buf[i*2:]))
			data[n] = convertDigitalToPhysical(digital, sr.signal)
			n++
		}

		sr.currentSample += want
		if sr.currentSample >= sr.signal.SamplesPerRecord {
			sr.currentSample = 0
			sr.currentRecord++
		}
	}

	return n, nil
}

// convertDigitalToPhysical applies the signal calibration to a stored sample.
func convertDigitalToPhysical(digital int16, sig Signal) float64 {
	if sig.DigitalMax == sig.DigitalMin {
		return sig.PhysicalMin
	}
	return sig.PhysicalMin + (float64(digital)-float64(sig.DigitalMin))*
		(sig.PhysicalMax-sig.PhysicalMin)/float64(sig.DigitalMax-sig.DigitalMin)
}
