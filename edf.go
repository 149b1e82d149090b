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
	"io"
	"math"
	"time"

	"github.com/OpenPSG/fbgs/edf"
)

const maxRecordSeconds = 100

// WriteEDF encodes channels from one file as an EDF recording.
//
// EDF needs a whole number of samples per data record, so the record
// duration is the shortest whole number of seconds in which the sampling
// frequency yields one. The final record is padded by repeating the last
// sample.
func WriteEDF(w io.WriteSeeker, channels []Channel, recordingID string) error {
	if len(channels) == 0 {
		return fmt.Errorf("no channels to write")
	}

	first := channels[0]
	for _, ch := range channels[1:] {
		if ch.Fs != first.Fs || ch.StartTimestamp != first.StartTimestamp || len(ch.Data) != len(first.Data) {
			return fmt.Errorf("channel %q does not share the timing of channel %q", ch.Name, first.Name)
		}
	}

	start, err := parseStartTimestamp(first.StartTimestamp)
	if err != nil {
		return err
	}

	seconds, samplesPerRecord, err := recordLayout(first.Fs)
	if err != nil {
		return err
	}

	hdr := edf.Header{
		Version:            edf.Version0,
		PatientID:          "X",
		RecordingID:        recordingID,
		StartTime:          start,
		DataRecordDuration: time.Duration(seconds) * time.Second,
		SignalCount:        len(channels),
		Signals:            make([]edf.Signal, len(channels)),
	}
	for i, ch := range channels {
		pmin, pmax := physicalRange(ch.Data)
		hdr.Signals[i] = edf.Signal{
			Label:             ch.Name,
			TransducerType:    "FBG",
			PhysicalDimension: ch.UnitStr,
			PhysicalMin:       pmin,
			PhysicalMax:       pmax,
			DigitalMin:        math.MinInt16,
			DigitalMax:        math.MaxInt16,
			SamplesPerRecord:  samplesPerRecord,
		}
	}

	ew, err := edf.Create(w, hdr)
	if err != nil {
		return err
	}

	record := make([][]float64, len(channels))
	for i := range record {
		record[i] = make([]float64, samplesPerRecord)
	}
	for offset := 0; offset < len(first.Data); offset += samplesPerRecord {
		for i, ch := range channels {
			n := copy(record[i], ch.Data[offset:])
			for j := n; j < samplesPerRecord; j++ {
				record[i][j] = ch.Data[len(ch.Data)-1]
			}
		}
		if err := ew.WriteRecord(record); err != nil {
			return fmt.Errorf("error writing record at sample %d: %w", offset, err)
		}
	}

	return ew.Close()
}

// recordLayout finds the shortest whole-second record holding a whole
// number of samples at fs.
func recordLayout(fs float64) (int, int, error) {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return 0, 0, fmt.Errorf("invalid sampling frequency %v", fs)
	}
	for seconds := 1; seconds <= maxRecordSeconds; seconds++ {
		samples := fs * float64(seconds)
		if n := math.Round(samples); n >= 1 && math.Abs(samples-n) < 1e-6 {
			return seconds, int(n), nil
		}
	}
	return 0, 0, fmt.Errorf("sampling frequency %v has no whole-second record layout", fs)
}

func physicalRange(data []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		return lo, lo + 1
	}
	return lo, hi
}

func parseStartTimestamp(s string) (time.Time, error) {
	for _, layout := range startTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: start timestamp %q", ErrTimestampFormat, s)
}
