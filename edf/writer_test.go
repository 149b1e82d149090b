// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpenPSG/fbgs/edf"
	"github.com/stretchr/testify/require"
)

func strainHeader(samplesPerRecord int) edf.Header {
	return edf.Header{
		Version:            edf.Version0,
		PatientID:          "X",
		RecordingID:        "Bridge deck strain",
		StartTime:          time.Date(2023, 1, 1, 12, 30, 15, 0, time.UTC),
		DataRecordDuration: time.Second,
		SignalCount:        1,
		Signals: []edf.Signal{
			{
				Label:             "Strain_01",
				TransducerType:    "FBG",
				PhysicalDimension: "ue",
				PhysicalMin:       0,
				PhysicalMax:       1000,
				DigitalMin:        -32768,
				DigitalMax:        32767,
				SamplesPerRecord:  samplesPerRecord,
			},
		},
	}
}

func TestWriter(t *testing.T) {
	f, err := os.OpenFile(filepath.Join(t.TempDir(), "test.edf"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	ew, err := edf.Create(f, strainHeader(256))
	require.NoError(t, err)

	record := make([]float64, 256)
	for i := range record {
		record[i] = float64(i)
	}
	require.NoError(t, ew.WriteRecord([][]float64{record}))

	for i := range record {
		record[i] = float64(i + 256)
	}
	require.NoError(t, ew.WriteRecord([][]float64{record}))

	// Close the writer (this writes the header)
	require.NoError(t, ew.Close())

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	er, err := edf.Open(f)
	require.NoError(t, err)

	sr, err := er.Signal(0)
	require.NoError(t, err)

	samples := make([]float64, 512)
	n, err := sr.Read(samples)
	require.NoError(t, err)
	require.Equal(t, 512, n)

	for i := range samples {
		require.InDelta(t, float64(i), samples[i], 0.05)
	}

	// Reader should now return EOF
	_, err = sr.Read(samples)
	require.Equal(t, io.EOF, err)
}

func TestWriterRejectsWrongSampleCount(t *testing.T) {
	f, err := os.OpenFile(filepath.Join(t.TempDir(), "test.edf"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	ew, err := edf.Create(f, strainHeader(20))
	require.NoError(t, err)

	require.Error(t, ew.WriteRecord([][]float64{make([]float64, 19)}))
	require.Error(t, ew.WriteRecord([][]float64{}))
}

func TestCreateRejectsOversizedRecord(t *testing.T) {
	f, err := os.OpenFile(filepath.Join(t.TempDir(), "test.edf"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	_, err = edf.Create(f, strainHeader(40000))
	require.ErrorContains(t, err, "data record too large")
}
