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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpenPSG/fbgs/edf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderHeader(t *testing.T) {
	f, err := os.OpenFile(filepath.Join(t.TempDir(), "header.edf"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	hdr := strainHeader(20)
	hdr.DataRecordDuration = 50 * time.Second
	hdr.Signals[0].SamplesPerRecord = 909
	hdr.Signals[0].PhysicalMin = -12.5

	ew, err := edf.Create(f, hdr)
	require.NoError(t, err)
	require.NoError(t, ew.WriteRecord([][]float64{make([]float64, 909)}))
	require.NoError(t, ew.Close())

	er, err := edf.Open(f)
	require.NoError(t, err)

	got := er.Header()
	assert.Equal(t, edf.Version0, got.Version)
	assert.Equal(t, "Bridge deck strain", got.RecordingID)
	assert.True(t, hdr.StartTime.Equal(got.StartTime))
	assert.Equal(t, 512, got.HeaderBytes)
	assert.Equal(t, 1, got.DataRecords)
	assert.Equal(t, 50*time.Second, got.DataRecordDuration)
	require.Len(t, got.Signals, 1)

	sig := got.Signals[0]
	assert.Equal(t, "Strain_01", sig.Label)
	assert.Equal(t, "FBG", sig.TransducerType)
	assert.Equal(t, "ue", sig.PhysicalDimension)
	assert.Equal(t, -12.5, sig.PhysicalMin)
	assert.Equal(t, 1000.0, sig.PhysicalMax)
	assert.Equal(t, -32768, sig.DigitalMin)
	assert.Equal(t, 32767, sig.DigitalMax)
	assert.Equal(t, 909, sig.SamplesPerRecord)
	assert.InDelta(t, 18.18, sig.SampleRate(got.DataRecordDuration), 1e-9)
}

func TestReaderPartialReads(t *testing.T) {
	f, err := os.OpenFile(filepath.Join(t.TempDir(), "partial.edf"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	ew, err := edf.Create(f, strainHeader(10))
	require.NoError(t, err)
	for r := 0; r < 3; r++ {
		record := make([]float64, 10)
		for i := range record {
			record[i] = float64(r*10 + i)
		}
		require.NoError(t, ew.WriteRecord([][]float64{record}))
	}
	require.NoError(t, ew.Close())

	er, err := edf.Open(f)
	require.NoError(t, err)
	sr, err := er.Signal(0)
	require.NoError(t, err)

	var all []float64
	chunk := make([]float64, 7)
	for {
		n, err := sr.Read(chunk)
		all = append(all, chunk[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	require.Len(t, all, 30)
	for i, v := range all {
		assert.InDelta(t, float64(i), v, 0.05)
	}
}

func TestReaderErrors(t *testing.T) {
	_, err := edf.Open(bytes.NewReader([]byte("0       short")))
	require.ErrorContains(t, err, "error reading header")

	f, err := os.OpenFile(filepath.Join(t.TempDir(), "one.edf"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})
	ew, err := edf.Create(f, strainHeader(1))
	require.NoError(t, err)
	require.NoError(t, ew.Close())

	er, err := edf.Open(f)
	require.NoError(t, err)
	_, err = er.Signal(1)
	require.Error(t, err)
	_, err = er.Signal(-1)
	require.Error(t, err)
}
