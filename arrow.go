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
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// Field metadata keys carried by NewRecord.
const (
	MetadataGroup          = "group"
	MetadataFs             = "fs"
	MetadataStartTimestamp = "start_timestamp"
	MetadataUnit           = "unit_str"
)

// NewRecord lays channels out as columns of one Arrow record. Each field
// is a nullable float64 column (NaN samples become nulls) whose metadata
// holds the channel timing. The caller must Release the record.
func NewRecord(channels []Channel, mem memory.Allocator) (arrow.Record, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels to convert")
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	rows := len(channels[0].Data)
	fields := make([]arrow.Field, len(channels))
	cols := make([]arrow.Array, len(channels))
	defer func() {
		for _, col := range cols {
			if col != nil {
				col.Release()
			}
		}
	}()

	for i, ch := range channels {
		if len(ch.Data) != rows {
			return nil, fmt.Errorf("channel %q has %d samples, expected %d", ch.Name, len(ch.Data), rows)
		}

		fields[i] = arrow.Field{
			Name:     ch.Name,
			Type:     arrow.PrimitiveTypes.Float64,
			Nullable: true,
			Metadata: arrow.NewMetadata(
				[]string{MetadataGroup, MetadataFs, MetadataStartTimestamp, MetadataUnit},
				[]string{ch.Group, strconv.FormatFloat(ch.Fs, 'f', -1, 64), ch.StartTimestamp, ch.UnitStr},
			),
		}
		cols[i] = float64Column(mem, ch.Data)
	}

	return array.NewRecord(arrow.NewSchema(fields, nil), cols, int64(rows)), nil
}

func float64Column(mem memory.Allocator, data []float64) arrow.Array {
	b := array.NewFloat64Builder(mem)
	defer b.Release()

	b.Reserve(len(data))
	for _, v := range data {
		if math.IsNaN(v) {
			b.AppendNull()
		} else {
			b.Append(v)
		}
	}
	return b.NewArray()
}

// WriteIPC writes channels to w as an Arrow IPC stream with a single record.
func WriteIPC(w io.Writer, channels []Channel) error {
	rec, err := NewRecord(channels, memory.DefaultAllocator)
	if err != nil {
		return err
	}
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	if err := iw.Write(rec); err != nil {
		_ = iw.Close()
		return fmt.Errorf("error writing record: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("error closing stream: %w", err)
	}
	return nil
}
