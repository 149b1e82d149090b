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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Table is a delimited text file held as rows of raw cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load reads a tab-separated table whose first line holds the column names.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("error reading header: %w", io.ErrUnexpectedEOF)
	} else if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// OpenTable loads the table stored at path.
func OpenTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the raw cells of the named column in row order.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			cells[i] = row[idx]
		}
	}
	return cells, true
}

// Samples returns the named column as numbers. Empty cells become NaN.
func (t *Table) Samples(name string) ([]float64, error) {
	cells, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}

	data := make([]float64, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			data[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, &CellError{Row: i, Column: name, Value: cell}
		}
		data[i] = v
	}
	return data, nil
}
