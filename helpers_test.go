// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package fbgs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/OpenPSG/fbgs"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// fbgsLog renders an FBGS export with rows spread evenly over the given
// number of whole seconds. Sensor column c holds c + 0.5*row.
type fbgsLog struct {
	start   time.Time
	seconds int
	rows    int
	columns []string
}

func (l fbgsLog) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(l.columns, "\t"))
	sb.WriteString("\n")

	for i := 0; i < l.rows; i++ {
		ts := l.start.Add(time.Duration(i*l.seconds/l.rows) * time.Second)
		cells := make([]string, len(l.columns))
		sensor := 0
		for c, name := range l.columns {
			switch name {
			case fbgs.ColumnDate:
				cells[c] = ts.Format(fbgs.DefaultTimestampLayout)
			case fbgs.ColumnTime:
				cells[c] = ts.Format("15:04:05")
			case fbgs.ColumnLinenumber:
				cells[c] = fmt.Sprint(i + 1)
			case fbgs.ColumnErrorStatus:
				cells[c] = fmt.Sprint(i % 2)
			default:
				cells[c] = fmt.Sprintf("%.1f", sampleValue(sensor, i))
				sensor++
			}
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (l fbgsLog) table(t *testing.T) *fbgs.Table {
	t.Helper()
	tbl, err := fbgs.Load(strings.NewReader(l.String()))
	require.NoError(t, err)
	return tbl
}

func (l fbgsLog) file(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fbgs.txt")
	require.NoError(t, os.WriteFile(path, []byte(l.String()), 0o644))
	return path
}

func sampleValue(sensor, row int) float64 {
	return float64(sensor) + 0.5*float64(row)
}

// consistentLog is 20 Hz over 10 s.
func consistentLog() fbgsLog {
	return fbgsLog{
		start:   epoch,
		seconds: 10,
		rows:    200,
		columns: []string{"Date", "Time", "Linenumber", "Strain_01", "Strain_02", "Temp_01", "Error status"},
	}
}

// shortLog is 20 Hz over 3 s with one sample missing: 59 rows give
// fs = 19.67 and 3 * 19.67 != 59.
func shortLog() fbgsLog {
	return fbgsLog{
		start:   epoch,
		seconds: 3,
		rows:    59,
		columns: []string{"Date", "Strain_01", "Error status"},
	}
}
