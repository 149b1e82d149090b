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

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts conversion outcomes. It is safe for concurrent use and a
// nil *Metrics records nothing.
type Metrics struct {
	files        *prometheus.CounterVec
	channels     prometheus.Counter
	samplingRate prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fbgs",
			Name:      "files_total",
			Help:      "FBGS files processed, by outcome (ok, missing, rejected, error).",
		}, []string{"status"}),
		channels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fbgs",
			Name:      "channels_total",
			Help:      "Channels produced from FBGS files.",
		}),
		samplingRate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fbgs",
			Name:      "sampling_rate_hz",
			Help:      "Sampling frequency estimated for each FBGS file.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
		}),
	}

	for _, c := range []prometheus.Collector{m.files, m.channels, m.samplingRate} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(res *Result, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.files.WithLabelValues("error").Inc()
		return
	}

	m.files.WithLabelValues(res.Status.String()).Inc()
	if res.Rate.Fs > 0 {
		m.samplingRate.Observe(res.Rate.Fs)
	}
	m.channels.Add(float64(len(res.Channels)))
}
