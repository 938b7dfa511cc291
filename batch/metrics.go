/*
 * metrics.go, part of gdytac.
 *
 * Copyright 2024 The gdytac Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the models processed by a Runner.
type Metrics struct {
	Exported prometheus.Counter
	Failed   prometheus.Counter
	Duration prometheus.Histogram
}

// NewMetrics creates the metrics and registers them on reg. With a nil reg
// the metrics work but are not registered anywhere.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Exported: f.NewCounter(prometheus.CounterOpts{
			Name: "gdytac_variants_exported_total",
			Help: "Models whose seed files were exported",
		}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "gdytac_variants_failed_total",
			Help: "Models that could not be exported",
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gdytac_variant_duration_seconds",
			Help:    "Time to process one model",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}),
	}
}
