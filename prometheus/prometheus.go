// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package prometheus provides functions that are useful to control and manage
// the build-in prometheus instance.
package prometheus

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/util/errwrap"

	"github.com/iancoleman/strcase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPrometheusListen is registered in
// https://github.com/prometheus/prometheus/wiki/Default-port-allocations
const DefaultPrometheusListen = "127.0.0.1:9233"

// passNone is the pass label of a call to an unknown function, where no pass
// ran at all.
const passNone = "none"

// Prometheus is the struct that contains information about the
// prometheus instance. Run Init() on it.
type Prometheus struct {
	Listen string // the listen specification for the net/http server

	// Registry is where the metrics are registered. If nil, a new one is
	// made, so that more than one instance can exist in the same process.
	Registry *prometheus.Registry

	Logf func(format string, v ...interface{})

	resolveTotal            *prometheus.CounterVec // total of call resolutions
	cacheMessagesTotal      *prometheus.CounterVec // total of cache control messages
	processStartTimeSeconds prometheus.Gauge       // process start time in seconds since unix epoch

	server *http.Server
}

// Init some parameters - currently the Listen address.
func (obj *Prometheus) Init() error {
	if len(obj.Listen) == 0 {
		obj.Listen = DefaultPrometheusListen
	}
	if obj.Registry == nil {
		obj.Registry = prometheus.NewRegistry()
	}
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {} // silent
	}

	obj.resolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipscript_resolve_total",
			Help: "Number of function calls that were resolved.",
		},
		// Labels for this metric.
		// pass: the pass which decided: strict, loose or none
		// result: ok, unknown, ambiguous or nomatch
		[]string{"pass", "result"},
	)
	obj.cacheMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipscript_cache_messages_total",
			Help: "Number of cache control messages sent to clips.",
		},
		// Labels for this metric.
		// key: the cache key in snake case, eg: register_cache
		// handled: did the clip take care of it
		[]string{"key", "handled"},
	)
	obj.processStartTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "clipscript_process_start_time_seconds",
			Help: "Start time of the process since unix epoch in seconds.",
		},
	)
	for _, c := range []prometheus.Collector{obj.resolveTotal, obj.cacheMessagesTotal, obj.processStartTimeSeconds} {
		if err := obj.Registry.Register(c); err != nil {
			return errwrap.Wrapf(err, "could not register a metric")
		}
	}
	// directly set the processStartTimeSeconds
	obj.processStartTimeSeconds.SetToCurrentTime()

	obj.initLabels()
	return nil
}

// initLabels creates every known label combination at zero, so that they show
// up before anything has happened.
func (obj *Prometheus) initLabels() {
	for _, pass := range []string{funcs.PassStrict, funcs.PassLoose} {
		for _, result := range []string{"ok", "ambiguous", "nomatch"} {
			obj.resolveTotal.WithLabelValues(pass, result)
		}
	}
	obj.resolveTotal.WithLabelValues(passNone, "unknown")

	for _, key := range clip.CacheKeys() {
		for _, handled := range []bool{true, false} {
			obj.cacheMessagesTotal.WithLabelValues(keyLabel(key), strconv.FormatBool(handled))
		}
	}
}

// Start runs a http server in a go routine, that responds to /metrics
// as prometheus would expect.
func (obj *Prometheus) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(obj.Registry, promhttp.HandlerOpts{}))
	obj.server = &http.Server{
		Addr:    obj.Listen,
		Handler: mux,
	}
	go func() {
		err := obj.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			obj.Logf("prometheus server failed: %+v", err)
		}
	}()
	return nil
}

// Stop the http server.
func (obj *Prometheus) Stop() error {
	if obj.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return obj.server.Shutdown(ctx)
}

// ObserveResolve counts one call resolution.
func (obj *Prometheus) ObserveResolve(pass, result string) {
	if pass == "" {
		pass = passNone
	}
	obj.resolveTotal.WithLabelValues(pass, result).Inc()
}

// ObserveCacheMessage counts one cache control message.
func (obj *Prometheus) ObserveCacheMessage(key clip.CacheKey, handled bool) {
	labels := prometheus.Labels{"key": keyLabel(key), "handled": strconv.FormatBool(handled)}
	obj.cacheMessagesTotal.With(labels).Inc()
}

// keyLabel returns the label value for a cache key, eg: register_cache.
func keyLabel(key clip.CacheKey) string {
	return strcase.ToSnake(key.String())
}
