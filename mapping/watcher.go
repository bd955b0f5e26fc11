// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package mapping

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/o11y/metrics"
	metricsnoop "github.com/DataDog/callcheck/o11y/metrics/noop"
	"github.com/DataDog/callcheck/o11y/tags"
)

const (
	watcherRetryInterval = time.Second
	watcherMaxRetries    = 4
)

// Watcher keeps a registry in sync with a mapping document on disk. Each
// successful build is handed to the swap callback; a document that stops
// building keeps the previous registry in place.
type Watcher struct {
	log   *zap.SugaredLogger
	sink  metrics.Sink
	path  string
	swap  func(*metadata.Registry)
	viper *viper.Viper
}

// NewWatcher builds a watcher for the given mapping document. The swap
// callback receives every successfully built registry, including the initial
// one, and must be safe for concurrent use since reloads run on the watch
// goroutine.
func NewWatcher(log *zap.SugaredLogger, path string, sink metrics.Sink, swap func(*metadata.Registry)) (*Watcher, error) {
	if swap == nil {
		return nil, metadata.NewErrorf("a registry swap callback is required to watch %s", path)
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if sink == nil {
		sink = metricsnoop.New(log)
	}

	return &Watcher{
		log:   log,
		sink:  sink,
		path:  path,
		swap:  swap,
		viper: viper.New(),
	}, nil
}

// Start builds the registry from the document, retrying transient read
// failures, then watches the document for changes. It returns once the
// initial registry has been handed to the swap callback.
func (w *Watcher) Start() error {
	if err := backoff.Retry(w.reload, backoff.WithMaxRetries(backoff.NewConstantBackOff(watcherRetryInterval), watcherMaxRetries)); err != nil {
		return metadata.NewErrorf("building registry from mapping document %s: %w", w.path, err)
	}

	w.viper.SetConfigFile(w.path)

	w.viper.OnConfigChange(func(in fsnotify.Event) {
		w.log.Infow("mapping document changed, rebuilding the registry", "file", in.Name)

		if err := w.reload(); err != nil {
			w.log.Errorw("keeping the previous registry, the changed mapping document does not build", "error", err, "file", w.path)

			if mErr := w.sink.MetricRegistryReloaded(false, w.tags()); mErr != nil {
				w.log.Errorw("error sending a metric", "error", mErr)
			}

			return
		}

		if mErr := w.sink.MetricRegistryReloaded(true, w.tags()); mErr != nil {
			w.log.Errorw("error sending a metric", "error", mErr)
		}
	})

	w.viper.WatchConfig()

	return nil
}

// reload rebuilds the registry from the document and swaps it in. Read
// errors are retryable, a document that parses but does not build is
// permanent.
func (w *Watcher) reload() error {
	raw, err := os.ReadFile(filepath.Clean(w.path))
	if err != nil {
		return metadata.NewErrorf("reading mapping document %s: %w", w.path, err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return backoff.Permanent(err)
	}

	registry, err := doc.Build()
	if err != nil {
		return backoff.Permanent(err)
	}

	w.swap(registry)

	w.log.Infow("registry built from mapping document", "file", w.path, "callables", len(registry.Callables()), "declarations", registry.DeclarationCount())

	if mErr := w.sink.MetricRegistryBuilt(w.tags()); mErr != nil {
		w.log.Errorw("error sending a metric", "error", mErr)
	}

	if mErr := w.sink.MetricRegistryDeclarationsGauge(float64(registry.DeclarationCount())); mErr != nil {
		w.log.Errorw("error sending a metric", "error", mErr)
	}

	return nil
}

func (w *Watcher) tags() []string {
	return []string{tags.FormatTag("file", w.path)}
}
