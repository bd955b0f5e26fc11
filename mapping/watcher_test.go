// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package mapping_test

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"github.com/DataDog/callcheck/mapping"
	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/o11y/metrics"
)

const singleCallableDocument = `callables:
  - subject: orderService
    name: placeOrder
    arity: 1
    parameters:
      - index: 0
        constraints:
          - rule: notNil
            with: true
`

const twoCallableDocument = `callables:
  - subject: orderService
    name: placeOrder
    arity: 1
    parameters:
      - index: 0
        constraints:
          - rule: notNil
            with: true
  - subject: orderService
    name: cancelOrder
    arity: 1
    parameters:
      - index: 0
        constraints:
          - rule: minimum
            with: 1
`

// registryRecorder collects the registries a watcher swaps in, the watch
// goroutine delivers them concurrently with the test
type registryRecorder struct {
	mu     sync.Mutex
	swaps  int
	latest *metadata.Registry
}

func (r *registryRecorder) swap(registry *metadata.Registry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.swaps++
	r.latest = registry
}

func (r *registryRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.swaps
}

func (r *registryRecorder) registry() *metadata.Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.latest
}

var _ = Describe("Mapping Watcher", func() {
	var (
		path     string
		recorder *registryRecorder
		sinkMock *metrics.SinkMock
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "mapping.yaml")
		recorder = &registryRecorder{}
		sinkMock = &metrics.SinkMock{}
		sinkMock.On("MetricRegistryBuilt", mock.Anything).Return(nil)
		sinkMock.On("MetricRegistryDeclarationsGauge", mock.Anything).Return(nil)
		sinkMock.On("MetricRegistryReloaded", mock.Anything, mock.Anything).Return(nil)
	})

	It("requires a swap callback", func() {
		// Act
		_, err := mapping.NewWatcher(zaptest.NewLogger(GinkgoT()).Sugar(), "mapping.yaml", sinkMock, nil)

		// Assert
		Expect(err).To(HaveOccurred())
	})

	It("swaps the initial registry in on start", func() {
		// Arrange
		Expect(os.WriteFile(path, []byte(singleCallableDocument), 0o600)).To(Succeed())

		watcher, err := mapping.NewWatcher(zaptest.NewLogger(GinkgoT()).Sugar(), path, sinkMock, recorder.swap)
		Expect(err).ToNot(HaveOccurred())

		// Act
		Expect(watcher.Start()).To(Succeed())

		// Assert
		Expect(recorder.count()).To(Equal(1))
		Expect(recorder.registry().Known(metadata.NewMethod("orderService", "placeOrder"))).To(BeTrue())
		sinkMock.AssertCalled(GinkgoT(), "MetricRegistryBuilt", mock.Anything)
		sinkMock.AssertCalled(GinkgoT(), "MetricRegistryDeclarationsGauge", float64(1))
	})

	It("fails to start on a document that does not build", func() {
		// Arrange
		Expect(os.WriteFile(path, []byte("callables: [{subject: orderService}]"), 0o600)).To(Succeed())

		watcher, err := mapping.NewWatcher(zaptest.NewLogger(GinkgoT()).Sugar(), path, sinkMock, recorder.swap)
		Expect(err).ToNot(HaveOccurred())

		// Act
		err = watcher.Start()

		// Assert
		Expect(err).To(HaveOccurred())
		Expect(recorder.count()).To(Equal(0))
	})

	It("rebuilds the registry when the document changes", func() {
		// Arrange
		Expect(os.WriteFile(path, []byte(singleCallableDocument), 0o600)).To(Succeed())

		watcher, err := mapping.NewWatcher(zaptest.NewLogger(GinkgoT()).Sugar(), path, sinkMock, recorder.swap)
		Expect(err).ToNot(HaveOccurred())
		Expect(watcher.Start()).To(Succeed())

		// Act
		Expect(os.WriteFile(path, []byte(twoCallableDocument), 0o600)).To(Succeed())

		// Assert
		Eventually(func() bool {
			registry := recorder.registry()

			return registry != nil && registry.Known(metadata.NewMethod("orderService", "cancelOrder"))
		}, 5*time.Second, 50*time.Millisecond).Should(BeTrue())
		Expect(recorder.count()).To(BeNumerically(">=", 2))

		sinkMock.AssertCalled(GinkgoT(), "MetricRegistryReloaded", true, mock.Anything)
	})

	It("keeps the previous registry when the changed document does not build", func() {
		// Arrange
		Expect(os.WriteFile(path, []byte(singleCallableDocument), 0o600)).To(Succeed())

		watcher, err := mapping.NewWatcher(zaptest.NewLogger(GinkgoT()).Sugar(), path, sinkMock, recorder.swap)
		Expect(err).ToNot(HaveOccurred())
		Expect(watcher.Start()).To(Succeed())

		// Act
		Expect(os.WriteFile(path, []byte("callables:\n  - subject: orderService\n    name: placeOrder\n    arity: -2\n"), 0o600)).To(Succeed())

		// Assert
		Eventually(func() bool {
			return sinkMock.AssertCalled(&silentT{}, "MetricRegistryReloaded", false, mock.Anything)
		}, 5*time.Second, 50*time.Millisecond).Should(BeTrue())
		Expect(recorder.count()).To(Equal(1))
		Expect(recorder.registry().Known(metadata.NewMethod("orderService", "placeOrder"))).To(BeTrue())
	})
})

// silentT lets Eventually poll mock assertions without failing the spec on
// the attempts made before the watch goroutine has caught up
type silentT struct{}

func (silentT) Logf(string, ...interface{}) {}

func (silentT) Errorf(string, ...interface{}) {}

func (silentT) FailNow() {}
