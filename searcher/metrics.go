package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	Duration   time.Duration
	Depth      int
	Goroutines int
	Nodes      int64 // states produced by playing a move
	Leaves     int64 // states scored without further search
}

type MetricsCollector interface {
	Start(depth, goroutines int)
	AddNode()
	AddLeaf()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime  time.Time
	depth      int
	goroutines int
	nodes      atomic.Int64
	leaves     atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth, goroutines int) {
	m.startTime = time.Now()
	m.depth = depth
	m.goroutines = goroutines
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		Duration:   time.Since(m.startTime),
		Depth:      m.depth,
		Goroutines: m.goroutines,
		Nodes:      m.nodes.Load(),
		Leaves:     m.leaves.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(depth, goroutines int) {}
func (m *noMetricsCollector) AddNode()                    {}
func (m *noMetricsCollector) AddLeaf()                    {}
func (m *noMetricsCollector) Complete() SearchMetrics     { return SearchMetrics{} }
