// Package metrics exports statetree transition activity to Prometheus.
//
// Collector implements statetree.Observer; subscribe it to a machine (or
// several) and register it with a Registerer:
//
//	col := metrics.NewCollector(prometheus.DefaultRegisterer)
//	m, _ := statetree.NewMachine(initial, states, statetree.WithObserver(col))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ludokit/statetree"
)

// Collector records transition and lifecycle counts per machine and state.
// Safe to share across machines; series are labeled by machine ID.
type Collector struct {
	transitions *prometheus.CounterVec
	entered     *prometheus.CounterVec
	exited      *prometheus.CounterVec
	active      *prometheus.GaugeVec
}

var _ statetree.Observer = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// Panics on registration conflicts, like prometheus.MustRegister.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statetree",
			Name:      "transitions_total",
			Help:      "Completed transitions by machine and target path.",
		}, []string{"machine", "target"}),
		entered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statetree",
			Name:      "state_entered_total",
			Help:      "State enter events by machine and state path.",
		}, []string{"machine", "state"}),
		exited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statetree",
			Name:      "state_exited_total",
			Help:      "State exit events by machine and state path.",
		}, []string{"machine", "state"}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "statetree",
			Name:      "state_active",
			Help:      "1 while the state is current, 0 otherwise.",
		}, []string{"machine", "state"}),
	}
	reg.MustRegister(c.transitions, c.entered, c.exited, c.active)
	return c
}

func (c *Collector) Entered(s *statetree.State) {
	machine := machineID(s)
	path := s.Path()
	c.entered.WithLabelValues(machine, path).Inc()
	c.active.WithLabelValues(machine, path).Set(1)
}

func (c *Collector) Exited(s *statetree.State) {
	machine := machineID(s)
	path := s.Path()
	c.exited.WithLabelValues(machine, path).Inc()
	c.active.WithLabelValues(machine, path).Set(0)
}

func (c *Collector) Transitioned(m *statetree.Machine, path string) {
	c.transitions.WithLabelValues(m.ID(), path).Inc()
}

func machineID(s *statetree.State) string {
	if m := statetree.OwningMachine(s); m != nil {
		return m.ID()
	}
	return ""
}
