// Package metrics records counters, gauges and stopwatches in a private
// Prometheus registry. Metrics are named <namespace>_<group>_<name>, with dots
// in the group replaced by underscores, and are created on first use.
package metrics

// Policy selects the collector backing a metric.
type Policy int

const (
	PolicyNone      Policy = iota
	PolicySet              // gauge, last value wins
	PolicySum              // counter
	PolicyStopwatch        // histogram of durations in seconds
)

func (p Policy) String() string {
	switch p {
	case PolicySet:
		return "set"
	case PolicySum:
		return "sum"
	case PolicyStopwatch:
		return "stopwatch"
	default:
		return "none"
	}
}

// Value is a metric sample.
type Value float64

// Dimension labels a sample, e.g. {"packet": "LevelJoin"}.
type Dimension map[string]string
