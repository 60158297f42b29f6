package core

import "sync/atomic"

// Stats is a point-in-time copy of the usage counters of a session.
type Stats struct {
	Edits       int64 `json:"edits"`
	Exports     int64 `json:"exports"`
	Imports     int64 `json:"imports"`
	Simulations int64 `json:"simulations"`
	Saves       int64 `json:"saves"`
	Loads       int64 `json:"loads"`
}

// StatsSource is read by the metrics log task.
type StatsSource interface {
	Stats() Stats
}

// Counters is the concurrent-safe side of Stats.
type Counters struct {
	Edits       atomic.Int64
	Exports     atomic.Int64
	Imports     atomic.Int64
	Simulations atomic.Int64
	Saves       atomic.Int64
	Loads       atomic.Int64
}

func (c *Counters) Stats() Stats {
	return Stats{
		Edits:       c.Edits.Load(),
		Exports:     c.Exports.Load(),
		Imports:     c.Imports.Load(),
		Simulations: c.Simulations.Load(),
		Saves:       c.Saves.Load(),
		Loads:       c.Loads.Load(),
	}
}
