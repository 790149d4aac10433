package arena

import "sync/atomic"

// Stats is a point-in-time snapshot of an arena's lifecycle counters. At any
// quiescent point Created - Discarded - Taken equals Idle + Live.
type Stats struct {
	// Created counts values that entered the arena system via Get
	// initialization or Wrap.
	Created int64
	// Reused counts Get calls satisfied from storage.
	Reused int64
	// Discarded counts released values rejected by the sanitize rule.
	Discarded int64
	// Taken counts values extracted permanently via Take.
	Taken int64
	// Live counts outstanding unspent leases.
	Live int64
	// Idle counts values currently stored for reuse.
	Idle int64
}

type counters struct {
	created   atomic.Int64
	reused    atomic.Int64
	discarded atomic.Int64
	taken     atomic.Int64
	live      atomic.Int64
}

// Stats snapshots the arena's counters.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		Created:   a.stats.created.Load(),
		Reused:    a.stats.reused.Load(),
		Discarded: a.stats.discarded.Load(),
		Taken:     a.stats.taken.Load(),
		Live:      a.stats.live.Load(),
		Idle:      int64(a.Len()),
	}
}
