// statistics.go defines the counters of the zero-copy import path.

package types

import (
	"go.uber.org/atomic"
)

type StatisticsItem struct {
	Count uint64 `json:",omitempty" yaml:"count,omitempty"`
	Bytes uint64 `json:",omitempty" yaml:"bytes,omitempty"`
}

// ImportStatistics is a snapshot of ImportCounters.
type ImportStatistics struct {
	Imported StatisticsItem `json:",omitempty" yaml:"imported,omitempty"`
	Planes   StatisticsItem `json:",omitempty" yaml:"planes,omitempty"`
	Declined StatisticsItem `json:",omitempty" yaml:"declined,omitempty"`
	Failed   StatisticsItem `json:",omitempty" yaml:"failed,omitempty"`
}

type CountersItem struct {
	Count atomic.Uint64
	Bytes atomic.Uint64
}

func (c *CountersItem) Increment(size uint64) {
	c.Count.Inc()
	c.Bytes.Add(size)
}

func (c *CountersItem) ToStats() StatisticsItem {
	return StatisticsItem{
		Count: c.Count.Load(),
		Bytes: c.Bytes.Load(),
	}
}

// ImportCounters counts the pictures passed to a GPU importer. Bytes are
// the sizes of the DMA buffers, which are never copied.
type ImportCounters struct {
	Imported CountersItem
	Planes   CountersItem
	Declined CountersItem
	Failed   CountersItem
}

// Account records the outcome of a single import.
func (c *ImportCounters) Account(err error, bufferSize uint64) {
	switch {
	case err == nil:
		c.Imported.Increment(bufferSize)
	case IsDecline(err):
		c.Declined.Increment(bufferSize)
	default:
		c.Failed.Increment(bufferSize)
	}
}

func (c *ImportCounters) ToStats() ImportStatistics {
	return ImportStatistics{
		Imported: c.Imported.ToStats(),
		Planes:   c.Planes.ToStats(),
		Declined: c.Declined.ToStats(),
		Failed:   c.Failed.ToStats(),
	}
}
