// Package store holds the in-memory time series state: one timestamp ring
// buffer plus one value ring buffer per channel, all evicting in lockstep.
package store

import (
	"sync"
	"time"
)

// Sample is one reading across every channel at a single instant.
type Sample struct {
	Timestamp time.Time
	Values    []float64
}

// SampleStore is a fixed-capacity ring buffer over parallel timestamp and
// channel streams. Every append mutates all streams as a single step under
// one lock, so readers never observe a timestamp without its values.
type SampleStore struct {
	mu         sync.RWMutex
	channels   []string
	timestamps []time.Time
	values     [][]float64 // values[ch][slot]
	head       int
	count      int
	capacity   int

	// total counts samples ever appended, including evicted ones. int64 so
	// it cannot overflow over a long-running capture session.
	total int64
}

// NewSampleStore creates a store for the given channels with the given
// per-channel capacity.
func NewSampleStore(channels []string, capacity int) *SampleStore {
	if capacity < 1 {
		capacity = 1
	}
	values := make([][]float64, len(channels))
	for i := range values {
		values[i] = make([]float64, capacity)
	}
	names := make([]string, len(channels))
	copy(names, channels)
	return &SampleStore{
		channels:   names,
		timestamps: make([]time.Time, capacity),
		values:     values,
		capacity:   capacity,
	}
}

// Channels returns the channel names in stream order.
func (s *SampleStore) Channels() []string {
	out := make([]string, len(s.channels))
	copy(out, s.channels)
	return out
}

// Capacity returns the fixed maximum length of every stream.
func (s *SampleStore) Capacity() int {
	return s.capacity
}

// Len returns the current number of buffered samples.
func (s *SampleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Total returns the number of samples appended over the store's lifetime,
// including samples already evicted.
func (s *SampleStore) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Append adds one sample across the timestamp stream and every channel
// stream. At capacity the oldest sample is evicted first, keeping net length
// unchanged. values must carry one entry per channel.
func (s *SampleStore) Append(ts time.Time, values []float64) {
	if len(values) != len(s.channels) {
		// An append to one channel without the rest would tear the
		// parallel-stream invariant; drop the whole sample instead.
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	slot := (s.head + s.count) % s.capacity
	s.timestamps[slot] = ts
	for ch := range s.values {
		s.values[ch][slot] = values[ch]
	}
	if s.count < s.capacity {
		s.count++
	} else {
		s.head = (s.head + 1) % s.capacity
	}
	s.total++
}

// Latest returns the most recent sample, or ok=false when the store is empty.
func (s *SampleStore) Latest() (Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.count == 0 {
		return Sample{}, false
	}
	slot := (s.head + s.count - 1) % s.capacity
	values := make([]float64, len(s.values))
	for ch := range s.values {
		values[ch] = s.values[ch][slot]
	}
	return Sample{Timestamp: s.timestamps[slot], Values: values}, true
}

// Slice returns the timestamps and per-channel values in [start, end) in
// insertion order. start and end are clamped to [0, Len]; an inverted range
// yields empty slices, never an error.
func (s *SampleStore) Slice(start, end int) ([]time.Time, [][]float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if start < 0 {
		start = 0
	}
	if end > s.count {
		end = s.count
	}
	if start >= end {
		return []time.Time{}, emptyChannels(len(s.values))
	}

	n := end - start
	ts := make([]time.Time, n)
	vals := make([][]float64, len(s.values))
	for ch := range vals {
		vals[ch] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		slot := (s.head + start + i) % s.capacity
		ts[i] = s.timestamps[slot]
		for ch := range s.values {
			vals[ch][i] = s.values[ch][slot]
		}
	}
	return ts, vals
}

// Tail returns the most recent n samples (fewer when the buffer holds
// fewer) in insertion order, along with the append total at the time of the
// read. Both are taken under one lock, so the total accounts for exactly the
// samples the slices end with.
func (s *SampleStore) Tail(n int) ([]time.Time, [][]float64, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > s.count {
		n = s.count
	}
	if n <= 0 {
		return []time.Time{}, emptyChannels(len(s.values)), s.total
	}
	start := s.count - n
	ts := make([]time.Time, n)
	vals := make([][]float64, len(s.values))
	for ch := range vals {
		vals[ch] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		slot := (s.head + start + i) % s.capacity
		ts[i] = s.timestamps[slot]
		for ch := range s.values {
			vals[ch][i] = s.values[ch][slot]
		}
	}
	return ts, vals, s.total
}

// TailSince returns the samples appended after the first n appends, oldest
// first, along with the current append total. ok is false when n does not
// identify a resumable position: negative, ahead of the total, or far enough
// behind that some of the samples since it have already been evicted.
func (s *SampleStore) TailSince(n int64) (samples []Sample, total int64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gap := s.total - n
	if n < 0 || gap < 0 || gap > int64(s.count) {
		return nil, s.total, false
	}
	samples = make([]Sample, gap)
	start := s.count - int(gap)
	for i := range samples {
		slot := (s.head + start + i) % s.capacity
		values := make([]float64, len(s.values))
		for ch := range s.values {
			values[ch] = s.values[ch][slot]
		}
		samples[i] = Sample{Timestamp: s.timestamps[slot], Values: values}
	}
	return samples, s.total, true
}

// Snapshot returns every buffered sample in insertion order, oldest first.
// The result is a copy: concurrent appends after Snapshot returns do not
// show through.
func (s *SampleStore) Snapshot() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Sample, s.count)
	for i := 0; i < s.count; i++ {
		slot := (s.head + i) % s.capacity
		values := make([]float64, len(s.values))
		for ch := range s.values {
			values[ch] = s.values[ch][slot]
		}
		out[i] = Sample{Timestamp: s.timestamps[slot], Values: values}
	}
	return out
}

func emptyChannels(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = []float64{}
	}
	return out
}
