// Package aggregate groups flat event records into counted buckets.
package aggregate

import (
	"sort"
)

// KeyFunc derives the bucket key of a record.
type KeyFunc[T any] func(T) string

// KindFunc derives the sub-count a record adds to (e.g. tardy type).
type KindFunc[T any] func(T) string

// Bucket is one group with its total and per-kind counts.
type Bucket struct {
	Key    string         `json:"key"`
	Count  int            `json:"count"`
	ByType map[string]int `json:"byType,omitempty"`
}

// Buckets keeps groups in the order their keys were first seen.
type Buckets struct {
	order []string
	index map[string]*Bucket
}

// Aggregate puts every record in exactly one bucket. kind may be nil. Kinds
// listed in seed start at zero in every bucket so missing kinds still show.
func Aggregate[T any](records []T, key KeyFunc[T], kind KindFunc[T], seed ...string) *Buckets {
	b := &Buckets{index: make(map[string]*Bucket)}
	for _, r := range records {
		k := key(r)
		bucket, ok := b.index[k]
		if !ok {
			bucket = &Bucket{Key: k}
			if kind != nil {
				bucket.ByType = make(map[string]int, len(seed))
				for _, s := range seed {
					bucket.ByType[s] = 0
				}
			}
			b.index[k] = bucket
			b.order = append(b.order, k)
		}
		bucket.Count++
		if kind != nil {
			bucket.ByType[kind(r)]++
		}
	}
	return b
}

func (b *Buckets) Len() int {
	return len(b.order)
}

// Keys returns keys in insertion order.
func (b *Buckets) Keys() []string {
	return append([]string(nil), b.order...)
}

// SortedKeys returns keys in lexicographic order.
func (b *Buckets) SortedKeys() []string {
	keys := b.Keys()
	sort.Strings(keys)
	return keys
}

func (b *Buckets) Get(key string) (Bucket, bool) {
	bucket, ok := b.index[key]
	if !ok {
		return Bucket{}, false
	}
	return *bucket, true
}

// Sorted returns copies of the buckets ordered by key.
func (b *Buckets) Sorted() []Bucket {
	out := make([]Bucket, 0, len(b.order))
	for _, k := range b.SortedKeys() {
		out = append(out, *b.index[k])
	}
	return out
}

// Total is the number of records aggregated.
func (b *Buckets) Total() int {
	total := 0
	for _, bucket := range b.index {
		total += bucket.Count
	}
	return total
}

// Max returns the bucket with the highest count. Ties go to the
// lexicographically smallest key so the answer does not depend on input order.
func (b *Buckets) Max() (Bucket, bool) {
	var best *Bucket
	for _, bucket := range b.index {
		if best == nil || bucket.Count > best.Count || (bucket.Count == best.Count && bucket.Key < best.Key) {
			best = bucket
		}
	}
	if best == nil {
		return Bucket{}, false
	}
	return *best, true
}

// PerBucket is total / number of buckets, 0 when empty.
func (b *Buckets) PerBucket() float64 {
	if len(b.order) == 0 {
		return 0
	}
	return float64(b.Total()) / float64(len(b.order))
}
