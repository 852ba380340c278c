package aggregate

import (
	"math"

	"github.com/alexanderramin/tripboard/internal/domain"
)

// BucketCounts holds item counts per bucket. Missing keys count as zero.
type BucketCounts map[domain.Bucket]int

// Get returns the count for b.
func (c BucketCounts) Get(b domain.Bucket) int {
	return c[b]
}

// Total sums all buckets.
func (c BucketCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Add merges other into c.
func (c BucketCounts) Add(other BucketCounts) {
	for b, v := range other {
		c[b] += v
	}
}

// Sightseeing is the combined "景點/順遊" figure: spot, shopping and other.
// It is the only place buckets are folded together.
func (c BucketCounts) Sightseeing() int {
	return c[domain.BucketSpot] + c[domain.BucketShopping] + c[domain.BucketOther]
}

// Percentages returns each bucket's share of the total, rounded to the
// nearest integer. Every bucket is present; an empty total yields zeros.
func (c BucketCounts) Percentages() map[domain.Bucket]int {
	total := c.Total()
	out := make(map[domain.Bucket]int, len(domain.Buckets))
	for _, b := range domain.Buckets {
		if total == 0 {
			out[b] = 0
			continue
		}
		out[b] = int(math.Round(float64(c[b]) * 100 / float64(total)))
	}
	return out
}

func newBucketCounts() BucketCounts {
	c := make(BucketCounts, len(domain.Buckets))
	for _, b := range domain.Buckets {
		c[b] = 0
	}
	return c
}
