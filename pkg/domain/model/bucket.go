package model

import "math"

// BucketStrategy selects how Bucketize maps a value onto bucket keys
type BucketStrategy int

const (
	// BucketFloor floors the value to an integer and requires an exact key
	BucketFloor BucketStrategy = iota
	// BucketStepDown picks the largest key not exceeding the value
	BucketStepDown
)

// Bucketize maps value onto one of sortedBuckets (ascending). It reports false
// when no key matches under the strategy.
func Bucketize(value float64, sortedBuckets []int, strategy BucketStrategy) (int, bool) {
	switch strategy {
	case BucketFloor:
		key := int(math.Floor(value))
		for _, b := range sortedBuckets {
			if b == key {
				return b, true
			}
		}
		return 0, false

	case BucketStepDown:
		found := false
		var key int
		for _, b := range sortedBuckets {
			if float64(b) > value {
				break
			}
			key = b
			found = true
		}
		return key, found

	default:
		return 0, false
	}
}
