package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

func TestBucketize(t *testing.T) {
	likelihoodKeys := []int{0, 25, 50, 75, 100}
	impactKeys := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		value    float64
		keys     []int
		strategy model.BucketStrategy
		wantKey  int
		wantOK   bool
	}{
		{"step down picks largest key not exceeding", 60, likelihoodKeys, model.BucketStepDown, 50, true},
		{"step down exact key", 75, likelihoodKeys, model.BucketStepDown, 75, true},
		{"step down just below next key", 74.99, likelihoodKeys, model.BucketStepDown, 50, true},
		{"step down above last key", 150, likelihoodKeys, model.BucketStepDown, 100, true},
		{"step down below first key", -1, likelihoodKeys, model.BucketStepDown, 0, false},
		{"floor drops fraction", 2.7, impactKeys, model.BucketFloor, 2, true},
		{"floor exact", 5, impactKeys, model.BucketFloor, 5, true},
		{"floor out of range", 0.5, impactKeys, model.BucketFloor, 0, false},
		{"floor above range", 6.2, impactKeys, model.BucketFloor, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := model.Bucketize(tt.value, tt.keys, tt.strategy)
			gt.Value(t, ok).Equal(tt.wantOK)
			gt.Value(t, key).Equal(tt.wantKey)
		})
	}
}

func TestScaleLookup(t *testing.T) {
	t.Run("likelihood 60 maps to the 50 bucket", func(t *testing.T) {
		level := model.LikelihoodScale.Lookup(60)
		gt.Value(t, level.Value).Equal(50)
		gt.Value(t, level.Label).Equal("Medium likelihood")
	})

	t.Run("likelihood below zero falls back to the first level", func(t *testing.T) {
		gt.Value(t, model.LikelihoodScale.Lookup(-5).Label).Equal("Not at all likely")
	})

	t.Run("impact is floored", func(t *testing.T) {
		level := model.ImpactScale.Lookup(2.7)
		gt.Value(t, level.Label).Equal("Low")
		gt.Value(t, level.Emoji).Equal("🌱")
	})

	t.Run("impact out of range falls back to minor", func(t *testing.T) {
		gt.Value(t, model.ImpactScale.Lookup(9).Label).Equal("Minor")
	})

	t.Run("effort labels", func(t *testing.T) {
		gt.Value(t, model.EffortScale.Lookup(5).Label).Equal("Extreme")
		gt.Value(t, model.EffortScale.Lookup(0).Label).Equal("Minimal")
	})
}
