package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{name: "no failures", failures: 0, want: 0},
		{name: "first failure", failures: 1, want: 30 * time.Second},
		{name: "second failure", failures: 2, want: time.Minute},
		{name: "third failure", failures: 3, want: 2 * time.Minute},
		{name: "capped", failures: 7, want: 10 * time.Minute},
		{name: "huge count stays capped", failures: 60, want: 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backoffDelay(tt.failures))
		})
	}
}

func TestEligible(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Fresh entries are always eligible
	assert.True(t, eligible(0, base, base))

	// One failure blocks for 30s
	assert.False(t, eligible(1, base, base.Add(29*time.Second)))
	assert.True(t, eligible(1, base, base.Add(30*time.Second)))

	// Two failures block for a minute
	assert.False(t, eligible(2, base, base.Add(59*time.Second)))
	assert.True(t, eligible(2, base, base.Add(time.Minute)))
}
