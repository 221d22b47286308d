package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	assert.False(t, now.Before(before), "clock time should not be before start")
	assert.False(t, now.After(after), "clock time should not be after end")
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2025, 12, 15, 10, 30, 0, 0, time.UTC)
	clock := NewMockClock(fixedTime)

	assert.Equal(t, fixedTime, clock.Now())
	assert.Equal(t, fixedTime, clock.Now())
}

func TestMockClock_Set(t *testing.T) {
	initialTime := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	newTime := time.Date(2025, 12, 15, 14, 30, 0, 0, time.UTC)

	clock := NewMockClock(initialTime)
	assert.Equal(t, initialTime, clock.Now())

	clock.Set(newTime)
	assert.Equal(t, newTime, clock.Now())
}

func TestMockClock_Advance(t *testing.T) {
	tests := []struct {
		name    string
		advance func(c *MockClock)
		want    time.Time
	}{
		{
			name:    "duration",
			advance: func(c *MockClock) { c.Advance(30 * time.Minute) },
			want:    time.Date(2025, 12, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "minutes past offer ttl",
			advance: func(c *MockClock) { c.AdvanceMinutes(31) },
			want:    time.Date(2025, 12, 15, 10, 31, 0, 0, time.UTC),
		},
		{
			name:    "backwards",
			advance: func(c *MockClock) { c.Advance(-2 * time.Hour) },
			want:    time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewMockClock(time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC))
			tt.advance(clock)
			assert.Equal(t, tt.want, clock.Now())
		})
	}
}

func TestMockClock_ConcurrentAccess(t *testing.T) {
	clock := NewMockClock(time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			clock.Advance(time.Second)
		}()
		go func() {
			defer wg.Done()
			_ = clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, time.Date(2025, 12, 15, 10, 0, 50, 0, time.UTC), clock.Now())
}

func TestNewMockClockFromString(t *testing.T) {
	clock := NewMockClockFromString("2025-12-15T10:00:00Z")
	assert.Equal(t, time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC), clock.Now())
}

func TestNewMockClockFromString_Panic(t *testing.T) {
	assert.Panics(t, func() {
		NewMockClockFromString("invalid-time")
	})
}
