package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation(t *testing.T) {
	tests := []struct {
		name     string
		zone     string
		wantName string
		wantErr  bool
	}{
		{name: "utc", zone: "UTC", wantName: "UTC"},
		{name: "empty defaults to utc", zone: "", wantName: "UTC"},
		{name: "iana zone", zone: "Europe/London", wantName: "Europe/London"},
		{name: "invalid", zone: "Invalid/Zone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := GetLocation(tt.zone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, loc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, loc.String())
		})
	}
}

func TestGetLocation_Caching(t *testing.T) {
	ClearLocationCache()

	first, err := GetLocation("America/New_York")
	require.NoError(t, err)
	second, err := GetLocation("America/New_York")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestGetLocation_ConcurrentAccess(t *testing.T) {
	ClearLocationCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := GetLocation("Asia/Singapore")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestParseInTimezone(t *testing.T) {
	got, err := ParseInTimezone("2006-01-02 15:04", "2025-12-15 08:30", "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", got.Location().String())
	assert.Equal(t, 8, got.Hour())

	_, err = ParseInTimezone("2006-01-02", "2025-12-15", "Invalid/Zone")
	assert.Error(t, err)
}

func TestParseSupplierTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 with offset",
			value: "2025-12-15T10:00:00+07:00",
			want:  time.Date(2025, 12, 15, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive seconds",
			value: "2025-12-15T10:00:00",
			want:  time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive minutes",
			value: "2025-12-15T10:00",
			want:  time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "space separated",
			value: "2025-12-15 10:00:00",
			want:  time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC),
		},
		{name: "garbage", value: "tomorrow", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSupplierTime(tt.value, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-12-15", FormatDate(time.Date(2025, 12, 15, 23, 59, 0, 0, time.UTC)))
}

func TestStartAndEndOfDay(t *testing.T) {
	loc, err := GetLocation("Asia/Singapore")
	require.NoError(t, err)
	ts := time.Date(2025, 12, 15, 14, 30, 45, 123, loc)

	start := StartOfDay(ts)
	end := EndOfDay(ts)

	assert.Equal(t, time.Date(2025, 12, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 12, 15, 23, 59, 59, 999999999, loc), end)
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, loc, end.Location())
}
