package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"new year wednesday", date(2025, time.January, 1), "2025-W01"},
		{"december rolls forward", date(2024, time.December, 31), "2025-W01"},
		{"january rolls back", date(2023, time.January, 1), "2022-W52"},
		{"53 week year", date(2020, time.December, 31), "2020-W53"},
		{"early january in week 53", date(2021, time.January, 3), "2020-W53"},
		{"mid year", date(2025, time.June, 18), "2025-W25"},
		{"two digit padding", date(2025, time.March, 3), "2025-W10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestKey_NormalizesToUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	// Monday 00:30 in Paris is still Sunday in UTC.
	in := time.Date(2025, time.January, 6, 0, 30, 0, 0, paris)
	assert.Equal(t, "2025-W01", Key(in))
}

func TestParse(t *testing.T) {
	year, w, err := Parse("2025-W07")
	assert.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 7, w)

	_, _, err = Parse("2020-W53")
	assert.NoError(t, err)

	for _, bad := range []string{"", "2025-07", "2025-W7", "2025W07", "2025-W00", "2025-W53", "abcd-W01", "2025-w01", "2025-W+1"} {
		_, _, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestStartAndBounds(t *testing.T) {
	start, err := Start("2025-W01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), start)

	start, end, err := Bounds("2022-W52")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2022, time.December, 26, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC), end)

	_, err = Start("bogus")
	assert.Error(t, err)
}

func TestKeyStartRoundTrip(t *testing.T) {
	day := time.Date(2019, time.December, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		key := Key(day)
		start, end, err := Bounds(key)
		assert.NoError(t, err)
		assert.False(t, day.Before(start), key)
		assert.True(t, day.Before(end), key)
		day = day.AddDate(0, 0, 1)
	}
}
