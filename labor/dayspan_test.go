package labor_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newYork(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =============================================================================
// DAY SPLITTING TESTS
// =============================================================================

func TestSplitByDay_SingleDay(t *testing.T) {
	// GIVEN: A shift from 08:00 to 16:30 Eastern, well inside one day
	// WHEN: Splitting it into day segments
	// THEN: One segment on that day carrying 8.5 hours

	loc := newYork(t)
	start := time.Date(2025, time.June, 3, 8, 0, 0, 0, loc).UTC()
	end := time.Date(2025, time.June, 3, 16, 30, 0, 0, loc).UTC()

	segments := labor.SplitByDay(start, end, loc)

	require.Len(t, segments, 1)
	assert.Equal(t, "2025-06-03", segments[0].Day.String())
	assert.True(t, segments[0].Hours.Equal(dec("8.5")), "got %s hours", segments[0].Hours)
}

func TestSplitByDay_CrossesLocalMidnight(t *testing.T) {
	// GIVEN: An overnight pour from 20:00 to 04:00 Eastern
	// WHEN: Splitting by local day
	// THEN: 4 hours land on the first day, 4 hours on the next

	loc := newYork(t)
	start := time.Date(2025, time.June, 5, 20, 0, 0, 0, loc).UTC()
	end := time.Date(2025, time.June, 6, 4, 0, 0, 0, loc).UTC()

	segments := labor.SplitByDay(start, end, loc)

	require.Len(t, segments, 2)
	assert.Equal(t, "2025-06-05", segments[0].Day.String())
	assert.True(t, segments[0].Hours.Equal(dec("4")), "got %s", segments[0].Hours)
	assert.Equal(t, "2025-06-06", segments[1].Day.String())
	assert.True(t, segments[1].Hours.Equal(dec("4")), "got %s", segments[1].Hours)
}

func TestSplitByDay_UTCDayDiffersFromLocalDay(t *testing.T) {
	// GIVEN: 22:00 June 3 UTC, which is 18:00 June 3 Eastern
	// WHEN: Splitting a 2-hour span starting there
	// THEN: The whole span lands on June 3 local even though UTC rolls to June 4

	loc := newYork(t)
	start := time.Date(2025, time.June, 3, 22, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour) // ends 00:00 June 4 UTC = 20:00 June 3 local

	segments := labor.SplitByDay(start, end, loc)

	require.Len(t, segments, 1)
	assert.Equal(t, "2025-06-03", segments[0].Day.String())
	assert.True(t, segments[0].Hours.Equal(dec("2")))
}

func TestSplitByDay_MultiDaySpan_HoursSumToTotal(t *testing.T) {
	// GIVEN: A 3.5-day continuous span
	// WHEN: Splitting by day
	// THEN: Segments are ordered, contiguous, and sum to the full elapsed hours

	loc := newYork(t)
	start := time.Date(2025, time.March, 3, 6, 0, 0, 0, loc).UTC()
	end := time.Date(2025, time.March, 6, 18, 0, 0, 0, loc).UTC()

	segments := labor.SplitByDay(start, end, loc)

	require.Len(t, segments, 4)
	total := decimal.Zero
	for i, seg := range segments {
		total = total.Add(seg.Hours)
		if i > 0 {
			assert.True(t, segments[i-1].Day.Before(seg.Day), "segments out of order")
			assert.True(t, seg.Day.Equal(segments[i-1].Day.AddDays(1)), "segments not contiguous")
		}
	}
	assert.True(t, total.Equal(dec("84")), "total hours %s", total)
	assert.True(t, segments[0].Hours.Equal(dec("18")))
	assert.True(t, segments[3].Hours.Equal(dec("18")))
}

func TestSplitByDay_EmptyAndInvertedIntervals(t *testing.T) {
	// GIVEN: A zero-length interval and an inverted one
	// WHEN: Splitting either
	// THEN: No segments are produced

	loc := newYork(t)
	at := time.Date(2025, time.June, 3, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, labor.SplitByDay(at, at, loc))
	assert.Empty(t, labor.SplitByDay(at, at.Add(-time.Hour), loc))
}

func TestSplitByDay_EndExactlyAtMidnight(t *testing.T) {
	// GIVEN: A shift ending exactly at local midnight
	// WHEN: Splitting by day
	// THEN: No zero-length segment appears on the following day

	loc := newYork(t)
	start := time.Date(2025, time.June, 3, 18, 0, 0, 0, loc).UTC()
	end := time.Date(2025, time.June, 4, 0, 0, 0, 0, loc).UTC()

	segments := labor.SplitByDay(start, end, loc)

	require.Len(t, segments, 1)
	assert.Equal(t, "2025-06-03", segments[0].Day.String())
	assert.True(t, segments[0].Hours.Equal(dec("6")))
}

func TestSplitByDay_SpringForwardDayHas23Hours(t *testing.T) {
	// GIVEN: A span covering the US spring-forward day (2025-03-09)
	// WHEN: Splitting midnight-to-midnight local
	// THEN: The segment carries 23 elapsed hours; no hour is invented

	loc := newYork(t)
	start := time.Date(2025, time.March, 9, 0, 0, 0, 0, loc).UTC()
	end := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc).UTC()

	segments := labor.SplitByDay(start, end, loc)

	require.Len(t, segments, 1)
	assert.Equal(t, "2025-03-09", segments[0].Day.String())
	assert.True(t, segments[0].Hours.Equal(dec("23")), "got %s", segments[0].Hours)
}

// =============================================================================
// WINDOW BOUNDS TESTS
// =============================================================================

func TestWindowBoundsUTC_CoversLocalDays(t *testing.T) {
	// GIVEN: The window [2025-06-02, 2025-06-04] in Eastern time
	// WHEN: Computing its UTC bounds
	// THEN: Start is June 2 midnight local, end is June 5 midnight local (exclusive)

	loc := newYork(t)
	startDay := labor.NewDay(2025, time.June, 2)
	endDay := labor.NewDay(2025, time.June, 4)

	start, end := labor.WindowBoundsUTC(startDay, endDay, loc)

	assert.Equal(t, time.Date(2025, time.June, 2, 4, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.June, 5, 4, 0, 0, 0, time.UTC), end)
}

func TestDayOf_RespectsZoneOffset(t *testing.T) {
	// GIVEN: An instant late on June 3 UTC
	// WHEN: Resolving its local day in Eastern vs UTC
	// THEN: The local days differ across the zone boundary

	loc := newYork(t)
	at := time.Date(2025, time.June, 4, 2, 0, 0, 0, time.UTC) // 22:00 June 3 Eastern

	assert.Equal(t, "2025-06-03", labor.DayOf(at, loc).String())
	assert.Equal(t, "2025-06-04", labor.DayOf(at, time.UTC).String())
}
