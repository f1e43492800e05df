package labor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

func splitter(threshold string) labor.OvertimeSplitter {
	th := dec(threshold)
	return labor.OvertimeSplitter{Threshold: &th, Multiplier: dec("1.5")}
}

func TestOvertimeSplit_BelowThreshold_AllRegular(t *testing.T) {
	// GIVEN: An 8-hour threshold
	// WHEN: Splitting 6 hours
	// THEN: All regular at multiplier 1, no overtime

	got := splitter("8").Split(dec("6"))

	assert.True(t, got.Regular.Equal(dec("6")))
	assert.True(t, got.Overtime.IsZero())
	assert.True(t, got.RegularMultiplier.Equal(dec("1")))
	assert.True(t, got.OvertimeMultiplier.IsZero())
}

func TestOvertimeSplit_ExactlyAtThreshold_NoOvertime(t *testing.T) {
	// GIVEN: An 8-hour threshold
	// WHEN: Splitting exactly 8 hours
	// THEN: The boundary itself is all regular

	got := splitter("8").Split(dec("8"))

	assert.True(t, got.Regular.Equal(dec("8")))
	assert.True(t, got.Overtime.IsZero())
	assert.True(t, got.OvertimeMultiplier.IsZero())
}

func TestOvertimeSplit_AboveThreshold(t *testing.T) {
	// GIVEN: An 8-hour threshold with a 1.5x multiplier
	// WHEN: Splitting 10 hours
	// THEN: 8 regular + 2 overtime, the overtime multiplier carried through

	got := splitter("8").Split(dec("10"))

	assert.True(t, got.Regular.Equal(dec("8")))
	assert.True(t, got.Overtime.Equal(dec("2")))
	assert.True(t, got.RegularMultiplier.Equal(dec("1")))
	assert.True(t, got.OvertimeMultiplier.Equal(dec("1.5")))
}

func TestOvertimeSplit_NilThresholdDisablesOvertime(t *testing.T) {
	// GIVEN: No threshold configured
	// WHEN: Splitting even a very long day
	// THEN: Everything is regular

	s := labor.OvertimeSplitter{Threshold: nil, Multiplier: dec("1.5")}
	got := s.Split(dec("14"))

	assert.True(t, got.Regular.Equal(dec("14")))
	assert.True(t, got.Overtime.IsZero())
}

func TestOvertimeSplit_FractionalHours(t *testing.T) {
	// GIVEN: An 8-hour threshold
	// WHEN: Splitting 8.25 hours
	// THEN: The quarter hour lands in overtime

	got := splitter("8").Split(dec("8.25"))

	assert.True(t, got.Regular.Equal(dec("8")))
	assert.True(t, got.Overtime.Equal(dec("0.25")))
}
