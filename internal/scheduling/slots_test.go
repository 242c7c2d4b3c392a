package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-service/internal/models"
)

func mondayWindow(startHour, endHour int) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		ID:          1,
		OwnerID:     1,
		DayOfWeek:   1,
		StartTime:   time.Date(2024, 1, 1, startHour, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 1, 1, endHour, 0, 0, 0, time.UTC),
		IsRecurring: true,
	}
}

func TestComputeSlotsRecurringFullDay(t *testing.T) {
	// 2024-06-03 is a Monday.
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	slots := ComputeSlots([]models.AvailabilityWindow{mondayWindow(9, 17)}, 30, from, to, nil)

	require.Len(t, slots, 16)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC), slots[0].End)
	assert.Equal(t, time.Date(2024, 6, 3, 16, 30, 0, 0, time.UTC), slots[15].Start)
	assert.Equal(t, time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC), slots[15].End)
}

func TestComputeSlotsSkipsNonMatchingWeekdays(t *testing.T) {
	// 2024-06-04 is a Tuesday; the window only applies on Mondays.
	from := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	slots := ComputeSlots([]models.AvailabilityWindow{mondayWindow(9, 17)}, 30, from, to, nil)
	assert.Empty(t, slots)
}

func TestComputeSlotsExcludesBookedThenFreesOnCancel(t *testing.T) {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	windows := []models.AvailabilityWindow{mondayWindow(9, 17)}

	booked := []models.BookedEvent{{
		CreatorID: 1,
		StartTime: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC),
	}}

	withBooking := ComputeSlots(windows, 30, from, to, booked)
	require.Len(t, withBooking, 15)
	assert.False(t, ContainsSlot(withBooking,
		time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)))

	// Cancelling the booking makes the slot reappear.
	afterCancel := ComputeSlots(windows, 30, from, to, nil)
	require.Len(t, afterCancel, 16)
	assert.True(t, ContainsSlot(afterCancel,
		time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)))
}

func TestComputeSlotsBookingDropsOverlappingLongerSlots(t *testing.T) {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	windows := []models.AvailabilityWindow{mondayWindow(9, 12)}

	// A 60-minute booking at 9:30 knocks out every 60-minute slot that
	// overlaps it, not just the exact interval.
	booked := []models.BookedEvent{{
		StartTime: time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC),
	}}

	slots := ComputeSlots(windows, 60, from, to, booked)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC), slots[0].Start)
}

func TestComputeSlotsOneOffWindow(t *testing.T) {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	oneOff := models.AvailabilityWindow{
		ID:          2,
		OwnerID:     1,
		StartTime:   time.Date(2024, 6, 5, 13, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC),
		IsRecurring: false,
	}

	slots := ComputeSlots([]models.AvailabilityWindow{oneOff}, 30, from, to, nil)
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2024, 6, 5, 13, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2024, 6, 5, 13, 30, 0, 0, time.UTC), slots[1].Start)
}

func TestComputeSlotsRecurringProjectsAcrossWeeks(t *testing.T) {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	slots := ComputeSlots([]models.AvailabilityWindow{mondayWindow(9, 10)}, 30, from, to, nil)
	require.Len(t, slots, 4)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), slots[2].Start)
}

func TestComputeSlotsOrderedByStart(t *testing.T) {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	windows := []models.AvailabilityWindow{
		mondayWindow(14, 15),
		mondayWindow(9, 10),
	}

	slots := ComputeSlots(windows, 30, from, to, nil)
	require.Len(t, slots, 4)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestComputeSlotsRejectsBadInput(t *testing.T) {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, ComputeSlots([]models.AvailabilityWindow{mondayWindow(9, 17)}, 0, from, from.Add(time.Hour), nil))
	assert.Nil(t, ComputeSlots([]models.AvailabilityWindow{mondayWindow(9, 17)}, 30, from, from, nil))
}

func TestPartitionByDate(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	events := []models.BookedEvent{
		{ID: 1, StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-47 * time.Hour)},
		{ID: 2, StartTime: now.Add(24 * time.Hour), EndTime: now.Add(25 * time.Hour)},
		{ID: 3, StartTime: now.Add(26 * time.Hour), EndTime: now.Add(27 * time.Hour)},
	}

	upcoming, past := PartitionByDate(events, now)

	require.Len(t, past["2024-06-03"], 1)
	assert.Equal(t, 1, past["2024-06-03"][0].ID)
	require.Len(t, upcoming["2024-06-06"], 2)
}
