package scheduling

import (
	"sort"
	"time"

	"career-service/internal/models"
)

// Slot is a computed candidate booking interval. Slots are derived per
// request from availability minus existing bookings and never persisted.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ComputeSlots expands the given availability windows into bookable slots
// of the given length within [from, to), excluding any slot that overlaps
// an existing booking. Recurring windows are projected onto every date in
// range whose weekday matches; one-off windows are used as stored. The
// result is ordered by start time.
func ComputeSlots(windows []models.AvailabilityWindow, lengthMinutes int, from, to time.Time, booked []models.BookedEvent) []Slot {
	if lengthMinutes <= 0 || !from.Before(to) {
		return nil
	}
	slotLen := time.Duration(lengthMinutes) * time.Minute

	var candidates []Slot
	for _, w := range windows {
		if w.IsRecurring {
			candidates = append(candidates, expandRecurring(w, slotLen, from, to)...)
		} else {
			candidates = append(candidates, chunkWindow(w.StartTime, w.EndTime, slotLen, from, to)...)
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Start.Before(candidates[j].Start) })

	available := candidates[:0]
	for _, s := range candidates {
		if !overlapsAny(s, booked) {
			available = append(available, s)
		}
	}
	return available
}

// expandRecurring projects a weekly window onto each matching date in
// [from, to) and chunks the resulting concrete windows.
func expandRecurring(w models.AvailabilityWindow, slotLen time.Duration, from, to time.Time) []Slot {
	var out []Slot
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for ; day.Before(to); day = day.AddDate(0, 0, 1) {
		if int(day.Weekday()) != w.DayOfWeek {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(),
			w.StartTime.UTC().Hour(), w.StartTime.UTC().Minute(), 0, 0, time.UTC)
		end := time.Date(day.Year(), day.Month(), day.Day(),
			w.EndTime.UTC().Hour(), w.EndTime.UTC().Minute(), 0, 0, time.UTC)
		out = append(out, chunkWindow(start, end, slotLen, from, to)...)
	}
	return out
}

// chunkWindow subdivides a concrete window into contiguous slots of
// slotLen, keeping only slots fully inside both the window and [from, to).
func chunkWindow(windowStart, windowEnd time.Time, slotLen time.Duration, from, to time.Time) []Slot {
	var out []Slot
	for s := windowStart; !s.Add(slotLen).After(windowEnd); s = s.Add(slotLen) {
		e := s.Add(slotLen)
		if s.Before(from) || e.After(to) {
			continue
		}
		out = append(out, Slot{Start: s, End: e})
	}
	return out
}

func overlapsAny(s Slot, booked []models.BookedEvent) bool {
	for _, b := range booked {
		if s.Start.Before(b.EndTime) && b.StartTime.Before(s.End) {
			return true
		}
	}
	return false
}

// ContainsSlot reports whether the requested interval is one of the
// computed slots. Used to re-validate a booking request against current
// state before insert.
func ContainsSlot(slots []Slot, start, end time.Time) bool {
	for _, s := range slots {
		if s.Start.Equal(start) && s.End.Equal(end) {
			return true
		}
	}
	return false
}

// PartitionByDate groups events into upcoming and past relative to now,
// keyed by calendar date string for display.
func PartitionByDate(events []models.BookedEvent, now time.Time) (upcoming, past map[string][]models.BookedEvent) {
	upcoming = map[string][]models.BookedEvent{}
	past = map[string][]models.BookedEvent{}
	for _, ev := range events {
		key := ev.StartTime.UTC().Format("2006-01-02")
		switch {
		case ev.EndTime.Before(now):
			past[key] = append(past[key], ev)
		case ev.StartTime.After(now):
			upcoming[key] = append(upcoming[key], ev)
		}
	}
	return upcoming, past
}
