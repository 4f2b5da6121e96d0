package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingHoursForDate(t *testing.T) {
	wh := WorkingHours{
		"monday": {{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}},
		"sunday": {},
	}

	monday := time.Date(2030, time.June, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	ranges := wh.ForDate(monday)
	require.Len(t, ranges, 2)
	assert.Equal(t, "09:00", ranges[0].Start)
	assert.Equal(t, "17:00", ranges[1].End)

	// Explicitly empty day and absent day both mean no work.
	assert.Empty(t, wh.ForDate(monday.AddDate(0, 0, 6))) // sunday
	assert.Empty(t, wh.ForDate(monday.AddDate(0, 0, 1))) // tuesday, absent
}

func TestWorkingHoursValidate(t *testing.T) {
	valid := []WorkingHours{
		{},
		{"monday": {{Start: "09:00", End: "17:00"}}},
		{"friday": {{Start: "08:30", End: "12:00"}, {Start: "12:00", End: "18:45"}}}, // touching is fine
		DefaultWorkingHours(),
	}
	for _, wh := range valid {
		assert.NoError(t, wh.Validate())
	}

	invalid := map[string]WorkingHours{
		"unknown weekday":   {"funday": {{Start: "09:00", End: "17:00"}}},
		"capitalized day":   {"Monday": {{Start: "09:00", End: "17:00"}}},
		"bad hour":          {"monday": {{Start: "25:00", End: "26:00"}}},
		"bad minute":        {"monday": {{Start: "09:61", End: "17:00"}}},
		"missing colon":     {"monday": {{Start: "0900", End: "1700"}}},
		"single digit min":  {"monday": {{Start: "09:0", End: "17:00"}}},
		"start after end":   {"monday": {{Start: "17:00", End: "09:00"}}},
		"zero length":       {"monday": {{Start: "09:00", End: "09:00"}}},
		"overlapping pair":  {"monday": {{Start: "09:00", End: "13:00"}, {Start: "12:00", End: "17:00"}}},
		"contained pair":    {"monday": {{Start: "09:00", End: "17:00"}, {Start: "10:00", End: "11:00"}}},
	}
	for name, wh := range invalid {
		assert.Error(t, wh.Validate(), name)
	}
}

func TestDefaultWorkingHours(t *testing.T) {
	wh := DefaultWorkingHours()

	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		require.Len(t, wh[day], 1, day)
		assert.Equal(t, TimeRange{Start: "09:00", End: "17:00"}, wh[day][0])
	}
	assert.Empty(t, wh["saturday"])
	assert.Empty(t, wh["sunday"])
}

func TestWorkingHoursRoundTrip(t *testing.T) {
	wh := WorkingHours{"monday": {{Start: "09:00", End: "17:00"}}}

	value, err := wh.Value()
	require.NoError(t, err)

	var decoded WorkingHours
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, wh, decoded)

	// Postgres hands JSONB back as either bytes or string.
	var fromString WorkingHours
	require.NoError(t, fromString.Scan(`{"monday":[{"start":"09:00","end":"17:00"}]}`))
	assert.Equal(t, wh, fromString)

	assert.Error(t, decoded.Scan(42))
}
