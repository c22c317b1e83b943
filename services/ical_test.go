package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func TestParseFeedBasicEvent(t *testing.T) {
	events := ParseFeed(feed(
		"BEGIN:VEVENT",
		"UID:booking-1@airbnb.com",
		"DTSTART;VALUE=DATE:20240501",
		"DTEND;VALUE=DATE:20240505",
		"SUMMARY:Reserved",
		"END:VEVENT",
	))
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "booking-1@airbnb.com", ev.UID)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ev.Start)
	assert.Equal(t, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), ev.End)
	assert.Equal(t, "Reserved", ev.Summary)
	assert.Equal(t, EventStatusConfirmed, ev.Status)
}

func TestParseFeedUTCTimestamps(t *testing.T) {
	events := ParseFeed(feed(
		"BEGIN:VEVENT",
		"UID:ts-1",
		"DTSTART:20240501T140000Z",
		"DTEND:20240503T100000Z",
		"END:VEVENT",
	))
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC), events[0].End)
}

func TestParseFeedStatusCaseInsensitive(t *testing.T) {
	events := ParseFeed(feed(
		"BEGIN:VEVENT",
		"UID:a",
		"DTSTART;VALUE=DATE:20240501",
		"DTEND;VALUE=DATE:20240502",
		"STATUS:Cancelled",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:b",
		"DTSTART;VALUE=DATE:20240503",
		"DTEND;VALUE=DATE:20240504",
		"STATUS:TENTATIVE",
		"END:VEVENT",
	))
	require.Len(t, events, 2)
	assert.Equal(t, EventStatusCancelled, events[0].Status)
	assert.Equal(t, EventStatusTentative, events[1].Status)
}

func TestParseFeedDropsMalformedBlocks(t *testing.T) {
	events := ParseFeed(feed(
		// Missing UID: dropped.
		"BEGIN:VEVENT",
		"DTSTART;VALUE=DATE:20240501",
		"DTEND;VALUE=DATE:20240502",
		"END:VEVENT",
		// Missing DTEND: dropped.
		"BEGIN:VEVENT",
		"UID:no-end",
		"DTSTART;VALUE=DATE:20240501",
		"END:VEVENT",
		// Complete: kept.
		"BEGIN:VEVENT",
		"UID:ok",
		"DTSTART;VALUE=DATE:20240510",
		"DTEND;VALUE=DATE:20240512",
		"END:VEVENT",
		// Unterminated: dropped.
		"BEGIN:VEVENT",
		"UID:unterminated",
		"DTSTART;VALUE=DATE:20240601",
	))
	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].UID)
}

func TestParseFeedWeirdDateFallsBackToNow(t *testing.T) {
	before := time.Now().UTC().Add(-time.Minute)
	events := ParseFeed(feed(
		"BEGIN:VEVENT",
		"UID:weird",
		"DTSTART:05/01/2024",
		"DTEND;VALUE=DATE:20240505",
		"END:VEVENT",
	))
	require.Len(t, events, 1)
	after := time.Now().UTC().Add(time.Minute)
	assert.True(t, events[0].Start.After(before) && events[0].Start.Before(after),
		"unparseable date should fall back to now, got %v", events[0].Start)
}

func TestParseFeedEmptyAndGarbage(t *testing.T) {
	assert.Empty(t, ParseFeed(""))
	assert.Empty(t, ParseFeed("not an ical feed at all"))
}
