package services

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	EventStatusConfirmed = "confirmed"
	EventStatusTentative = "tentative"
	EventStatusCancelled = "cancelled"
)

// CalendarEvent is the normalized form of a VEVENT from an external feed.
type CalendarEvent struct {
	UID     string    `json:"uid"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Summary string    `json:"summary"`
	Status  string    `json:"status"`
}

// ParseFeed parses an iCal feed into normalized events. Parsing is lenient:
// unterminated blocks, blocks the parser rejects, and events missing a UID
// or either date are silently dropped rather than failing the whole feed.
// Pure text-to-structure transform, no I/O.
func ParseFeed(feedText string) []CalendarEvent {
	events := make([]CalendarEvent, 0)
	for _, block := range eventBlocks(feedText) {
		if ev, ok := parseEventBlock(block); ok {
			events = append(events, ev)
		}
	}
	return events
}

// eventBlocks extracts complete BEGIN:VEVENT..END:VEVENT blocks from the
// feed. Lines outside a block and blocks that never terminate are discarded.
func eventBlocks(feed string) []string {
	var blocks []string
	var current []string
	inEvent := false

	for _, raw := range strings.Split(feed, "\n") {
		line := strings.TrimRight(raw, "\r")
		switch {
		case line == "BEGIN:VEVENT":
			inEvent = true
			current = []string{line}
		case line == "END:VEVENT":
			if inEvent {
				current = append(current, line)
				blocks = append(blocks, strings.Join(current, "\r\n"))
			}
			inEvent = false
		default:
			if inEvent {
				current = append(current, line)
			}
		}
	}
	return blocks
}

// parseEventBlock runs a single VEVENT through the ical library inside a
// minimal VCALENDAR envelope, so one bad block cannot take down its
// neighbours.
func parseEventBlock(block string) (CalendarEvent, bool) {
	payload := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//calendar-sync//EN\r\n" + block + "\r\nEND:VCALENDAR\r\n"

	cal, err := ics.ParseCalendar(strings.NewReader(payload))
	if err != nil {
		return CalendarEvent{}, false
	}
	vevents := cal.Events()
	if len(vevents) == 0 {
		return CalendarEvent{}, false
	}
	ve := vevents[0]

	uidProp := ve.GetProperty(ics.ComponentPropertyUniqueId)
	startProp := ve.GetProperty(ics.ComponentPropertyDtStart)
	endProp := ve.GetProperty(ics.ComponentPropertyDtEnd)
	if uidProp == nil || uidProp.Value == "" ||
		startProp == nil || startProp.Value == "" ||
		endProp == nil || endProp.Value == "" {
		return CalendarEvent{}, false
	}

	ev := CalendarEvent{
		UID:    uidProp.Value,
		Start:  parseICalDate(startProp.Value),
		End:    parseICalDate(endProp.Value),
		Status: EventStatusConfirmed,
	}
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyStatus); p != nil {
		switch strings.ToLower(strings.TrimSpace(p.Value)) {
		case "tentative":
			ev.Status = EventStatusTentative
		case "cancelled":
			ev.Status = EventStatusCancelled
		}
	}
	return ev, true
}

// parseICalDate accepts the two date grammars feeds actually use: an 8-digit
// all-day date (20240501) and a UTC timestamp (20240501T140000Z). Anything
// else falls back to the current time; dropping the event entirely would
// lose bookings over a platform's formatting quirk.
func parseICalDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if len(v) == 8 {
		if t, err := time.Parse("20060102", v); err == nil {
			return t.UTC()
		}
	}
	if strings.HasSuffix(v, "Z") {
		if t, err := time.Parse("20060102T150405Z", v); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
