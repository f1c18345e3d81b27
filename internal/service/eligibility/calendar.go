package eligibility

import (
	"net/url"
	"time"
	"unicode/utf8"

	"pickup-bff/internal/domain"
)

const (
	calendarBaseURL       = "https://calendar.google.com/calendar/render"
	calendarStampLayout   = "20060102T150405Z"
	calendarMaxDetailsLen = 500

	calendarDefaultTitle    = "排球活動"
	calendarDefaultDuration = 60 * time.Minute
)

// CalendarURL builds an "add to Google Calendar" link spanning the activity's duration.
// An activity without a duration is shown as one hour.
func CalendarURL(a *domain.Activity) string {
	if a == nil || a.DateTime.IsZero() {
		return ""
	}

	details := a.Description
	if utf8.RuneCountInString(details) > calendarMaxDetailsLen {
		details = string([]rune(details)[:calendarMaxDetailsLen])
	}

	location := a.Location
	if city, ok := domain.FindCity(a.City); ok {
		location = city.Name
		if district, ok := domain.FindDistrict(a.City, a.District); ok {
			location += district.Name
		}
		location += " " + a.Location
	}

	title := a.Title
	if title == "" {
		title = calendarDefaultTitle
	}
	end := a.End()
	if a.Duration <= 0 {
		end = a.DateTime.Add(calendarDefaultDuration)
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("dates", a.DateTime.UTC().Format(calendarStampLayout)+"/"+end.UTC().Format(calendarStampLayout))
	if details != "" {
		q.Set("details", details)
	}
	if location != "" {
		q.Set("location", location)
	}
	return calendarBaseURL + "?" + q.Encode()
}
