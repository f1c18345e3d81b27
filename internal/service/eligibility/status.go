package eligibility

import (
	"time"

	"pickup-bff/internal/domain"
)

// Status of an activity as shown on its badge
type Status string

const (
	StatusExpired         Status = "expired"
	StatusFull            Status = "full"
	StatusRecruitingEmpty Status = "recruiting_empty"
	StatusAlmostFull      Status = "almost_full"
	StatusRecruiting      Status = "recruiting"
)

// Style of a badge
type Style string

const (
	StyleNeutral   Style = "neutral"
	StyleAlert     Style = "alert"
	StyleOutline   Style = "outline"
	StyleSecondary Style = "secondary"
	StyleDefault   Style = "default"
)

// AlmostFullRatio is the share of seats taken at which an activity is almost full
const AlmostFullRatio = 0.8

// Badge is the display status of an activity
type Badge struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Style  Style  `json:"style"`
}

var badges = map[Status]Badge{
	StatusExpired:         {Status: StatusExpired, Label: "已過期", Style: StyleNeutral},
	StatusFull:            {Status: StatusFull, Label: "已額滿", Style: StyleAlert},
	StatusRecruitingEmpty: {Status: StatusRecruitingEmpty, Label: "招募中", Style: StyleOutline},
	StatusAlmostFull:      {Status: StatusAlmostFull, Label: "即將額滿", Style: StyleSecondary},
	StatusRecruiting:      {Status: StatusRecruiting, Label: "招募中", Style: StyleDefault},
}

// BadgeFor derives the badge from an activity and its roster size. The checks are exclusive
// and run in order: expired, full, empty, almost full, recruiting.
func BadgeFor(a *domain.Activity, count int, now time.Time) Badge {
	switch {
	case IsPast(a, now):
		return badges[StatusExpired]
	case count >= a.MaxParticipants:
		return badges[StatusFull]
	case count == 0:
		return badges[StatusRecruitingEmpty]
	case float64(count) >= float64(a.MaxParticipants)*AlmostFullRatio:
		return badges[StatusAlmostFull]
	default:
		return badges[StatusRecruiting]
	}
}

// ListingBadge is BadgeFor with the participant count carried on the activity itself,
// for search results that come without a roster
func ListingBadge(a *domain.Activity, now time.Time) Badge {
	return BadgeFor(a, a.CurrentParticipants, now)
}

// IsPast compares instants, not calendar days
func IsPast(a *domain.Activity, now time.Time) bool {
	if a.DateTime.IsZero() {
		return false
	}
	return a.DateTime.Before(now)
}

// IsFullWithWaitingList reports whether the waiting list is also exhausted
func IsFullWithWaitingList(a *domain.Activity, count int) bool {
	return count >= a.MaxParticipants+domain.WaitingListCap
}
