package eligibility

import (
	"time"

	"pickup-bff/internal/domain"
)

// Relationship of the viewer to an activity
type Relationship string

const (
	RelationCreator     Relationship = "creator"
	RelationParticipant Relationship = "participant"
	RelationWaiting     Relationship = "waiting"
	RelationCanJoin     Relationship = "can_join"
	RelationWaitlist    Relationship = "waitlist"
	RelationFull        Relationship = "full"
	RelationPast        Relationship = "past"
	RelationIneligible  Relationship = "ineligible"
	RelationAnonymous   Relationship = "anonymous"
)

// Ineligibility reasons
const (
	ReasonGenderBarred         = "gender_barred"
	ReasonVerificationRequired = "verification_required"
)

// Join button labels
const (
	LabelJoin         = "我要報名"
	LabelJoinWaitlist = "我要候補"
)

// JoinAction describes the join button for the viewer
type JoinAction struct {
	Visible  bool   `json:"visible"`
	Label    string `json:"label,omitempty"`
	Waitlist bool   `json:"waitlist"`
}

// View is everything the activity page derives from (activity, roster, viewer)
type View struct {
	Activity              *domain.Activity     `json:"activity"`
	Badge                 Badge                `json:"badge"`
	IsParticipant         bool                 `json:"isParticipant"`
	IsCreator             bool                 `json:"isCreator"`
	IsPastActivity        bool                 `json:"isPastActivity"`
	IsFullWithWaitingList bool                 `json:"isFullWithWaitingList"`
	Relationship          Relationship         `json:"relationship"`
	IneligibleReason      string               `json:"ineligibleReason,omitempty"`
	ViewerSeat            *domain.RosterEntry  `json:"viewerSeat,omitempty"`
	Captain               *domain.RosterEntry  `json:"captain,omitempty"`
	Confirmed             []domain.RosterEntry `json:"confirmed"`
	Waiting               []domain.RosterEntry `json:"waiting"`
	Join                  JoinAction           `json:"join"`
	CanLeave              bool                 `json:"canLeave"`
	CanEdit               bool                 `json:"canEdit"`
	CalendarURL           string               `json:"calendarUrl,omitempty"`
}

// Evaluate derives the view. It does not re-evaluate quotas: the roster order from the backend
// decides who is confirmed and who is waiting. viewer may be nil.
func Evaluate(a *domain.Activity, roster *domain.Roster, viewer *domain.User, now time.Time) View {
	count := roster.Len()

	// the stored flag is what was asked for; show only what the quota allows
	shown := *a
	shown.FemalePriority = a.EffectiveFemalePriority()

	v := View{
		Activity:              &shown,
		Badge:                 BadgeFor(a, count, now),
		IsPastActivity:        IsPast(a, now),
		IsFullWithWaitingList: IsFullWithWaitingList(a, count),
		Confirmed:             roster.Confirmed(),
		Waiting:               roster.Waiting(),
		CalendarURL:           CalendarURL(a),
	}
	if v.Confirmed == nil {
		v.Confirmed = []domain.RosterEntry{}
	}
	if captain, ok := roster.Captain(); ok {
		v.Captain = &captain
	}

	if viewer == nil || viewer.ID == "" {
		v.Relationship = RelationAnonymous
		return v
	}

	v.IsCreator = a.CreatedBy == viewer.ID
	if entry, ok := roster.Find(viewer.ID); ok {
		v.IsParticipant = true
		v.ViewerSeat = &entry
	}

	switch {
	case v.IsCreator:
		v.Relationship = RelationCreator
		v.CanEdit = true
		return v
	case v.IsPastActivity:
		v.Relationship = RelationPast
		return v
	case v.IsParticipant:
		v.Relationship = RelationParticipant
		if v.ViewerSeat.Seat == domain.SeatWaiting {
			v.Relationship = RelationWaiting
		}
		v.CanLeave = true
		return v
	case v.IsFullWithWaitingList:
		v.Relationship = RelationFull
		return v
	}

	if reason := ineligibleReason(a, viewer); reason != "" {
		v.Relationship = RelationIneligible
		v.IneligibleReason = reason
		return v
	}

	v.Join = JoinAction{Visible: true, Label: LabelJoin}
	v.Relationship = RelationCanJoin
	if count >= a.MaxParticipants {
		v.Join = JoinAction{Visible: true, Label: LabelJoinWaitlist, Waitlist: true}
		v.Relationship = RelationWaitlist
	}
	return v
}

// ineligibleReason is informational; the backend decides at join time
func ineligibleReason(a *domain.Activity, viewer *domain.User) string {
	if viewer.Gender != "" && a.QuotaFor(viewer.Gender) == domain.QuotaBarred {
		return ReasonGenderBarred
	}
	if a.RequireVerification && !viewer.IsVerified {
		return ReasonVerificationRequired
	}
	return ""
}
