package domain

import "time"

// ActivityDraft is the activity form as the user is editing it.
//
// FemalePriority holds what the user asked for; the value that is stored and sent is derived
// from it with EffectiveFemalePriority, so quota edits never need to reset it.
type ActivityDraft struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	DateTime            CivilTime `json:"dateTime"`
	Duration            int       `json:"duration"`
	Location            string    `json:"location"`
	City                string    `json:"city"`
	District            string    `json:"district"`
	MaxParticipants     int       `json:"maxParticipants"`
	Amount              int       `json:"amount"`
	NetType             NetType   `json:"netType"`
	MaleQuota           int       `json:"maleQuota"`
	FemaleQuota         int       `json:"femaleQuota"`
	FemalePriority      bool      `json:"femalePriority"`
	RequireVerification bool      `json:"requireVerification"`
}

// NewActivityDraft returns the defaults a blank create form starts with
func NewActivityDraft() ActivityDraft {
	return ActivityDraft{
		Duration:        120,
		MaxParticipants: 12,
		NetType:         NetTypeMixed,
		MaleQuota:       QuotaUnlimited,
		FemaleQuota:     QuotaUnlimited,
	}
}

// DraftFromActivity loads an existing activity into the edit form
func DraftFromActivity(a *Activity) ActivityDraft {
	return ActivityDraft{
		Title:               a.Title,
		Description:         a.Description,
		DateTime:            a.DateTime,
		Duration:            a.Duration,
		Location:            a.Location,
		City:                a.City,
		District:            a.District,
		MaxParticipants:     a.MaxParticipants,
		Amount:              a.Amount,
		NetType:             a.NetType,
		MaleQuota:           a.MaleQuota,
		FemaleQuota:         a.FemaleQuota,
		FemalePriority:      a.FemalePriority,
		RequireVerification: a.RequireVerification,
	}
}

// EffectiveFemalePriority is the femalePriority value derived from the current quota
func (d ActivityDraft) EffectiveFemalePriority() bool {
	return d.FemalePriority && FemalePriorityAllowed(d.FemaleQuota, d.MaxParticipants)
}

// SetCity changes the city and drops a district that does not belong to it
func (d *ActivityDraft) SetCity(code string) {
	d.City = code
	if _, ok := FindDistrict(code, d.District); !ok {
		d.District = ""
	}
}

// ActivityRequest is the body of POST /activities and PUT /activities/{id}
type ActivityRequest struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	DateTime            CivilTime `json:"dateTime"`
	Duration            int       `json:"duration"`
	Location            string    `json:"location"`
	MaxParticipants     int       `json:"maxParticipants"`
	Amount              int       `json:"amount"`
	City                string    `json:"city"`
	District            string    `json:"district"`
	NetType             NetType   `json:"netType"`
	MaleQuota           int       `json:"maleQuota"`
	FemaleQuota         int       `json:"femaleQuota"`
	FemalePriority      bool      `json:"femalePriority"`
	RequireVerification bool      `json:"requireVerification"`
}

// SavedDraft is a create form persisted for later
type SavedDraft struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Draft     ActivityDraft `json:"draft"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
