package domain

import "time"

// Capacity limits shared by the form validator and the eligibility engine
const (
	MinParticipants = 1
	MaxParticipants = 100

	// WaitingListCap is how many roster entries may sit beyond maxParticipants
	WaitingListCap = 10
)

// Quota sentinels. Any positive value is a hard cap on joins from that gender.
const (
	QuotaBarred    = -1
	QuotaUnlimited = 0
)

// Gender of a user or participant
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// NetType is informational only and is not checked against quotas
type NetType string

const (
	NetTypeMen   NetType = "MEN"
	NetTypeWomen NetType = "WOMEN"
	NetTypeMixed NetType = "MIXED"
)

// Valid reports whether n is one of the known net types
func (n NetType) Valid() bool {
	return n == NetTypeMen || n == NetTypeWomen || n == NetTypeMixed
}

// Activity is the aggregate returned by GET /activities/{id}
type Activity struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	DateTime            CivilTime `json:"dateTime"`
	Duration            int       `json:"duration"`
	Location            string    `json:"location"`
	City                string    `json:"city"`
	District            string    `json:"district"`
	MaxParticipants     int       `json:"maxParticipants"`
	Amount              int       `json:"amount"`
	CurrentParticipants int       `json:"currentParticipants"`
	CreatedBy           string    `json:"createdBy"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	NetType             NetType   `json:"netType"`
	MaleCount           int       `json:"maleCount"`
	FemaleCount         int       `json:"femaleCount"`
	MaleQuota           int       `json:"maleQuota"`
	FemaleQuota         int       `json:"femaleQuota"`
	FemalePriority      bool      `json:"femalePriority"`
	RequireVerification bool      `json:"requireVerification"`
}

// QuotaFor returns the quota that applies to g. Unknown genders are never capped.
func (a *Activity) QuotaFor(g Gender) int {
	switch g {
	case GenderMale:
		return a.MaleQuota
	case GenderFemale:
		return a.FemaleQuota
	default:
		return QuotaUnlimited
	}
}

// EffectiveFemalePriority is the female priority flag as it may be stored
func (a *Activity) EffectiveFemalePriority() bool {
	return FemalePriorityAllowed(a.FemaleQuota, a.MaxParticipants) && a.FemalePriority
}

// FemalePriorityAllowed reports whether female priority means anything for the given quota.
// It does not when female joins are barred, unlimited, or capped at the full capacity.
func FemalePriorityAllowed(femaleQuota, maxParticipants int) bool {
	return !(femaleQuota <= 0 || femaleQuota == maxParticipants)
}

// End returns the scheduled end of the activity
func (a *Activity) End() time.Time {
	return a.DateTime.Add(time.Duration(a.Duration) * time.Minute)
}
