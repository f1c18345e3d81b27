package form

import (
	"strings"
	"time"
	"unicode/utf8"

	"pickup-bff/internal/domain"
)

// Field limits of the activity form
const (
	MaxTitleLength       = 20
	MaxDescriptionLength = 500
	MaxLocationLength    = 20
	MinDuration          = 30
)

// Policy picks between the validator variants in use
type Policy struct {
	DescriptionRequired bool
	DurationFloor       int
	SameDayStrict       bool
}

// DefaultPolicy requires a description, floors duration at 1 while typing, and accepts any
// time on the current day
func DefaultPolicy() Policy {
	return Policy{DescriptionRequired: true, DurationFloor: 1}
}

// rule checks one concern and reports at most one violation
type rule func(v *Validator, d *domain.ActivityDraft, now time.Time) *Violation

// Validator decides whether an activity draft may be submitted.
// It holds no state between calls; the same draft at the same instant always yields the same result.
type Validator struct {
	policy Policy
	now    func() time.Time
	rules  []rule
}

// NewValidator creates a validator for the given policy
func NewValidator(policy Policy) *Validator {
	if policy.DurationFloor != 0 {
		policy.DurationFloor = 1
	}
	return &Validator{
		policy: policy,
		now:    time.Now,
		rules: append([]rule{
			checkTitle,
			checkDescription,
			checkDateTime,
			checkLocation,
			checkCity,
			checkDistrict,
			checkDuration,
			checkMaxParticipants,
			checkAmount,
		}, quotaRules...),
	}
}

// WithClock replaces the clock used for the date rules
func (v *Validator) WithClock(now func() time.Time) *Validator {
	clone := *v
	clone.now = now
	return &clone
}

// Validate returns the first violated rule, in the fixed order the form reports them
func (v *Validator) Validate(d domain.ActivityDraft) Result {
	now := v.now()
	for _, check := range v.rules {
		if violation := check(v, &d, now); violation != nil {
			return Result{Valid: false, Violation: violation}
		}
	}
	return Result{Valid: true}
}

// Violations returns every violated rule in order. The first entry is what Validate reports.
func (v *Validator) Violations(d domain.ActivityDraft) []Violation {
	now := v.now()
	var out []Violation
	for _, check := range v.rules {
		if violation := check(v, &d, now); violation != nil {
			out = append(out, *violation)
		}
	}
	return out
}

// ValidateQuota checks only the quota rules against a capacity
func (v *Validator) ValidateQuota(maleQuota, femaleQuota, maxParticipants int) Result {
	d := domain.ActivityDraft{MaleQuota: maleQuota, FemaleQuota: femaleQuota, MaxParticipants: maxParticipants}
	for _, check := range quotaRules {
		if violation := check(v, &d, time.Time{}); violation != nil {
			return Result{Valid: false, Violation: violation}
		}
	}
	return Result{Valid: true}
}

// quotaRules run after the field rules: ranges, then bars, then unlimited-against-full, then the sum
var quotaRules = []rule{
	checkMaleQuotaRange,
	checkFemaleQuotaRange,
	checkBothBarred,
	checkMaleBarred,
	checkFemaleBarred,
	checkMaleUnlimitedFemaleFull,
	checkFemaleUnlimitedMaleFull,
	checkQuotaSum,
}

func textLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
