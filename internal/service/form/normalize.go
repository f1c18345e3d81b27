package form

import (
	"errors"
	"strconv"
	"strings"

	"pickup-bff/internal/domain"
)

// leadingInt reads an optional sign and the digits that follow it, ignoring anything after them.
// "45min" reads as 45; "abc" does not read at all. Digits beyond the int range read as the
// nearest representable int so the callers' clamps still apply.
func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// NormalizeDuration applies typed duration input. Non-numeric input keeps current; numbers
// below the policy floor are raised to it. The 30-minute minimum is left to Validate.
func (v *Validator) NormalizeDuration(raw string, current int) int {
	n, ok := leadingInt(raw)
	if !ok {
		return current
	}
	return max(v.policy.DurationFloor, n)
}

// ClampMaxParticipants applies typed capacity input, clamped to [1, 100]
func ClampMaxParticipants(raw string, current int) int {
	n, ok := leadingInt(raw)
	if !ok {
		return current
	}
	return min(max(n, domain.MinParticipants), domain.MaxParticipants)
}

// ClampQuota applies typed quota input, clamped to [-1, maxParticipants]
func ClampQuota(raw string, current, maxParticipants int) int {
	n, ok := leadingInt(raw)
	if !ok {
		return current
	}
	return min(max(n, domain.QuotaBarred), maxParticipants)
}

// FieldInput is one raw keystroke-level edit of a numeric form field
type FieldInput struct {
	Field string `json:"field" validate:"required,oneof=duration maxParticipants maleQuota femaleQuota amount"`
	Value string `json:"value"`
}

// Apply normalizes a numeric field edit into the draft and returns the updated draft
func (v *Validator) Apply(d domain.ActivityDraft, in FieldInput) domain.ActivityDraft {
	switch in.Field {
	case FieldDuration:
		d.Duration = v.NormalizeDuration(in.Value, d.Duration)
	case FieldMaxParticipants:
		d.MaxParticipants = ClampMaxParticipants(in.Value, d.MaxParticipants)
	case FieldMaleQuota:
		d.MaleQuota = ClampQuota(in.Value, d.MaleQuota, d.MaxParticipants)
	case FieldFemaleQuota:
		d.FemaleQuota = ClampQuota(in.Value, d.FemaleQuota, d.MaxParticipants)
	case FieldAmount:
		if n, ok := leadingInt(in.Value); ok {
			d.Amount = n
		}
	}
	return d
}

// RepairQuotasForCreate resolves the transient barred state the live form allows.
// It is applied to new activities only.
func RepairQuotasForCreate(d domain.ActivityDraft) domain.ActivityDraft {
	if d.MaleQuota == domain.QuotaBarred {
		d.FemaleQuota = domain.QuotaUnlimited
	} else if d.FemaleQuota == domain.QuotaBarred {
		d.MaleQuota = domain.QuotaUnlimited
	}
	return d
}

// BuildRequest turns a draft into the backend payload. femalePriority is sent as derived from the quota.
func BuildRequest(d domain.ActivityDraft) domain.ActivityRequest {
	return domain.ActivityRequest{
		Title:               strings.TrimSpace(d.Title),
		Description:         strings.TrimSpace(d.Description),
		DateTime:            d.DateTime,
		Duration:            d.Duration,
		Location:            strings.TrimSpace(d.Location),
		MaxParticipants:     d.MaxParticipants,
		Amount:              d.Amount,
		City:                d.City,
		District:            d.District,
		NetType:             d.NetType,
		MaleQuota:           d.MaleQuota,
		FemaleQuota:         d.FemaleQuota,
		FemalePriority:      d.EffectiveFemalePriority(),
		RequireVerification: d.RequireVerification,
	}
}

// PrepareCreate validates a new activity and builds its payload
func (v *Validator) PrepareCreate(d domain.ActivityDraft) (domain.ActivityRequest, Result) {
	result := v.Validate(d)
	if !result.Valid {
		return domain.ActivityRequest{}, result
	}
	return BuildRequest(RepairQuotasForCreate(d)), result
}

// PrepareUpdate validates an edited activity and builds its payload. No quota repair happens on edit.
func (v *Validator) PrepareUpdate(d domain.ActivityDraft) (domain.ActivityRequest, Result) {
	result := v.Validate(d)
	if !result.Valid {
		return domain.ActivityRequest{}, result
	}
	return BuildRequest(d), result
}
