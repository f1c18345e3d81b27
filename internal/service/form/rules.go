package form

import (
	"strings"
	"time"

	"pickup-bff/internal/domain"
)

func checkTitle(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if strings.TrimSpace(d.Title) == "" {
		return newViolation(KindTitleRequired, FieldTitle)
	}
	if textLength(d.Title) > MaxTitleLength {
		return newViolation(KindTitleTooLong, FieldTitle)
	}
	return nil
}

func checkDescription(v *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if v.policy.DescriptionRequired && strings.TrimSpace(d.Description) == "" {
		return newViolation(KindDescriptionRequired, FieldDescription)
	}
	if textLength(d.Description) > MaxDescriptionLength {
		return newViolation(KindDescriptionTooLong, FieldDescription)
	}
	return nil
}

// checkDateTime compares UTC+8 calendar days, so an earlier hour today is still accepted
// unless the policy is strict about same-day times
func checkDateTime(v *Validator, d *domain.ActivityDraft, now time.Time) *Violation {
	if d.DateTime.IsZero() {
		return newViolation(KindDateTimeRequired, FieldDateTime)
	}
	day := d.DateTime.CivilDate()
	today := domain.CivilDateOf(now)
	if day.Before(today) {
		return newViolation(KindDateBeforeToday, FieldDateTime)
	}
	if v.policy.SameDayStrict && day.Equal(today) && d.DateTime.Before(now) {
		return newViolation(KindTimeAlreadyPassed, FieldDateTime)
	}
	return nil
}

func checkLocation(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if strings.TrimSpace(d.Location) == "" {
		return newViolation(KindLocationRequired, FieldLocation)
	}
	if textLength(d.Location) > MaxLocationLength {
		return newViolation(KindLocationTooLong, FieldLocation)
	}
	return nil
}

func checkCity(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if _, ok := domain.FindCity(d.City); !ok {
		return newViolation(KindCityRequired, FieldCity)
	}
	return nil
}

func checkDistrict(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if _, ok := domain.FindDistrict(d.City, d.District); !ok {
		return newViolation(KindDistrictRequired, FieldDistrict)
	}
	return nil
}

func checkDuration(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.Duration < MinDuration {
		return newViolation(KindDurationTooShort, FieldDuration)
	}
	return nil
}

func checkMaxParticipants(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.MaxParticipants < domain.MinParticipants || d.MaxParticipants > domain.MaxParticipants {
		return newViolation(KindParticipantsRange, FieldMaxParticipants)
	}
	return nil
}

func checkAmount(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.Amount < 0 {
		return newViolation(KindAmountNegative, FieldAmount)
	}
	return nil
}

func checkMaleQuotaRange(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.MaleQuota < domain.QuotaBarred {
		return newViolation(KindMaleQuotaBelowMin, FieldMaleQuota)
	}
	if d.MaleQuota > d.MaxParticipants {
		return newViolation(KindMaleQuotaAboveMax, FieldMaleQuota)
	}
	return nil
}

func checkFemaleQuotaRange(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.FemaleQuota < domain.QuotaBarred {
		return newViolation(KindFemaleQuotaBelowMin, FieldFemaleQuota)
	}
	if d.FemaleQuota > d.MaxParticipants {
		return newViolation(KindFemaleQuotaAboveMax, FieldFemaleQuota)
	}
	return nil
}

func checkBothBarred(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.MaleQuota == domain.QuotaBarred && d.FemaleQuota == domain.QuotaBarred {
		return newViolation(KindBothBarred, FieldMaleQuota)
	}
	return nil
}

func checkMaleBarred(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.MaleQuota == domain.QuotaBarred && d.FemaleQuota != domain.QuotaUnlimited {
		return newViolation(KindMaleBarredFemaleCap, FieldFemaleQuota)
	}
	return nil
}

func checkFemaleBarred(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.FemaleQuota == domain.QuotaBarred && d.MaleQuota != domain.QuotaUnlimited {
		return newViolation(KindFemaleBarredMaleCap, FieldMaleQuota)
	}
	return nil
}

func checkMaleUnlimitedFemaleFull(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.MaleQuota == domain.QuotaUnlimited && d.FemaleQuota == d.MaxParticipants && d.MaxParticipants > 0 {
		return newViolation(KindMaleOpenFemaleFull, FieldFemaleQuota)
	}
	return nil
}

func checkFemaleUnlimitedMaleFull(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.FemaleQuota == domain.QuotaUnlimited && d.MaleQuota == d.MaxParticipants && d.MaxParticipants > 0 {
		return newViolation(KindFemaleOpenMaleFull, FieldMaleQuota)
	}
	return nil
}

// checkQuotaSum leaves no slack seats once both genders are capped
func checkQuotaSum(_ *Validator, d *domain.ActivityDraft, _ time.Time) *Violation {
	if d.MaleQuota > 0 && d.FemaleQuota > 0 && d.MaleQuota+d.FemaleQuota != d.MaxParticipants {
		return newViolation(KindQuotaSumMismatch, FieldMaleQuota)
	}
	return nil
}
