package form

import (
	"math/rand"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-bff/internal/domain"
)

// 2026-03-10 12:00 in Taipei
var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, domain.Taipei)

func newTestValidator(policy Policy) *Validator {
	return NewValidator(policy).WithClock(func() time.Time { return fixedNow })
}

func validDraft() domain.ActivityDraft {
	return domain.ActivityDraft{
		Title:           "週三晚間排球",
		Description:     "歡迎一起來打球",
		DateTime:        domain.NewCivilTime(time.Date(2026, 3, 11, 19, 0, 0, 0, domain.Taipei)),
		Duration:        120,
		Location:        "大安運動中心",
		City:            "TAIPEI",
		District:        "DAAN",
		MaxParticipants: 12,
		Amount:          150,
		NetType:         domain.NetTypeMixed,
		MaleQuota:       0,
		FemaleQuota:     0,
	}
}

func TestValidate_ValidDraft(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	result := v.Validate(validDraft())
	assert.True(t, result.Valid)
	assert.Nil(t, result.Violation)
	assert.Empty(t, v.Violations(validDraft()))
}

func TestValidate_FirstViolatedRule(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *domain.ActivityDraft)
		wantKind  Kind
		wantField string
		wantFocus string
	}{
		{
			name:      "blank title",
			mutate:    func(d *domain.ActivityDraft) { d.Title = "   " },
			wantKind:  KindTitleRequired,
			wantField: FieldTitle,
			wantFocus: FieldTitle,
		},
		{
			name:      "title over 20 characters",
			mutate:    func(d *domain.ActivityDraft) { d.Title = strings.Repeat("排", 21) },
			wantKind:  KindTitleTooLong,
			wantField: FieldTitle,
			wantFocus: FieldTitle,
		},
		{
			name:      "missing description",
			mutate:    func(d *domain.ActivityDraft) { d.Description = "" },
			wantKind:  KindDescriptionRequired,
			wantField: FieldDescription,
		},
		{
			name:      "description over 500 characters",
			mutate:    func(d *domain.ActivityDraft) { d.Description = strings.Repeat("a", 501) },
			wantKind:  KindDescriptionTooLong,
			wantField: FieldDescription,
		},
		{
			name:      "no date selected",
			mutate:    func(d *domain.ActivityDraft) { d.DateTime = domain.CivilTime{} },
			wantKind:  KindDateTimeRequired,
			wantField: FieldDateTime,
		},
		{
			name: "yesterday",
			mutate: func(d *domain.ActivityDraft) {
				d.DateTime = domain.NewCivilTime(time.Date(2026, 3, 9, 23, 59, 0, 0, domain.Taipei))
			},
			wantKind:  KindDateBeforeToday,
			wantField: FieldDateTime,
		},
		{
			name:      "blank location",
			mutate:    func(d *domain.ActivityDraft) { d.Location = "" },
			wantKind:  KindLocationRequired,
			wantField: FieldLocation,
			wantFocus: FieldLocation,
		},
		{
			name:      "location over 20 characters",
			mutate:    func(d *domain.ActivityDraft) { d.Location = strings.Repeat("館", 21) },
			wantKind:  KindLocationTooLong,
			wantField: FieldLocation,
			wantFocus: FieldLocation,
		},
		{
			name:      "no city",
			mutate:    func(d *domain.ActivityDraft) { d.City = "" },
			wantKind:  KindCityRequired,
			wantField: FieldCity,
		},
		{
			name:      "district from another city",
			mutate:    func(d *domain.ActivityDraft) { d.District = "BANQIAO" },
			wantKind:  KindDistrictRequired,
			wantField: FieldDistrict,
		},
		{
			name:      "duration under 30 minutes",
			mutate:    func(d *domain.ActivityDraft) { d.Duration = 29 },
			wantKind:  KindDurationTooShort,
			wantField: FieldDuration,
		},
		{
			name:      "zero participants",
			mutate:    func(d *domain.ActivityDraft) { d.MaxParticipants = 0 },
			wantKind:  KindParticipantsRange,
			wantField: FieldMaxParticipants,
		},
		{
			name:      "101 participants",
			mutate:    func(d *domain.ActivityDraft) { d.MaxParticipants = 101 },
			wantKind:  KindParticipantsRange,
			wantField: FieldMaxParticipants,
		},
		{
			name:      "negative amount",
			mutate:    func(d *domain.ActivityDraft) { d.Amount = -1 },
			wantKind:  KindAmountNegative,
			wantField: FieldAmount,
			wantFocus: FieldAmount,
		},
		{
			name:      "male quota below -1",
			mutate:    func(d *domain.ActivityDraft) { d.MaleQuota = -2 },
			wantKind:  KindMaleQuotaBelowMin,
			wantField: FieldMaleQuota,
		},
		{
			name:      "female quota above capacity",
			mutate:    func(d *domain.ActivityDraft) { d.FemaleQuota = 13 },
			wantKind:  KindFemaleQuotaAboveMax,
			wantField: FieldFemaleQuota,
		},
		{
			name: "male range is reported before female range",
			mutate: func(d *domain.ActivityDraft) {
				d.MaleQuota = 13
				d.FemaleQuota = -5
			},
			wantKind:  KindMaleQuotaAboveMax,
			wantField: FieldMaleQuota,
		},
		{
			name: "title wins over every later rule",
			mutate: func(d *domain.ActivityDraft) {
				d.Title = ""
				d.Amount = -10
				d.MaleQuota = -1
				d.FemaleQuota = -1
			},
			wantKind:  KindTitleRequired,
			wantField: FieldTitle,
			wantFocus: FieldTitle,
		},
		{
			name: "amount wins over quota rules",
			mutate: func(d *domain.ActivityDraft) {
				d.Amount = -10
				d.MaleQuota = -1
				d.FemaleQuota = -1
			},
			wantKind:  KindAmountNegative,
			wantField: FieldAmount,
			wantFocus: FieldAmount,
		},
	}

	v := newTestValidator(DefaultPolicy())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			result := v.Validate(d)
			require.False(t, result.Valid)
			require.NotNil(t, result.Violation)
			assert.Equal(t, tt.wantKind, result.Violation.Kind)
			assert.Equal(t, tt.wantField, result.Violation.Field)
			assert.Equal(t, tt.wantFocus, result.Violation.Focus)
			assert.NotEmpty(t, result.Violation.Message)
		})
	}
}

func TestValidate_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		max       int
		male      int
		female    int
		wantValid bool
		wantKind  Kind
	}{
		{name: "female quota equals max while male unlimited", max: 10, male: 0, female: 10, wantKind: KindMaleOpenFemaleFull},
		{name: "male quota equals max while female unlimited", max: 10, male: 10, female: 0, wantKind: KindFemaleOpenMaleFull},
		{name: "split evenly", max: 12, male: 6, female: 6, wantValid: true},
		{name: "male barred female unlimited", max: 12, male: -1, female: 0, wantValid: true},
		{name: "female barred male unlimited", max: 12, male: 0, female: -1, wantValid: true},
		{name: "both barred", max: 12, male: -1, female: -1, wantKind: KindBothBarred},
		{name: "male barred female capped", max: 12, male: -1, female: 6, wantKind: KindMaleBarredFemaleCap},
		{name: "female barred male capped", max: 12, male: 6, female: -1, wantKind: KindFemaleBarredMaleCap},
		{name: "caps leave slack", max: 12, male: 4, female: 4, wantKind: KindQuotaSumMismatch},
		{name: "caps overflow", max: 12, male: 8, female: 8, wantKind: KindQuotaSumMismatch},
		{name: "one cap one unlimited", max: 12, male: 4, female: 0, wantValid: true},
		{name: "single seat unlimited both", max: 1, male: 0, female: 0, wantValid: true},
	}

	v := newTestValidator(DefaultPolicy())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.MaxParticipants = tt.max
			d.MaleQuota = tt.male
			d.FemaleQuota = tt.female

			result := v.Validate(d)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				require.NotNil(t, result.Violation)
				assert.Equal(t, tt.wantKind, result.Violation.Kind)
				assert.Empty(t, result.Violation.Focus)
			}

			assert.Equal(t, result, v.ValidateQuota(tt.male, tt.female, tt.max))
		})
	}
}

// quotaInvariants lists the quota rules independently of the validator, in reporting order
var quotaInvariants = []struct {
	kind     Kind
	violated func(m, f, max int) bool
}{
	{KindBothBarred, func(m, f, _ int) bool { return m == -1 && f == -1 }},
	{KindMaleBarredFemaleCap, func(m, f, _ int) bool { return m == -1 && f != 0 }},
	{KindFemaleBarredMaleCap, func(m, f, _ int) bool { return f == -1 && m != 0 }},
	{KindMaleOpenFemaleFull, func(m, f, max int) bool { return m == 0 && f == max && max > 0 }},
	{KindFemaleOpenMaleFull, func(m, f, max int) bool { return f == 0 && m == max && max > 0 }},
	{KindQuotaSumMismatch, func(m, f, max int) bool { return m > 0 && f > 0 && m+f != max }},
}

func TestValidateQuota_AllTriples(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	for max := 1; max <= 16; max++ {
		for m := -1; m <= max; m++ {
			for f := -1; f <= max; f++ {
				var violated []Kind
				for _, inv := range quotaInvariants {
					if inv.violated(m, f, max) {
						violated = append(violated, inv.kind)
					}
				}

				result := v.ValidateQuota(m, f, max)
				if len(violated) == 0 {
					assert.True(t, result.Valid, "max=%d male=%d female=%d", max, m, f)
					continue
				}
				require.False(t, result.Valid, "max=%d male=%d female=%d", max, m, f)
				assert.Equal(t, violated[0], result.Violation.Kind, "max=%d male=%d female=%d", max, m, f)
			}
		}
	}
}

func TestValidate_MatchesFirstOfAllViolations(t *testing.T) {
	v := newTestValidator(DefaultPolicy())
	rng := rand.New(rand.NewSource(42))

	mutations := []func(d *domain.ActivityDraft){
		func(d *domain.ActivityDraft) { d.Title = "" },
		func(d *domain.ActivityDraft) { d.Description = "" },
		func(d *domain.ActivityDraft) { d.DateTime = domain.CivilTime{} },
		func(d *domain.ActivityDraft) { d.Location = strings.Repeat("x", 30) },
		func(d *domain.ActivityDraft) { d.City = "NOWHERE" },
		func(d *domain.ActivityDraft) { d.District = "" },
		func(d *domain.ActivityDraft) { d.Duration = 10 },
		func(d *domain.ActivityDraft) { d.MaxParticipants = rng.Intn(120) },
		func(d *domain.ActivityDraft) { d.Amount = -rng.Intn(50) - 1 },
		func(d *domain.ActivityDraft) { d.MaleQuota = rng.Intn(16) - 2 },
		func(d *domain.ActivityDraft) { d.FemaleQuota = rng.Intn(16) - 2 },
	}

	for i := 0; i < 500; i++ {
		d := validDraft()
		for _, mutate := range mutations {
			if rng.Intn(3) == 0 {
				mutate(&d)
			}
		}

		all := v.Violations(d)
		result := v.Validate(d)
		if len(all) == 0 {
			assert.True(t, result.Valid)
			continue
		}
		require.False(t, result.Valid)
		assert.Equal(t, all[0], *result.Violation)

		// same draft, same answer
		assert.Equal(t, result, v.Validate(d))
	}
}

func TestValidate_DatePolicy(t *testing.T) {
	earlierToday := domain.NewCivilTime(time.Date(2026, 3, 10, 8, 0, 0, 0, domain.Taipei))
	laterToday := domain.NewCivilTime(time.Date(2026, 3, 10, 18, 0, 0, 0, domain.Taipei))

	t.Run("same day earlier time accepted by default", func(t *testing.T) {
		d := validDraft()
		d.DateTime = earlierToday
		assert.True(t, newTestValidator(DefaultPolicy()).Validate(d).Valid)
	})

	t.Run("same day earlier time rejected when strict", func(t *testing.T) {
		d := validDraft()
		d.DateTime = earlierToday
		policy := DefaultPolicy()
		policy.SameDayStrict = true

		result := newTestValidator(policy).Validate(d)
		require.False(t, result.Valid)
		assert.Equal(t, KindTimeAlreadyPassed, result.Violation.Kind)
	})

	t.Run("same day later time accepted when strict", func(t *testing.T) {
		d := validDraft()
		d.DateTime = laterToday
		policy := DefaultPolicy()
		policy.SameDayStrict = true
		assert.True(t, newTestValidator(policy).Validate(d).Valid)
	})

	t.Run("calendar day is taken in UTC+8", func(t *testing.T) {
		// 2026-03-10 17:00 UTC is already 2026-03-11 01:00 in Taipei
		v := NewValidator(DefaultPolicy()).WithClock(func() time.Time {
			return time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
		})
		d := validDraft()
		d.DateTime = domain.NewCivilTime(time.Date(2026, 3, 10, 23, 0, 0, 0, domain.Taipei))

		result := v.Validate(d)
		require.False(t, result.Valid)
		assert.Equal(t, KindDateBeforeToday, result.Violation.Kind)
	})
}

func TestValidate_DescriptionOptional(t *testing.T) {
	policy := DefaultPolicy()
	policy.DescriptionRequired = false
	v := newTestValidator(policy)

	d := validDraft()
	d.Description = ""
	assert.True(t, v.Validate(d).Valid)

	d.Description = strings.Repeat("長", 501)
	result := v.Validate(d)
	require.False(t, result.Valid)
	assert.Equal(t, KindDescriptionTooLong, result.Violation.Kind)
}

func TestValidate_TitleCountsCharactersNotBytes(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	d := validDraft()
	d.Title = strings.Repeat("排", 20)
	assert.True(t, v.Validate(d).Valid)
}

func TestValidate_LengthsCountWhatIsSent(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	d := validDraft()
	d.Title = " " + strings.Repeat("排", 20) + "  "
	require.True(t, v.Validate(d).Valid)
	assert.Equal(t, 20, utf8.RuneCountInString(BuildRequest(d).Title))

	d.Title = " " + strings.Repeat("排", 21) + " "
	assert.Equal(t, KindTitleTooLong, v.Validate(d).Violation.Kind)
}
