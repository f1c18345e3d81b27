package form

import "fmt"

// Kind identifies the rule a draft violated
type Kind string

const (
	KindTitleRequired       Kind = "TITLE_REQUIRED"
	KindTitleTooLong        Kind = "TITLE_TOO_LONG"
	KindDescriptionRequired Kind = "DESCRIPTION_REQUIRED"
	KindDescriptionTooLong  Kind = "DESCRIPTION_TOO_LONG"
	KindDateTimeRequired    Kind = "DATETIME_REQUIRED"
	KindDateBeforeToday     Kind = "DATE_BEFORE_TODAY"
	KindTimeAlreadyPassed   Kind = "TIME_ALREADY_PASSED"
	KindLocationRequired    Kind = "LOCATION_REQUIRED"
	KindLocationTooLong     Kind = "LOCATION_TOO_LONG"
	KindCityRequired        Kind = "CITY_REQUIRED"
	KindDistrictRequired    Kind = "DISTRICT_REQUIRED"
	KindDurationTooShort    Kind = "DURATION_TOO_SHORT"
	KindParticipantsRange   Kind = "MAX_PARTICIPANTS_RANGE"
	KindAmountNegative      Kind = "AMOUNT_NEGATIVE"
	KindMaleQuotaBelowMin   Kind = "MALE_QUOTA_BELOW_MIN"
	KindMaleQuotaAboveMax   Kind = "MALE_QUOTA_ABOVE_MAX"
	KindFemaleQuotaBelowMin Kind = "FEMALE_QUOTA_BELOW_MIN"
	KindFemaleQuotaAboveMax Kind = "FEMALE_QUOTA_ABOVE_MAX"
	KindBothBarred          Kind = "BOTH_GENDERS_BARRED"
	KindMaleBarredFemaleCap Kind = "MALE_BARRED_FEMALE_NOT_UNLIMITED"
	KindFemaleBarredMaleCap Kind = "FEMALE_BARRED_MALE_NOT_UNLIMITED"
	KindMaleOpenFemaleFull  Kind = "MALE_UNLIMITED_FEMALE_AT_MAX"
	KindFemaleOpenMaleFull  Kind = "FEMALE_UNLIMITED_MALE_AT_MAX"
	KindQuotaSumMismatch    Kind = "QUOTA_SUM_MISMATCH"
)

// Field names a violation can point at
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldDateTime        = "dateTime"
	FieldLocation        = "location"
	FieldCity            = "city"
	FieldDistrict        = "district"
	FieldDuration        = "duration"
	FieldMaxParticipants = "maxParticipants"
	FieldAmount          = "amount"
	FieldMaleQuota       = "maleQuota"
	FieldFemaleQuota     = "femaleQuota"
)

// focusable fields receive input focus when they fail
var focusable = map[string]bool{
	FieldTitle:    true,
	FieldLocation: true,
	FieldAmount:   true,
}

var messages = map[Kind]string{
	KindTitleRequired:       "請填寫活動標題",
	KindTitleTooLong:        fmt.Sprintf("活動標題不能超過 %d 字", MaxTitleLength),
	KindDescriptionRequired: "請填寫活動描述",
	KindDescriptionTooLong:  fmt.Sprintf("活動描述不能超過 %d 字", MaxDescriptionLength),
	KindDateTimeRequired:    "請選擇活動日期與時間",
	KindDateBeforeToday:     "活動日期不能早於今天",
	KindTimeAlreadyPassed:   "活動時間不能早於現在",
	KindLocationRequired:    "請填寫活動地點",
	KindLocationTooLong:     fmt.Sprintf("活動地點不能超過 %d 字", MaxLocationLength),
	KindCityRequired:        "請選擇城市",
	KindDistrictRequired:    "請選擇行政區",
	KindDurationTooShort:    fmt.Sprintf("持續時間至少需要 %d 分鐘", MinDuration),
	KindParticipantsRange:   "參與人數必須在 1-100 人之間",
	KindAmountNegative:      "費用不能是負數",
	KindMaleQuotaBelowMin:   "男生名額不能小於 -1",
	KindMaleQuotaAboveMax:   "男生名額不能超過人數上限",
	KindFemaleQuotaBelowMin: "女生名額不能小於 -1",
	KindFemaleQuotaAboveMax: "女生名額不能超過人數上限",
	KindBothBarred:          "不能同時限制男生和女生報名",
	KindMaleBarredFemaleCap: "限制男生報名時，女生名額必須設為 0 (不限制)",
	KindFemaleBarredMaleCap: "限制女生報名時，男生名額必須設為 0 (不限制)",
	KindMaleOpenFemaleFull:  "不限制男生名額時，女生名額不能等於人數上限",
	KindFemaleOpenMaleFull:  "不限制女生名額時，男生名額不能等於人數上限",
	KindQuotaSumMismatch:    "男女名額總和必須等於人數上限",
}

// Violation is one failed rule
type Violation struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Focus   string `json:"focus,omitempty"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

func newViolation(kind Kind, field string) *Violation {
	v := &Violation{Kind: kind, Field: field, Message: messages[kind]}
	if focusable[field] {
		v.Focus = field
	}
	return v
}

// Result of validating a draft
type Result struct {
	Valid     bool       `json:"valid"`
	Violation *Violation `json:"violation,omitempty"`
}
