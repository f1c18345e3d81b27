package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCivilTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "civil layout is read as UTC+8",
			input: "2026-03-11T19:00:00",
			want:  time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC),
		},
		{
			name:  "minutes only",
			input: "2026-03-11T19:00",
			want:  time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "2026-03-11T19:00:00.000",
			want:  time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC 3339 keeps its zone",
			input: "2026-03-11T19:00:00Z",
			want:  time.Date(2026, 3, 11, 19, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCivilTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
		})
	}
}

func TestCivilTime_JSON(t *testing.T) {
	ct := NewCivilTime(time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC))

	data, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-11T19:00:00"`, string(data))

	data, err = json.Marshal(CivilTime{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))

	var decoded struct {
		DateTime CivilTime `json:"dateTime"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"dateTime":null}`), &decoded))
	assert.True(t, decoded.DateTime.IsZero())
}

func TestCivilDateOf(t *testing.T) {
	// 16:30 UTC is already the next day in Taipei
	got := CivilDateOf(time.Date(2026, 3, 10, 16, 30, 0, 0, time.UTC))
	assert.Equal(t, "2026-03-11", got.Format("2006-01-02"))
}

func TestActivityDraft_SetCity(t *testing.T) {
	d := NewActivityDraft()
	d.City = "TAIPEI"
	d.District = "DAAN"

	d.SetCity("TAIPEI")
	assert.Equal(t, "DAAN", d.District)

	d.SetCity("NEW_TAIPEI")
	assert.Equal(t, "NEW_TAIPEI", d.City)
	assert.Empty(t, d.District)
}

func TestActivity_EffectiveFemalePriority(t *testing.T) {
	a := &Activity{MaxParticipants: 12, FemaleQuota: 4, FemalePriority: true}
	assert.True(t, a.EffectiveFemalePriority())

	a.FemaleQuota = 12
	assert.False(t, a.EffectiveFemalePriority())

	a.FemaleQuota = 0
	assert.False(t, a.EffectiveFemalePriority())

	a.FemaleQuota = -1
	assert.False(t, a.EffectiveFemalePriority())
}
