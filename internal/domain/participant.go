package domain

import (
	"errors"
	"fmt"
	"time"
)

// Roster construction errors
var (
	ErrDuplicateParticipant = errors.New("roster: duplicate participant")
	ErrMultipleCaptains     = errors.New("roster: more than one captain")
	ErrRosterOrder          = errors.New("roster: confirmed entry listed after a waiting entry")
	ErrRosterCapacity       = errors.New("roster: capacity out of range")
)

// Participant is one entry of GET /activities/{id}/participants
type Participant struct {
	ID            string    `json:"id"`
	ActivityID    string    `json:"activityId"`
	UserID        string    `json:"userId"`
	IsCaptain     bool      `json:"isCaptain"`
	CreatedAt     time.Time `json:"createdAt"`
	Nickname      string    `json:"nickname"`
	RealName      string    `json:"realName,omitempty"`
	Gender        Gender    `json:"gender,omitempty"`
	Position      string    `json:"position,omitempty"`
	Level         string    `json:"level,omitempty"`
	VolleyballAge *int      `json:"volleyballAge,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	Introduction  string    `json:"introduction,omitempty"`

	// IsWaiting is only present when the backend states the seat explicitly
	IsWaiting *bool `json:"isWaiting,omitempty"`
}

// Seat is where an entry sits relative to the capacity
type Seat string

const (
	SeatConfirmed Seat = "confirmed"
	SeatWaiting   Seat = "waiting"
)

// RosterEntry is a participant together with its admission position
type RosterEntry struct {
	Participant
	Admission int  `json:"admission"` // 0-based index in admission-priority order
	Seat      Seat `json:"seat"`
}

// Roster is the participant list of one activity in admission-priority order.
//
// The backend returns participants already ordered by whatever quota and female-priority rule it
// applied at join time. Roster keeps that order and never re-sorts it: the first capacity entries
// are confirmed, the rest are waiting. NewRoster refuses input that visibly breaks this contract.
type Roster struct {
	entries  []RosterEntry
	capacity int
	byUser   map[string]int
}

// NewRoster builds a roster for an activity with the given capacity
func NewRoster(participants []Participant, capacity int) (*Roster, error) {
	if capacity < MinParticipants {
		return nil, fmt.Errorf("%w: %d", ErrRosterCapacity, capacity)
	}

	r := &Roster{
		entries:  make([]RosterEntry, 0, len(participants)),
		capacity: capacity,
		byUser:   make(map[string]int, len(participants)),
	}

	captains := 0
	sawWaiting := false
	for i, p := range participants {
		if _, dup := r.byUser[p.UserID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.UserID)
		}
		if p.IsCaptain {
			captains++
			if captains > 1 {
				return nil, ErrMultipleCaptains
			}
		}
		if p.IsWaiting != nil {
			if *p.IsWaiting {
				sawWaiting = true
			} else if sawWaiting {
				return nil, fmt.Errorf("%w: %s at %d", ErrRosterOrder, p.UserID, i)
			}
		}

		seat := SeatConfirmed
		if i >= capacity {
			seat = SeatWaiting
		}
		r.byUser[p.UserID] = i
		r.entries = append(r.entries, RosterEntry{Participant: p, Admission: i, Seat: seat})
	}

	return r, nil
}

// Len returns the number of roster entries, confirmed and waiting
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns a copy of all entries in admission order
func (r *Roster) Entries() []RosterEntry {
	if r == nil {
		return nil
	}
	out := make([]RosterEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Confirmed returns roster[0 : capacity)
func (r *Roster) Confirmed() []RosterEntry {
	if r == nil {
		return nil
	}
	n := min(r.capacity, len(r.entries))
	out := make([]RosterEntry, n)
	copy(out, r.entries[:n])
	return out
}

// Waiting returns roster[capacity : )
func (r *Roster) Waiting() []RosterEntry {
	if r == nil || len(r.entries) <= r.capacity {
		return []RosterEntry{}
	}
	out := make([]RosterEntry, len(r.entries)-r.capacity)
	copy(out, r.entries[r.capacity:])
	return out
}

// Find returns the entry for userID
func (r *Roster) Find(userID string) (RosterEntry, bool) {
	if r == nil || userID == "" {
		return RosterEntry{}, false
	}
	i, ok := r.byUser[userID]
	if !ok {
		return RosterEntry{}, false
	}
	return r.entries[i], true
}

// Captain returns the captain entry, if the backend marked one
func (r *Roster) Captain() (RosterEntry, bool) {
	if r == nil {
		return RosterEntry{}, false
	}
	for _, e := range r.entries {
		if e.IsCaptain {
			return e, true
		}
	}
	return RosterEntry{}, false
}

// ParticipantContact is what the captain sees about a roster member beyond the public profile
type ParticipantContact struct {
	ID    string `json:"id"`
	Phone string `json:"phone,omitempty"`
}
