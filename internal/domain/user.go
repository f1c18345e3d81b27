package domain

import "time"

// Role of a user account
type Role string

const (
	RoleUser    Role = "USER"
	RoleSponsor Role = "SPONSOR"
	RoleAdmin   Role = "ADMIN"
)

// PositionNone is sent on join when the viewer has not chosen a position
const PositionNone = "NONE"

// User represents the signed-in viewer as returned by GET /users/me
type User struct {
	ID            string    `json:"id"`
	LineID        string    `json:"lineId,omitempty"`
	Role          Role      `json:"role,omitempty"`
	RealName      string    `json:"realName,omitempty"`
	Nickname      string    `json:"nickname"`
	Gender        Gender    `json:"gender,omitempty"`
	Position      string    `json:"position,omitempty"`
	Level         string    `json:"level,omitempty"`
	VolleyballAge *int      `json:"volleyballAge,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	City          string    `json:"city,omitempty"`
	District      string    `json:"district,omitempty"`
	Introduction  string    `json:"introduction,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	IsVerified    bool      `json:"isVerified"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// JoinPosition is the position posted with a join request
func (u *User) JoinPosition() string {
	if u == nil || u.Position == "" {
		return PositionNone
	}
	return u.Position
}

// ProfileUpdate is the body forwarded to PUT /users/{id}
type ProfileUpdate struct {
	RealName      *string `json:"realName,omitempty" validate:"omitempty,max=50"`
	Nickname      *string `json:"nickname,omitempty" validate:"omitempty,max=20"`
	Gender        *Gender `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
	Position      *string `json:"position,omitempty" validate:"omitempty,max=32"`
	Level         *string `json:"level,omitempty" validate:"omitempty,max=32"`
	VolleyballAge *int    `json:"volleyballAge,omitempty" validate:"omitempty,min=0,max=80"`
	Avatar        *string `json:"avatar,omitempty" validate:"omitempty,url"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=32"`
	District      *string `json:"district,omitempty" validate:"omitempty,max=32"`
	Introduction  *string `json:"introduction,omitempty" validate:"omitempty,max=500"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,twmobile"`
}

// SessionClaims are the claims carried by the backend's session token
type SessionClaims struct {
	Sub    string `json:"sub"`
	LineID string `json:"lineId"`
	Role   string `json:"role"`
	Exp    int64  `json:"exp"`
}
