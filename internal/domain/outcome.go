package domain

// ErrorCode is a business code returned in the backend error envelope
type ErrorCode string

const (
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeUserExists       ErrorCode = "USER_ALREADY_EXISTS"
	CodeInvalidUserData  ErrorCode = "INVALID_USER_DATA"
	CodeInvalidCreds     ErrorCode = "INVALID_CREDENTIALS"
	CodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	CodeActivityFull     ErrorCode = "ACTIVITY_FULL"
	CodeActivityCanceled ErrorCode = "ACTIVITY_CANCELLED"
	CodeAlreadyJoined    ErrorCode = "ACTIVITY_ALREADY_JOINED"
	CodeNotJoined        ErrorCode = "ACTIVITY_NOT_JOINED"
	CodePastDeadline     ErrorCode = "ACTIVITY_PAST_DEADLINE"
	CodeRejoinCooldown   ErrorCode = "ACTIVITY_WAIT_30M"
	CodeAlreadyLeft      ErrorCode = "ACTIVITY_LEAVED"
)

// Action is the roster operation an outcome belongs to
type Action string

const (
	ActionJoin  Action = "join"
	ActionLeave Action = "leave"
)

// OutcomeKind tells the client how to present an outcome
type OutcomeKind string

const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeWarning  OutcomeKind = "warning"
	OutcomeError    OutcomeKind = "error"
	OutcomeRedirect OutcomeKind = "redirect"
)

// Client routes an outcome may send the user to
const (
	RouteLogin           = "/login"
	RouteProfile         = "/profile"
	RouteTooManyRequests = "/too-many-requests"
)

// RateLimitCooldownSeconds is how long the cool-down page holds the user
const RateLimitCooldownSeconds = 60

// Outcome is the user-facing result of a join or leave attempt
type Outcome struct {
	Action       Action      `json:"action"`
	Kind         OutcomeKind `json:"kind"`
	Code         ErrorCode   `json:"code,omitempty"`
	Message      string      `json:"message"`
	Redirect     string      `json:"redirect,omitempty"`
	ClearSession bool        `json:"clearSession,omitempty"`
	RetryAfter   int         `json:"retryAfter,omitempty"`
}

// Succeeded reports whether the roster changed
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}
