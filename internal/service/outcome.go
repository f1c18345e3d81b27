package service

import (
	stderrors "errors"
	"net/http"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/service/backend"
	"pickup-bff/internal/service/form"
	"pickup-bff/pkg/errors"
)

var successMessages = map[domain.Action]string{
	domain.ActionJoin:  "報名成功！",
	domain.ActionLeave: "已取消報名",
}

var fallbackMessages = map[domain.Action]string{
	domain.ActionJoin:  "報名失敗，請稍後再試",
	domain.ActionLeave: "取消報名失敗，請稍後再試",
}

var codeMessages = map[domain.ErrorCode]string{
	domain.CodeRejoinCooldown:   "退出後需等待 30 分鐘才能重新加入",
	domain.CodeUserNotFound:     "請先完成個人資料設定",
	domain.CodeActivityFull:     "活動已額滿",
	domain.CodeAlreadyJoined:    "您已經報名過此活動",
	domain.CodeNotJoined:        "您尚未報名此活動",
	domain.CodeAlreadyLeft:      "您已經取消報名此活動",
	domain.CodeActivityNotFound: "找不到此活動",
	domain.CodeActivityCanceled: "活動已取消",
	domain.CodePastDeadline:     "已超過報名截止時間",
}

const (
	messageLoginRequired = "請先登入"
	messageRateLimited   = "請求過於頻繁"
	messageTryLater      = "網路連線異常，請稍後再試"
)

// MapOutcome turns the result of a join or leave call into what the user should see.
// Nothing is retried; every error ends up as a message or a redirect.
func MapOutcome(action domain.Action, err error) domain.Outcome {
	out := domain.Outcome{Action: action}
	if err == nil {
		out.Kind = domain.OutcomeSuccess
		out.Message = successMessages[action]
		return out
	}

	switch backend.Classify(err) {
	case backend.ClassAuth:
		out.Kind = domain.OutcomeRedirect
		out.Code = domain.CodeUnauthorized
		out.Message = messageLoginRequired
		out.Redirect = domain.RouteLogin
		out.ClearSession = true
		return out
	case backend.ClassRateLimit:
		out.Kind = domain.OutcomeRedirect
		out.Code = domain.CodeForbidden
		out.Message = messageRateLimited
		out.Redirect = domain.RouteTooManyRequests
		out.RetryAfter = domain.RateLimitCooldownSeconds
		return out
	case backend.ClassTransport:
		out.Kind = domain.OutcomeError
		out.Message = messageTryLater
		return out
	}

	var apiErr *backend.APIError
	if !stderrors.As(err, &apiErr) {
		out.Kind = domain.OutcomeError
		out.Message = fallbackMessages[action]
		return out
	}

	out.Code = apiErr.Code
	out.Kind = domain.OutcomeError
	switch apiErr.Code {
	case domain.CodeRejoinCooldown:
		// a cool-down is not a failure of the request
		out.Kind = domain.OutcomeWarning
		out.Message = firstNonEmpty(apiErr.Message, codeMessages[apiErr.Code])
	case domain.CodeUserNotFound:
		out.Message = codeMessages[apiErr.Code]
		out.Redirect = domain.RouteProfile
	case domain.CodeActivityFull, domain.CodeAlreadyJoined, domain.CodeNotJoined, domain.CodeAlreadyLeft:
		out.Message = codeMessages[apiErr.Code]
	default:
		out.Message = firstNonEmpty(apiErr.Message, fallbackMessages[action])
	}
	return out
}

// toAppError maps a backend failure outside join/leave to the API error envelope
func toAppError(err error, fallback string) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	switch backend.Classify(err) {
	case backend.ClassAuth:
		return errors.NewAuthenticationError(messageLoginRequired)
	case backend.ClassRateLimit:
		return errors.NewRateLimitError(messageRateLimited)
	case backend.ClassTransport:
		return errors.NewExternalError(messageTryLater, err)
	case backend.ClassNotFound:
		return errors.NewNotFoundError(fallback)
	}

	var apiErr *backend.APIError
	if stderrors.As(err, &apiErr) {
		msg := firstNonEmpty(codeMessages[apiErr.Code], apiErr.Message, fallback)
		if apiErr.Status >= http.StatusInternalServerError {
			return errors.NewExternalError(msg, err)
		}
		appErr := errors.NewBusinessError(string(apiErr.Code), msg, apiErr.Status)
		appErr.Internal = err
		if apiErr.Code == domain.CodeUserNotFound {
			appErr.Redirect = domain.RouteProfile
		}
		return appErr
	}
	return errors.NewInternalError(fallback, err)
}

// violationError reports a failed form rule without touching the network
func violationError(result form.Result) *errors.AppError {
	v := result.Violation
	return errors.NewValidationError(v.Message, map[string]interface{}{
		"kind":  v.Kind,
		"field": v.Field,
		"focus": v.Focus,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
