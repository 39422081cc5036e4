package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	LoginEvent         AuditEventType = "LOGIN"
	LoginFailureEvent  AuditEventType = "LOGIN_FAILED"
	OTPIssuedEvent     AuditEventType = "OTP_ISSUED"
	OTPVerifiedEvent   AuditEventType = "OTP_VERIFIED"
	OTPFailureEvent    AuditEventType = "OTP_VERIFICATION_FAILED"
	SocialLoginEvent   AuditEventType = "SOCIAL_LOGIN"
	TokenRefreshEvent  AuditEventType = "TOKEN_REFRESH"
	LogoutEvent        AuditEventType = "LOGOUT"
	ResetRequestEvent  AuditEventType = "PASSWORD_RESET_REQUESTED"
	ResetConsumedEvent AuditEventType = "PASSWORD_RESET_CONSUMED"
)

// AuditEvent represents an authentication lifecycle event
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}

// AuditLogger records authentication lifecycle events for operators
type AuditLogger interface {
	LogEvent(event *AuditEvent)
}

// NewAuditEvent creates an audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithUser sets the subject account fields
func (e *AuditEvent) WithUser(userID uint, email string) *AuditEvent {
	e.UserID = userID
	e.Email = email
	return e
}

// WithError marks the event failed and records the cause
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
