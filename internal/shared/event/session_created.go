package event

const SessionCreatedDestination string = "access_session_created"
const SessionCreatedDestinationConsumerAudit string = "access_session_created_audit"

type SessionCreatedMessage struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Provider  string `json:"provider"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}
