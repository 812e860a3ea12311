package event

const TokenCreatedDestination string = "access_token_created"
const TokenCreatedDestinationConsumerAudit string = "access_token_created_audit"

type TokenCreatedMessage struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id"`
	Type    string `json:"type"`
}
