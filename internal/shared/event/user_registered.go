package event

const UserRegisteredDestination string = "access_user_registered"
const UserRegisteredDestinationConsumerAudit string = "access_user_registered_audit"

type UserRegisteredMessage struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
}
