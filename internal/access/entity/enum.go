package entity

type UserStatus int16

const (
	// UserStatusUnknown is mean status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusActive mean user is allowed to authenticate.
	UserStatusActive UserStatus = 1

	// UserStatusBlocked mean user is blocked from authenticating (policy/abuse/etc).
	UserStatusBlocked UserStatus = 2
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// TokenType distinguishes one-time token flows. The numeric values are part
// of the storage format for imported data and must not be renumbered.
type TokenType int16

const (
	TokenTypeUnknown      TokenType = 0
	TokenTypeVerification TokenType = 2
	TokenTypeRecovery     TokenType = 3
	TokenTypeInvite       TokenType = 4
	TokenTypeMagicURL     TokenType = 5
	TokenTypePhone        TokenType = 6
)

func TokenTypeFromString(str string) TokenType {
	switch str {
	case "verification":
		return TokenTypeVerification
	case "recovery":
		return TokenTypeRecovery
	case "invite":
		return TokenTypeInvite
	case "magic-url":
		return TokenTypeMagicURL
	case "phone":
		return TokenTypePhone
	default:
		return TokenTypeUnknown
	}
}

func (tt TokenType) String() string {
	switch tt {
	case TokenTypeVerification:
		return "verification"
	case TokenTypeRecovery:
		return "recovery"
	case TokenTypeInvite:
		return "invite"
	case TokenTypeMagicURL:
		return "magic-url"
	case TokenTypePhone:
		return "phone"
	default:
		return "unknown"
	}
}

type SessionProvider string

const (
	SessionProviderEmail     SessionProvider = "email"
	SessionProviderAnonymous SessionProvider = "anonymous"
	SessionProviderMagicURL  SessionProvider = "magic-url"
	SessionProviderPhone     SessionProvider = "phone"
	SessionProviderToken     SessionProvider = "token"
)
