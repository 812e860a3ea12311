package validator

// Validator validates a struct based on its field tags.
type Validator interface {
	Validate(in any) error
}

var _ Validator = (*V10Validator)(nil)
