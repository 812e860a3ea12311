package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates int64 identifiers, ordered by creation time.
type NumberID interface {
	Generate() int64
}
