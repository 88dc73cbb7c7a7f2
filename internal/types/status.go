package types

// Status is the lifecycle of a record that is archived instead of deleted
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)
