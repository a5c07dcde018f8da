package events

type EventType string

const (
	// EventTypeAccountDataDeleted is triggered after a user's subtree was removed.
	EventTypeAccountDataDeleted EventType = "account_data_deleted"
)
