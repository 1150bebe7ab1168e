package entity

import "time"

// Collections that publish change notifications.
const (
	CollectionSellerApplications = "seller_applications"
	CollectionShops              = "shops"
)

// ChangeType is the kind of row change carried by a notification.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent notifies subscribers that a row of a collection changed.
// It carries identifiers only; consumers re-read the store.
type ChangeEvent struct {
	Collection string     `json:"collection"`
	Type       ChangeType `json:"type"`
	RecordID   string     `json:"record_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// ChangeFilter selects the change types a subscriber wants. Empty means all.
type ChangeFilter []ChangeType

// Matches reports whether the filter accepts the change type.
func (f ChangeFilter) Matches(t ChangeType) bool {
	if len(f) == 0 {
		return true
	}
	for _, ft := range f {
		if ft == t {
			return true
		}
	}

	return false
}
