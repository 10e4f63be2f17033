package audit

// Entry - запись журнала аудита.
type Entry struct {
	ID         int64  `json:"id"`
	OccurredAt string `json:"occurred_at"`
	Entity     string `json:"entity"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	Details    string `json:"details,omitempty"`
}
