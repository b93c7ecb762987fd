package activity

type ListActivityQuery struct {
	Limit         int
	AggregateType string
}

type ActivityResponse struct {
	ID            string `json:"id"`
	EventType     string `json:"event_type"`
	AggregateType string `json:"aggregate_type"`
	AggregateID   string `json:"aggregate_id"`
	ActorID       string `json:"actor_id,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
	Summary       string `json:"summary"`
	OccurredAt    string `json:"occurred_at"`
}
