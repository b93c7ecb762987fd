package events

import "time"

const (
	CaseLifecycleTopic     = "cabinet.case.lifecycle.v1"
	EmployeeLifecycleTopic = "cabinet.employee.lifecycle.v1"
)

const (
	AggregateCase     = "case"
	AggregateEmployee = "employee"
)

const (
	CaseCreated       = "case_created"
	CaseStatusChanged = "case_status_changed"
	CaseDeleted       = "case_deleted"

	EmployeeCreated = "employee_created"
	EmployeeUpdated = "employee_updated"
	EmployeeDeleted = "employee_deleted"
)

// LifecycleEvent is the payload published for every case and employee
// mutation. EventID doubles as the outbox row id.
type LifecycleEvent struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	AggregateType string            `json:"aggregate_type"`
	AggregateID   string            `json:"aggregate_id"`
	CompanyID     string            `json:"company_id"`
	ActorID       string            `json:"actor_id,omitempty"`
	RequestID     string            `json:"request_id,omitempty"`
	Summary       string            `json:"summary"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// TopicFor routes an aggregate type to its lifecycle topic.
func TopicFor(aggregateType string) string {
	switch aggregateType {
	case AggregateCase:
		return CaseLifecycleTopic
	case AggregateEmployee:
		return EmployeeLifecycleTopic
	default:
		return ""
	}
}
