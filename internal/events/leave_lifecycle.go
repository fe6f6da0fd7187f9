package events

import "time"

const LeaveLifecycleTopic = "leave.lifecycle.v1"

const (
	LeaveSubmitted = "leave.submitted"
	LeaveApproved  = "leave.approved"
	LeaveRejected  = "leave.rejected"
)

type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RecordID   string    `json:"record_id"`
	OwnerID    string    `json:"owner_id"`
	LeaveType  string    `json:"leave_type"`
	LeaveDays  float64   `json:"leave_days"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
