package leave

import "time"

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// TypeAnnual is the leave type that draws down the owner's annual balance
// when approved.
const TypeAnnual = "年假"

// Default resolution comments used when the admin leaves the field empty.
const (
	defaultApproveComment = "审批通过"
	defaultRejectComment  = "审批拒绝"
)

// Record is one leave application in the `leaveRecords` collection. Owner
// name and department are captured at submit time and never re-synced with
// the directory.
type Record struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"userId"`
	OwnerName string  `json:"userName"`
	OwnerDept string  `json:"userDept"`
	LeaveType string  `json:"leaveType"`
	LeaveDays float64 `json:"leaveDays"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"leaveReason"`

	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applyTime"`

	ResolvedAt        *time.Time `json:"approvalTime"`
	ResolverName      *string    `json:"approver"`
	ResolutionComment *string    `json:"approvalComment"`
}
