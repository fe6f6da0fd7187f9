package leave

import "time"

// SubmitLeaveRequest carries the leave application form. Fields are checked
// in the service in their fixed order, so binding stays shape-only.
type SubmitLeaveRequest struct {
	LeaveType string  `json:"leaveType"`
	LeaveDays float64 `json:"leaveDays"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    string  `json:"leaveReason"`
}

type ResolveLeaveRequest struct {
	Comment string `json:"comment"`
}

// ScheduleEditRequest is one tagged form edit for reconciliation preview.
type ScheduleEditRequest struct {
	Edited    string  `json:"edited" binding:"required,oneof=start_date end_date days"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Days      float64 `json:"days"`
}

type ScheduleResponse struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Days      float64 `json:"days"`
}

type RecordResponse struct {
	ID                string  `json:"id"`
	OwnerID           string  `json:"userId"`
	OwnerName         string  `json:"userName"`
	OwnerDept         string  `json:"userDept"`
	LeaveType         string  `json:"leaveType"`
	LeaveDays         float64 `json:"leaveDays"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	Reason            string  `json:"leaveReason"`
	Status            string  `json:"status"`
	AppliedAt         string  `json:"applyTime"`
	ResolvedAt        *string `json:"approvalTime,omitempty"`
	ResolverName      *string `json:"approver,omitempty"`
	ResolutionComment *string `json:"approvalComment,omitempty"`
}

func mapToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		OwnerName:    r.OwnerName,
		OwnerDept:    r.OwnerDept,
		LeaveType:    r.LeaveType,
		LeaveDays:    r.LeaveDays,
		StartDate:    r.StartDate.Format(dateLayout),
		EndDate:      r.EndDate.Format(dateLayout),
		Reason:       r.Reason,
		Status:       r.Status,
		AppliedAt:    r.AppliedAt.Format(time.RFC3339),
		ResolverName: r.ResolverName,
	}
	if r.ResolvedAt != nil {
		v := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	resp.ResolutionComment = r.ResolutionComment
	return resp
}

func mapToListResponse(records []Record) []RecordResponse {
	resp := make([]RecordResponse, len(records))
	for i, r := range records {
		resp[i] = mapToResponse(r)
	}
	return resp
}
