package directory

import "leavedesk/internal/shared/identity"

// CreateAccountRequest carries the admin account-creation form. Field checks
// run in the service so each rejection has its own ordered reason; binding
// only enforces JSON shape.
type CreateAccountRequest struct {
	Username   string `json:"username"`
	UserID     string `json:"userId"`
	Department string `json:"department"`
	Secret     string `json:"password"`
}

type AccountResponse struct {
	Username        string  `json:"username"`
	UserID          string  `json:"userId"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Role            string  `json:"role"`
	AnnualLeave     float64 `json:"annualLeave"`
	UsedAnnualLeave float64 `json:"usedAnnualLeave"`
}

func mapToResponse(v identity.View) AccountResponse {
	return AccountResponse{
		Username:        v.Username,
		UserID:          v.UserID,
		Name:            v.Name,
		Department:      v.Department,
		Role:            v.Role,
		AnnualLeave:     v.AnnualLeave,
		UsedAnnualLeave: v.UsedAnnualLeave,
	}
}

func mapToListResponse(views []identity.View) []AccountResponse {
	resp := make([]AccountResponse, len(views))
	for i, v := range views {
		resp[i] = mapToResponse(v)
	}
	return resp
}
