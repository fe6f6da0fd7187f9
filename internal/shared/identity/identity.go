// Package identity carries the public account view: an account with its
// secret stripped, the only account shape that crosses module boundaries.
// It sits below every module so sessions, tokens and handlers can share it.
package identity

type View struct {
	Username        string  `json:"username"`
	UserID          string  `json:"userId"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Role            string  `json:"role"`
	AnnualLeave     float64 `json:"annualLeave"`
	UsedAnnualLeave float64 `json:"usedAnnualLeave"`
}
