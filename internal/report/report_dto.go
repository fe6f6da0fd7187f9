package report

type StatusBreakdown struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}

type DashboardResponse struct {
	EmployeeCount int             `json:"employeeCount"`
	Leaves        StatusBreakdown `json:"leaves"`
}

type SummaryResponse struct {
	UserID    string `json:"userId"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	// Remaining may go negative when manual edits push usage past the quota.
	AnnualLeave     float64 `json:"annualLeave"`
	UsedAnnualLeave float64 `json:"usedAnnualLeave"`
	Remaining       float64 `json:"remaining"`
	MonthlyRequests int     `json:"monthlyRequests"`
}
