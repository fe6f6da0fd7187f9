package directory

import "leavedesk/internal/shared/identity"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account is one entry of the `users` collection. JSON tags match the
// persisted schema, including the opaque comparison value under "password".
type Account struct {
	Username        string  `json:"username"`
	UserID          string  `json:"userId"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Secret          string  `json:"password"`
	Role            string  `json:"role"`
	AnnualLeave     float64 `json:"annualLeave"`
	UsedAnnualLeave float64 `json:"usedAnnualLeave"`
}

// View strips the secret; the only shape that ever leaves the service layer.
func (a Account) View() identity.View {
	return identity.View{
		Username:        a.Username,
		UserID:          a.UserID,
		Name:            a.Name,
		Department:      a.Department,
		Role:            a.Role,
		AnnualLeave:     a.AnnualLeave,
		UsedAnnualLeave: a.UsedAnnualLeave,
	}
}

const defaultAnnualLeave = 15

// defaultAccounts is the directory seeded on first run or when the persisted
// collection is unreadable.
func defaultAccounts() []Account {
	return []Account{
		{
			Username:        "admin",
			UserID:          "A001",
			Name:            "系统管理员",
			Department:      "管理部",
			Secret:          "admin123",
			Role:            RoleAdmin,
			AnnualLeave:     defaultAnnualLeave,
			UsedAnnualLeave: 0,
		},
		{
			Username:        "zhangsan",
			UserID:          "R001",
			Name:            "张三",
			Department:      "配送部",
			Secret:          "123456",
			Role:            RoleUser,
			AnnualLeave:     defaultAnnualLeave,
			UsedAnnualLeave: 2,
		},
		{
			Username:        "lisi",
			UserID:          "R002",
			Name:            "李四",
			Department:      "配送部",
			Secret:          "123456",
			Role:            RoleUser,
			AnnualLeave:     defaultAnnualLeave,
			UsedAnnualLeave: 5,
		},
	}
}
