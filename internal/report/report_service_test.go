package report_test

import (
	"context"
	"testing"
	"time"

	"leavedesk/internal/directory"
	"leavedesk/internal/leave"
	"leavedesk/internal/report"
	"leavedesk/internal/shared/kvstore"

	"github.com/stretchr/testify/assert"
)

type reportServiceDeps struct {
	accounts directory.Repository
	records  leave.Repository
	service  report.Service
}

func setupReportServiceTest(t *testing.T) *reportServiceDeps {
	t.Helper()

	store := kvstore.NewMemoryStore()
	accounts := directory.NewRepository(store)
	records := leave.NewRepository(store)
	return &reportServiceDeps{
		accounts: accounts,
		records:  records,
		service:  report.NewService(accounts, records),
	}
}

// record applies at noon so local-time bucketing never crosses a month edge.
func record(owner, status string, start time.Time) leave.Record {
	return leave.Record{
		ID:        owner + "-" + status + "-" + start.Format("2006-01-02"),
		OwnerID:   owner,
		LeaveType: "事假",
		LeaveDays: 1,
		StartDate: start,
		EndDate:   start,
		Status:    status,
		AppliedAt: start.Add(12 * time.Hour),
	}
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("counts employees and records by status", func(t *testing.T) {
		deps := setupReportServiceTest(t)

		june := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		err := deps.records.Replace(ctx, []leave.Record{
			record("R001", leave.StatusPending, june),
			record("R001", leave.StatusApproved, june.AddDate(0, 0, 1)),
			record("R002", leave.StatusApproved, june.AddDate(0, 0, 2)),
			record("R002", leave.StatusRejected, june.AddDate(0, 0, 3)),
			record("R002", leave.StatusCancelled, june.AddDate(0, 0, 4)),
		})
		assert.NoError(t, err)

		resp, err := deps.service.Dashboard(ctx)

		assert.NoError(t, err)
		// Two seeded non-admin accounts; the admin is not an employee.
		assert.Equal(t, 2, resp.EmployeeCount)
		assert.Equal(t, 5, resp.Leaves.Total)
		assert.Equal(t, 1, resp.Leaves.Pending)
		assert.Equal(t, 2, resp.Leaves.Approved)
		assert.Equal(t, 1, resp.Leaves.Rejected)
		assert.Equal(t, 1, resp.Leaves.Cancelled)

		sum := resp.Leaves.Pending + resp.Leaves.Approved + resp.Leaves.Rejected + resp.Leaves.Cancelled
		assert.Equal(t, resp.Leaves.Total, sum)
	})

	t.Run("empty collections", func(t *testing.T) {
		deps := setupReportServiceTest(t)

		resp, err := deps.service.Dashboard(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.EmployeeCount)
		assert.Equal(t, 0, resp.Leaves.Total)
	})
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("monthly count is scoped to owner and month", func(t *testing.T) {
		deps := setupReportServiceTest(t)

		err := deps.records.Replace(ctx, []leave.Record{
			record("R001", leave.StatusPending, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)),
			record("R001", leave.StatusApproved, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)),
			record("R001", leave.StatusApproved, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)),
			record("R002", leave.StatusApproved, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
		})
		assert.NoError(t, err)

		resp, err := deps.service.Summary(ctx, "R001", 2024, 6)

		assert.NoError(t, err)
		assert.Equal(t, "R001", resp.UserID)
		assert.Equal(t, 2, resp.MonthlyRequests)
		// Seeded zhangsan: 15 quota, 2 used.
		assert.Equal(t, 15.0, resp.AnnualLeave)
		assert.Equal(t, 2.0, resp.UsedAnnualLeave)
		assert.Equal(t, 13.0, resp.Remaining)
	})

	t.Run("remaining is not clamped at zero", func(t *testing.T) {
		deps := setupReportServiceTest(t)

		accounts, err := deps.accounts.All(ctx)
		assert.NoError(t, err)
		for i := range accounts {
			if accounts[i].UserID == "R001" {
				accounts[i].UsedAnnualLeave = 18
			}
		}
		assert.NoError(t, deps.accounts.Replace(ctx, accounts))

		resp, err := deps.service.Summary(ctx, "R001", 2024, 6)

		assert.NoError(t, err)
		assert.Equal(t, -3.0, resp.Remaining)
	})

	t.Run("negative unknown account", func(t *testing.T) {
		deps := setupReportServiceTest(t)

		_, err := deps.service.Summary(ctx, "R999", 2024, 6)
		assert.Error(t, err)
	})
}
