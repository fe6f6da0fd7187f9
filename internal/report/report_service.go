package report

import (
	"context"

	"leavedesk/internal/directory"
	"leavedesk/internal/leave"

	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	// Dashboard derives its figures from the live collections on every call.
	Dashboard(ctx context.Context) (DashboardResponse, error)
	// Summary re-reads the account so the balance reflects approvals made
	// after the caller logged in.
	Summary(ctx context.Context, userID string, year, month int) (SummaryResponse, error)
}

type service struct {
	accounts directory.Repository
	records  leave.Repository
	logger   *zap.Logger
}

func NewService(accounts directory.Repository, records leave.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{accounts: accounts, records: records, logger: l}
}

func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	accounts, err := s.accounts.All(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	records, err := s.records.All(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	resp := DashboardResponse{}
	for _, a := range accounts {
		if a.Role != directory.RoleAdmin {
			resp.EmployeeCount++
		}
	}

	resp.Leaves.Total = len(records)
	for _, rec := range records {
		switch rec.Status {
		case leave.StatusPending:
			resp.Leaves.Pending++
		case leave.StatusApproved:
			resp.Leaves.Approved++
		case leave.StatusRejected:
			resp.Leaves.Rejected++
		case leave.StatusCancelled:
			resp.Leaves.Cancelled++
		}
	}

	return resp, nil
}

func (s *service) Summary(ctx context.Context, userID string, year, month int) (SummaryResponse, error) {
	account, err := s.accounts.FindByUserID(ctx, userID)
	if err != nil {
		return SummaryResponse{}, err
	}

	records, err := s.records.FindByOwner(ctx, userID)
	if err != nil {
		return SummaryResponse{}, err
	}

	// Applications are bucketed by the local calendar month they were made
	// in, matching what the applicant sees on the form.
	monthly := 0
	for _, rec := range records {
		at := rec.AppliedAt.Local()
		if at.Year() == year && int(at.Month()) == month {
			monthly++
		}
	}

	return SummaryResponse{
		UserID:          account.UserID,
		Year:            year,
		Month:           month,
		AnnualLeave:     account.AnnualLeave,
		UsedAnnualLeave: account.UsedAnnualLeave,
		Remaining:       account.AnnualLeave - account.UsedAnnualLeave,
		MonthlyRequests: monthly,
	}, nil
}
