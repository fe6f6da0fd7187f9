package leave

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"leavedesk/internal/directory"
	directoryerrors "leavedesk/internal/directory/errors"
	"leavedesk/internal/events"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/identity"
	"leavedesk/internal/shared/kvstore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor identity.View, req SubmitLeaveRequest) (RecordResponse, error)
	ListMine(ctx context.Context, ownerID string) ([]RecordResponse, error)
	ListAll(ctx context.Context) ([]RecordResponse, error)
	ListPending(ctx context.Context) ([]RecordResponse, error)
	Approve(ctx context.Context, resolver identity.View, id, comment string) (RecordResponse, error)
	Reject(ctx context.Context, resolver identity.View, id, comment string) (RecordResponse, error)
	// DeleteOwner removes the account and every record it owns in one
	// atomic commit.
	DeleteOwner(ctx context.Context, userID string) error
	ReconcileSchedule(req ScheduleEditRequest) (ScheduleResponse, error)
}

type service struct {
	store    kvstore.Store
	guard    *kvstore.Guard
	repo     Repository
	accounts directory.Repository
	events   EventPublisher
	logger   *zap.Logger
}

// NewService wires the leave operations. The guard serializes every mutation
// of the shared collections and must be the same instance the directory
// service holds; nil gets a private one.
func NewService(
	store kvstore.Store,
	guard *kvstore.Guard,
	repo Repository,
	accounts directory.Repository,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if guard == nil {
		guard = kvstore.NewGuard()
	}
	return &service{store: store, guard: guard, repo: repo, accounts: accounts, events: publisher, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Submit(ctx context.Context, actor identity.View, req SubmitLeaveRequest) (RecordResponse, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	startDate, endDate, err := validateSubmitRequest(req)
	if err != nil {
		s.log(ctx).Warn("submit leave validation failed",
			zap.String("owner_id", actor.UserID),
			zap.Error(err),
		)
		return RecordResponse{}, err
	}

	records, err := s.repo.All(ctx)
	if err != nil {
		return RecordResponse{}, err
	}

	rec := Record{
		ID:        uuid.New().String(),
		OwnerID:   actor.UserID,
		OwnerName: actor.Name,
		OwnerDept: actor.Department,
		LeaveType: strings.TrimSpace(req.LeaveType),
		LeaveDays: req.LeaveDays,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    StatusPending,
		AppliedAt: time.Now().UTC(),
	}

	if err := s.repo.Replace(ctx, append(records, rec)); err != nil {
		s.log(ctx).Error("submit leave persist failed", zap.Error(err))
		return RecordResponse{}, err
	}

	s.publish(ctx, events.LeaveSubmitted, rec)
	s.log(ctx).Info("leave submitted",
		zap.String("record_id", rec.ID),
		zap.String("owner_id", rec.OwnerID),
		zap.Float64("leave_days", rec.LeaveDays),
	)
	return mapToResponse(rec), nil
}

func (s *service) ListMine(ctx context.Context, ownerID string) ([]RecordResponse, error) {
	records, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sortByAppliedAtDesc(records)
	return mapToListResponse(records), nil
}

func (s *service) ListAll(ctx context.Context) ([]RecordResponse, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	sortByAppliedAtDesc(records)
	return mapToListResponse(records), nil
}

func (s *service) ListPending(ctx context.Context) ([]RecordResponse, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	pending := records[:0:0]
	for _, r := range records {
		if r.Status == StatusPending {
			pending = append(pending, r)
		}
	}
	sortByAppliedAtDesc(pending)
	return mapToListResponse(pending), nil
}

func (s *service) Approve(ctx context.Context, resolver identity.View, id, comment string) (RecordResponse, error) {
	return s.resolve(ctx, resolver, id, comment, StatusApproved)
}

func (s *service) Reject(ctx context.Context, resolver identity.View, id, comment string) (RecordResponse, error) {
	return s.resolve(ctx, resolver, id, comment, StatusRejected)
}

// resolve applies the single legal terminal transition. The record update
// and any balance update commit together, so a failed write leaves the
// original resolution untouched.
func (s *service) resolve(ctx context.Context, resolver identity.View, id, comment, targetStatus string) (RecordResponse, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	records, err := s.repo.All(ctx)
	if err != nil {
		return RecordResponse{}, err
	}

	idx := -1
	for i := range records {
		if records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RecordResponse{}, leaveerrors.ErrRecordNotFound
	}
	if records[idx].Status != StatusPending {
		s.log(ctx).Warn("leave transition rejected",
			zap.String("record_id", id),
			zap.String("from_status", records[idx].Status),
			zap.String("to_status", targetStatus),
		)
		return RecordResponse{}, leaveerrors.ErrInvalidTransition
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		if targetStatus == StatusApproved {
			comment = defaultApproveComment
		} else {
			comment = defaultRejectComment
		}
	}

	now := time.Now().UTC()
	rec := records[idx]
	rec.Status = targetStatus
	rec.ResolvedAt = &now
	rec.ResolverName = &resolver.Name
	rec.ResolutionComment = &comment
	records[idx] = rec

	entries := make([]kvstore.Entry, 0, 2)
	recordsEntry, err := s.repo.Entry(records)
	if err != nil {
		return RecordResponse{}, err
	}
	entries = append(entries, recordsEntry)

	if targetStatus == StatusApproved && rec.LeaveType == TypeAnnual {
		accountsEntry, err := s.chargeAnnualLeave(ctx, rec)
		if err != nil {
			return RecordResponse{}, err
		}
		entries = append(entries, accountsEntry)
	}

	if err := s.store.SaveAll(ctx, entries...); err != nil {
		s.log(ctx).Error("leave transition persist failed",
			zap.String("record_id", id),
			zap.Error(err),
		)
		return RecordResponse{}, persistenceErr(err)
	}

	eventType := events.LeaveApproved
	if targetStatus == StatusRejected {
		eventType = events.LeaveRejected
	}
	s.publish(ctx, eventType, rec)
	s.log(ctx).Info("leave resolved",
		zap.String("record_id", id),
		zap.String("status", targetStatus),
		zap.String("resolver", resolver.Name),
	)
	return mapToResponse(rec), nil
}

// chargeAnnualLeave stages the owner's balance update for an approved
// annual-type record, enforcing used <= quota at approval time.
func (s *service) chargeAnnualLeave(ctx context.Context, rec Record) (kvstore.Entry, error) {
	accounts, err := s.accounts.All(ctx)
	if err != nil {
		return kvstore.Entry{}, err
	}
	for i := range accounts {
		if accounts[i].UserID != rec.OwnerID {
			continue
		}
		if accounts[i].UsedAnnualLeave+rec.LeaveDays > accounts[i].AnnualLeave {
			return kvstore.Entry{}, leaveerrors.ErrQuotaExceeded
		}
		accounts[i].UsedAnnualLeave += rec.LeaveDays
		return s.accounts.Entry(accounts)
	}
	// Owner gone between submit and approval cannot happen under the
	// cascade, but a stale record must not block resolution.
	return s.accounts.Entry(accounts)
}

func (s *service) DeleteOwner(ctx context.Context, userID string) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	accounts, err := s.accounts.All(ctx)
	if err != nil {
		return err
	}
	remaining := accounts[:0:0]
	for _, a := range accounts {
		if a.UserID != userID {
			remaining = append(remaining, a)
		}
	}
	if len(remaining) == len(accounts) {
		return directoryerrors.ErrAccountNotFound
	}

	records, err := s.repo.All(ctx)
	if err != nil {
		return err
	}
	kept := records[:0:0]
	for _, r := range records {
		if r.OwnerID != userID {
			kept = append(kept, r)
		}
	}

	usersEntry, err := s.accounts.Entry(remaining)
	if err != nil {
		return err
	}
	recordsEntry, err := s.repo.Entry(kept)
	if err != nil {
		return err
	}

	if err := s.store.SaveAll(ctx, usersEntry, recordsEntry); err != nil {
		s.log(ctx).Error("cascade delete persist failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return persistenceErr(err)
	}

	s.log(ctx).Info("account deleted with records",
		zap.String("user_id", userID),
		zap.Int("records_removed", len(records)-len(kept)),
	)
	return nil
}

func (s *service) ReconcileSchedule(req ScheduleEditRequest) (ScheduleResponse, error) {
	edit := ScheduleEdit{Edited: req.Edited, Days: req.Days}

	var err error
	if req.StartDate != "" {
		if edit.StartDate, err = parseDate(req.StartDate); err != nil {
			return ScheduleResponse{}, err
		}
	}
	if req.EndDate != "" {
		if edit.EndDate, err = parseDate(req.EndDate); err != nil {
			return ScheduleResponse{}, err
		}
	}

	sched, err := Reconcile(edit)
	if err != nil {
		return ScheduleResponse{}, err
	}

	resp := ScheduleResponse{Days: sched.Days}
	if !sched.StartDate.IsZero() {
		resp.StartDate = sched.StartDate.Format(dateLayout)
	}
	if !sched.EndDate.IsZero() {
		resp.EndDate = sched.EndDate.Format(dateLayout)
	}
	return resp, nil
}

func (s *service) publish(ctx context.Context, eventType string, rec Record) {
	err := s.events.PublishLifecycle(ctx, events.LeaveLifecycleEvent{
		EventType:  eventType,
		RecordID:   rec.ID,
		OwnerID:    rec.OwnerID,
		LeaveType:  rec.LeaveType,
		LeaveDays:  rec.LeaveDays,
		Status:     rec.Status,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log(ctx).Warn("lifecycle event publish failed",
			zap.String("record_id", rec.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// validateSubmitRequest runs the submission checks in their fixed order;
// each failure carries its own reason.
func validateSubmitRequest(req SubmitLeaveRequest) (time.Time, time.Time, error) {
	if strings.TrimSpace(req.LeaveType) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrLeaveTypeRequired
	}
	if req.LeaveDays <= 0 {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveDays
	}
	if req.StartDate == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrStartDateRequired
	}
	if req.EndDate == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrEndDateRequired
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Reason)) < 10 {
		return time.Time{}, time.Time{}, leaveerrors.ErrReasonTooShort
	}
	if startDate.Before(today()) {
		return time.Time{}, time.Time{}, leaveerrors.ErrStartDateInPast
	}
	return startDate, endDate, nil
}

func sortByAppliedAtDesc(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AppliedAt.After(records[j].AppliedAt)
	})
}
