package directory

import (
	"context"
	"strings"
	"unicode/utf8"

	directoryerrors "leavedesk/internal/directory/errors"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/identity"
	"leavedesk/internal/shared/kvstore"

	"go.uber.org/zap"
)

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (AccountResponse, error)
	// List returns non-admin accounts only, the set shown on the admin
	// dashboard.
	List(ctx context.Context) ([]AccountResponse, error)
}

type service struct {
	repo   Repository
	guard  *kvstore.Guard
	logger *zap.Logger
}

// NewService wires the account operations. The guard is shared with every
// other service that mutates the same collections; nil gets a private one.
func NewService(repo Repository, guard *kvstore.Guard, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	if guard == nil {
		guard = kvstore.NewGuard()
	}
	return &service{repo: repo, guard: guard, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) CreateAccount(ctx context.Context, req CreateAccountRequest) (AccountResponse, error) {
	// One writer at a time: the duplicate check and the collection write
	// must not interleave with any other mutation of the collections.
	s.guard.Lock()
	defer s.guard.Unlock()

	if err := validateCreateRequest(req); err != nil {
		s.log(ctx).Warn("create account validation failed", zap.Error(err))
		return AccountResponse{}, err
	}

	accounts, err := s.repo.All(ctx)
	if err != nil {
		return AccountResponse{}, err
	}

	userID := strings.TrimSpace(req.UserID)
	username := strings.TrimSpace(req.Username)
	for _, a := range accounts {
		if a.UserID == userID {
			return AccountResponse{}, directoryerrors.ErrDuplicateUserID
		}
	}
	for _, a := range accounts {
		if a.Username == username {
			return AccountResponse{}, directoryerrors.ErrDuplicateUsername
		}
	}

	account := Account{
		Username:        username,
		UserID:          userID,
		Name:            username,
		Department:      strings.TrimSpace(req.Department),
		Secret:          req.Secret,
		Role:            RoleUser,
		AnnualLeave:     defaultAnnualLeave,
		UsedAnnualLeave: 0,
	}

	if err := s.repo.Replace(ctx, append(accounts, account)); err != nil {
		s.log(ctx).Error("create account persist failed", zap.Error(err))
		return AccountResponse{}, err
	}

	s.log(ctx).Info("account created",
		zap.String("user_id", account.UserID),
		zap.String("username", account.Username),
	)
	return mapToResponse(account.View()), nil
}

func (s *service) List(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]identity.View, 0, len(accounts))
	for _, a := range accounts {
		if a.Role != RoleAdmin {
			views = append(views, a.View())
		}
	}
	return mapToListResponse(views), nil
}

// validateCreateRequest runs the field checks in their fixed order; each
// failure carries its own reason.
func validateCreateRequest(req CreateAccountRequest) error {
	if utf8.RuneCountInString(strings.TrimSpace(req.Username)) < 2 {
		return directoryerrors.ErrUsernameTooShort
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.UserID)) < 2 {
		return directoryerrors.ErrUserIDTooShort
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Department)) < 2 {
		return directoryerrors.ErrDepartmentTooShort
	}
	if utf8.RuneCountInString(req.Secret) < 6 {
		return directoryerrors.ErrSecretTooShort
	}
	return nil
}
