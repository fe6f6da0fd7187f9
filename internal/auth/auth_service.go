package auth

import (
	"context"
	"os"
	"strconv"
	"time"

	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/auth/session"
	"leavedesk/internal/directory"
	"leavedesk/internal/rbac"
	"leavedesk/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	persistentSessionTTL = 7 * 24 * time.Hour
	volatileSessionTTL   = 24 * time.Hour
	defaultLoginDelay    = 1000 * time.Millisecond
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout tears down the session. An already absent session is a no-op.
	Logout(ctx context.Context, sessionID string) error
	// Me re-reads the account so quota changes since login are visible.
	Me(ctx context.Context, userID string) (MeResponse, error)
}

type service struct {
	accounts   directory.Repository
	sessions   session.Store
	logger     *zap.Logger
	loginDelay time.Duration
}

func NewService(accounts directory.Repository, sessions session.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		accounts:   accounts,
		sessions:   sessions,
		logger:     l,
		loginDelay: loginDelayFromEnv(),
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// loginDelayFromEnv reads LOGIN_DELAY_MS; the fixed pause keeps credential
// probing slow and the response time independent of why a login failed.
func loginDelayFromEnv() time.Duration {
	raw := os.Getenv("LOGIN_DELAY_MS")
	if raw == "" {
		return defaultLoginDelay
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return defaultLoginDelay
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	time.Sleep(s.loginDelay)

	accounts, err := s.accounts.All(ctx)
	if err != nil {
		return LoginResponse{}, err
	}

	var match *directory.Account
	for i := range accounts {
		a := &accounts[i]
		if (a.Username == req.Identifier || a.UserID == req.Identifier) && a.Secret == req.Password {
			match = a
			break
		}
	}
	if match == nil {
		s.log(ctx).Info("login rejected", zap.String("identifier", req.Identifier))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	ttl := volatileSessionTTL
	if req.RememberMe {
		ttl = persistentSessionTTL
	}

	jti := uuid.New().String()
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     match.UserID,
		"role":        match.Role,
		"jti":         jti,
		"remember_me": req.RememberMe,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return LoginResponse{}, err
	}

	view := match.View()
	sess := session.Session{User: view, LoginTime: now, RememberMe: req.RememberMe}
	if err := s.sessions.Put(ctx, jti, sess, req.RememberMe, ttl); err != nil {
		return LoginResponse{}, err
	}

	s.log(ctx).Info("login succeeded",
		zap.String("user_id", view.UserID),
		zap.String("role", view.Role),
		zap.Bool("remember_me", req.RememberMe),
	)

	return LoginResponse{
		Token:      signed,
		User:       view,
		RedirectTo: rbac.HomeFor(view.Role),
		ExpiresIn:  int64(ttl.Seconds()),
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *service) Me(ctx context.Context, userID string) (MeResponse, error) {
	account, err := s.accounts.FindByUserID(ctx, userID)
	if err != nil {
		return MeResponse{}, err
	}
	return MeResponse{User: account.View()}, nil
}
