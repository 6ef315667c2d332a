package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/metrics"
	"portfolio-backend/internal/repository"
)

// AdminCredentials es la única identidad de administrador. Si PasswordHash
// está presente tiene prioridad sobre Password.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// AdminService autentica al administrador y expone el listado de submissions.
type AdminService struct {
	logger      *zap.Logger
	creds       AdminCredentials
	jwt         *JWTService
	submissions repository.SubmissionRepository
	dbTimeout   time.Duration
}

func NewAdminService(logger *zap.Logger, creds AdminCredentials, jwtSvc *JWTService, submissions repository.SubmissionRepository, dbTimeout time.Duration) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dbTimeout <= 0 {
		dbTimeout = defaultDBTimeout
	}
	return &AdminService{
		logger:      logger,
		creds:       creds,
		jwt:         jwtSvc,
		submissions: submissions,
		dbTimeout:   dbTimeout,
	}
}

func (s *AdminService) Login(_ context.Context, username, password string) (AdminToken, error) {
	if username == "" || password == "" {
		metrics.RecordAdminLogin(metrics.OutcomeInvalid)
		return AdminToken{}, ErrCredentialsRequired
	}
	if s.jwt == nil {
		return AdminToken{}, errors.New("jwt not configured")
	}

	// Se evalúan ambos campos siempre para no revelar cuál falló.
	userOK := s.creds.Username != "" && subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passOK := s.checkPassword(password)
	if !userOK || !passOK {
		metrics.RecordAdminLogin(metrics.OutcomeRejected)
		s.logger.Warn("admin login rejected")
		return AdminToken{}, ErrInvalidCredentials
	}

	token, err := s.jwt.IssueAdminToken()
	if err != nil {
		s.logger.Error("issue admin token failed", zap.Error(err))
		return AdminToken{}, fmt.Errorf("issue token: %w", err)
	}
	metrics.RecordAdminLogin(metrics.OutcomeSuccess)
	return token, nil
}

func (s *AdminService) checkPassword(password string) bool {
	if hash := strings.TrimSpace(s.creds.PasswordHash); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	if s.creds.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1
}

// ListSubmissions asume que el token ya fue validado por el middleware.
func (s *AdminService) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	if s.submissions == nil {
		return nil, errors.New("admin service not configured")
	}
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	submissions, err := s.submissions.ListNewestFirst(dbCtx)
	if err != nil {
		s.logger.Error("list submissions failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if submissions == nil {
		submissions = []domain.Submission{}
	}
	return submissions, nil
}
