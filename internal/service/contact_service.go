package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/email"
	"portfolio-backend/internal/metrics"
	"portfolio-backend/internal/repository"
)

const (
	defaultDBTimeout   = 5 * time.Second
	defaultMailTimeout = 10 * time.Second
)

// ContactService coordina el alta de submissions y el acuse de recibo por email.
type ContactService struct {
	logger      *zap.Logger
	submissions repository.SubmissionRepository
	emailSender email.Sender
	limiter     RateLimiter
	dbTimeout   time.Duration
	mailTimeout time.Duration
	now         func() time.Time
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
	// ClientKey identifica al remitente para el rate limit; vacío lo desactiva.
	ClientKey string
}

type ContactOption func(*ContactService)

// WithRateLimiter activa el límite de envíos por cliente.
func WithRateLimiter(l RateLimiter) ContactOption {
	return func(s *ContactService) { s.limiter = l }
}

// WithTimeouts acota las llamadas a base de datos y SMTP.
func WithTimeouts(db, mail time.Duration) ContactOption {
	return func(s *ContactService) {
		if db > 0 {
			s.dbTimeout = db
		}
		if mail > 0 {
			s.mailTimeout = mail
		}
	}
}

func NewContactService(logger *zap.Logger, submissions repository.SubmissionRepository, emailSender email.Sender, opts ...ContactOption) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ContactService{
		logger:      logger,
		submissions: submissions,
		emailSender: emailSender,
		dbTimeout:   defaultDBTimeout,
		mailTimeout: defaultMailTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit inserta la submission y luego envía el acuse. Si el email falla la fila queda
// guardada y aun así se devuelve error.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (domain.Submission, error) {
	if s.submissions == nil {
		return domain.Submission{}, errors.New("contact service not configured")
	}

	name := strings.TrimSpace(input.Name)
	emailAddr := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if err := validateContact(name, emailAddr, message); err != nil {
		metrics.RecordContactSubmission(metrics.OutcomeInvalid)
		return domain.Submission{}, err
	}

	if s.limiter != nil && input.ClientKey != "" && !s.limiter.Allow(ctx, input.ClientKey) {
		metrics.RecordContactSubmission(metrics.OutcomeRateLimited)
		return domain.Submission{}, ErrRateLimited
	}

	submission := domain.Submission{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     emailAddr,
		Message:   message,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	err := s.submissions.Create(dbCtx, submission)
	cancel()
	if err != nil {
		s.logger.Error("insert submission failed", zap.Error(err))
		metrics.RecordContactSubmission(metrics.OutcomePersistenceError)
		return domain.Submission{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.emailSender == nil {
		metrics.RecordContactSubmission(metrics.OutcomeMailError)
		return domain.Submission{}, ErrEmailSendFailure
	}
	mailCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	err = s.emailSender.SendContactAcknowledgment(mailCtx, email.Acknowledgment{
		ToEmail: emailAddr,
		Name:    name,
		Message: message,
	})
	cancel()
	if err != nil {
		s.logger.Warn("send contact acknowledgment failed",
			zap.Error(err),
			zap.String("submission_id", submission.ID),
		)
		metrics.RecordContactSubmission(metrics.OutcomeMailError)
		return domain.Submission{}, fmt.Errorf("%w: %v", ErrEmailSendFailure, err)
	}

	metrics.RecordContactSubmission(metrics.OutcomeSuccess)
	return submission, nil
}

func validateContact(name, emailAddr, message string) error {
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if emailAddr == "" {
		missing = append(missing, "email")
	}
	if message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
