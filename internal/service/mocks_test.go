package service

import (
	"context"
	"sort"
	"sync"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/email"
)

type mockSubmissionRepo struct {
	mu        sync.Mutex
	rows      []domain.Submission
	createErr error
	listErr   error
	creates   int
}

func (m *mockSubmissionRepo) Create(_ context.Context, submission domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	m.rows = append(m.rows, submission)
	return nil
}

func (m *mockSubmissionRepo) ListNewestFirst(_ context.Context) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Submission, len(m.rows))
	copy(out, m.rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type mockEmailSender struct {
	last  email.Acknowledgment
	calls int
	err   error
}

func (m *mockEmailSender) SendContactAcknowledgment(_ context.Context, ack email.Acknowledgment) error {
	m.calls++
	m.last = ack
	return m.err
}

type mockLimiter struct {
	allow bool
	keys  []string
}

func (m *mockLimiter) Allow(_ context.Context, key string) bool {
	m.keys = append(m.keys, key)
	return m.allow
}
