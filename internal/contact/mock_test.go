package contact_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"contact-service/internal/contact"
)

type mockRepository struct {
	mu          sync.Mutex
	submissions map[string]contact.Submission
	createErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{submissions: make(map[string]contact.Submission)}
}

func (m *mockRepository) Create(_ context.Context, submission *contact.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.submissions[submission.ID] = *submission
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*contact.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil, contact.ErrSubmissionNotFound
	}
	return &s, nil
}

func (m *mockRepository) List(_ context.Context, filter contact.ListFilter) ([]contact.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]contact.Submission, 0, len(m.submissions))
	for _, s := range m.submissions {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return contact.ErrSubmissionNotFound
	}
	s.Status = status
	m.submissions[id] = s
	return nil
}

func (m *mockRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submissions)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []contact.SubmissionEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event contact.SubmissionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) Close() error {
	return nil
}

func (m *mockPublisher) published() []contact.SubmissionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]contact.SubmissionEvent(nil), m.events...)
}

var errBrokerDown = errors.New("broker down")
