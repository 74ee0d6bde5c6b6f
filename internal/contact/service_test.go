package contact_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"contact-service/common/logger"
	"contact-service/internal/contact"
	"contact-service/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

const fixedID = "0b4c6f0e-7d1a-4a58-9a0e-1f2d3c4b5a69"

func newTestService(repo contact.Repository, pub contact.Publisher) contact.Service {
	return contact.NewService(repo, pub, logger.New(), metrics.NewMock(),
		contact.WithClock(func() time.Time { return fixedNow }),
		contact.WithIDGenerator(func() string { return fixedID }),
	)
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Submit_StoresAndPublishes", func(t *testing.T) {
		repo := newMockRepository()
		pub := &mockPublisher{}
		svc := newTestService(repo, pub)

		s, err := svc.Submit(ctx, contact.SubmitRequest{
			Name:    "  Ana  ",
			Email:   "ana@x.io ",
			Subject: "Hi",
			Message: " Hello\n",
		})
		require.NoError(t, err)

		assert.Equal(t, fixedID, s.ID)
		assert.Equal(t, "Ana", s.Name)
		assert.Equal(t, "ana@x.io", s.Email)
		assert.Equal(t, "Hello", s.Message)
		assert.Equal(t, contact.PhoneNotProvided, s.Phone)
		assert.Equal(t, contact.StatusNew, s.Status)
		assert.Equal(t, fixedNow, s.CreatedAt)
		assert.Equal(t, 1, repo.count())

		events := pub.published()
		require.Len(t, events, 1)
		assert.Equal(t, fixedID, events[0].SubmissionID)
		assert.Equal(t, "Hi", events[0].Subject)
	})

	t.Run("Submit_KeepsPhone", func(t *testing.T) {
		svc := newTestService(newMockRepository(), &mockPublisher{})

		s, err := svc.Submit(ctx, contact.SubmitRequest{Name: "a", Email: "b", Phone: "+1 555", Message: "c"})
		require.NoError(t, err)
		assert.Equal(t, "+1 555", s.Phone)
	})

	t.Run("Submit_RequiresFields", func(t *testing.T) {
		cases := []contact.SubmitRequest{
			{Email: "b", Message: "c"},
			{Name: "a", Message: "c"},
			{Name: "a", Email: "b"},
			{Name: "   ", Email: "b", Message: "c"},
		}
		for i, req := range cases {
			t.Run(fmt.Sprint(i), func(t *testing.T) {
				repo := newMockRepository()
				pub := &mockPublisher{}
				svc := newTestService(repo, pub)

				_, err := svc.Submit(ctx, req)
				assert.ErrorIs(t, err, contact.ErrInvalidInput)
				assert.Zero(t, repo.count())
				assert.Empty(t, pub.published())
			})
		}
	})

	t.Run("Submit_StorageError", func(t *testing.T) {
		repo := newMockRepository()
		dbErr := errors.New("connection refused")
		repo.createErr = dbErr
		pub := &mockPublisher{}
		svc := newTestService(repo, pub)

		_, err := svc.Submit(ctx, contact.SubmitRequest{Name: "a", Email: "b", Message: "c"})
		var storeErr *contact.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, dbErr, storeErr.Err)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, contact.ErrInvalidInput)
		assert.Empty(t, pub.published())
	})

	t.Run("Submit_PublishFailureIsNotFatal", func(t *testing.T) {
		repo := newMockRepository()
		svc := newTestService(repo, &mockPublisher{err: errBrokerDown})

		s, err := svc.Submit(ctx, contact.SubmitRequest{Name: "a", Email: "b", Message: "c"})
		require.NoError(t, err)
		assert.Equal(t, fixedID, s.ID)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("Submit_NilPublisher", func(t *testing.T) {
		svc := newTestService(newMockRepository(), nil)

		_, err := svc.Submit(ctx, contact.SubmitRequest{Name: "a", Email: "b", Message: "c"})
		assert.NoError(t, err)
	})
}

func TestService_Admin(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	_, err := svc.Submit(ctx, contact.SubmitRequest{Name: "a", Email: "b", Message: "c"})
	require.NoError(t, err)

	t.Run("Get", func(t *testing.T) {
		s, err := svc.Get(ctx, fixedID)
		require.NoError(t, err)
		assert.Equal(t, "a", s.Name)
	})

	t.Run("Get_MalformedID", func(t *testing.T) {
		_, err := svc.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, contact.ErrSubmissionNotFound)
	})

	t.Run("List_DefaultLimit", func(t *testing.T) {
		list, err := svc.List(ctx, contact.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("List_InvalidStatus", func(t *testing.T) {
		_, err := svc.List(ctx, contact.ListFilter{Status: "Spam"})
		assert.ErrorIs(t, err, contact.ErrInvalidStatus)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		s, err := svc.UpdateStatus(ctx, fixedID, contact.StatusReplied)
		require.NoError(t, err)
		assert.Equal(t, contact.StatusReplied, s.Status)

		list, err := svc.List(ctx, contact.ListFilter{Status: contact.StatusNew})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("UpdateStatus_Invalid", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, fixedID, "Deleted")
		assert.ErrorIs(t, err, contact.ErrInvalidStatus)
	})

	t.Run("UpdateStatus_Unknown", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "5f0e4d7c-0000-4000-8000-000000000000", contact.StatusRead)
		assert.ErrorIs(t, err, contact.ErrSubmissionNotFound)
	})
}
