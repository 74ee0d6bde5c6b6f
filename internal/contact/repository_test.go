package contact_test

import (
	"context"
	"testing"
	"time"

	"contact-service/common/metrics"
	"contact-service/internal/contact"
	"contact-service/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Postgres(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, (*contact.Submission)(nil))

	repo := contact.NewRepository(pgContainer.DB, metrics.NewMock())
	ctx := context.Background()

	newSubmission := func(id, status string, at time.Time) *contact.Submission {
		return &contact.Submission{
			ID:        id,
			Name:      "Ana",
			Email:     "ana@x.io",
			Phone:     contact.PhoneNotProvided,
			Message:   "Hello",
			Status:    status,
			CreatedAt: at,
		}
	}

	t.Run("CreateAndGet", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contact_submissions")

		s := newSubmission("11111111-1111-4111-8111-111111111111", contact.StatusNew, fixedNow)
		require.NoError(t, repo.Create(ctx, s))

		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, contact.StatusNew, got.Status)
		assert.True(t, fixedNow.Equal(got.CreatedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contact_submissions")

		_, err := repo.GetByID(ctx, "22222222-2222-4222-8222-222222222222")
		assert.ErrorIs(t, err, contact.ErrSubmissionNotFound)
	})

	t.Run("List_NewestFirst", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contact_submissions")

		require.NoError(t, repo.Create(ctx, newSubmission("33333333-3333-4333-8333-333333333333", contact.StatusNew, fixedNow)))
		require.NoError(t, repo.Create(ctx, newSubmission("44444444-4444-4444-8444-444444444444", contact.StatusRead, fixedNow.Add(time.Hour))))

		all, err := repo.List(ctx, contact.ListFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "44444444-4444-4444-8444-444444444444", all[0].ID)

		onlyNew, err := repo.List(ctx, contact.ListFilter{Status: contact.StatusNew, Limit: 10})
		require.NoError(t, err)
		require.Len(t, onlyNew, 1)
		assert.Equal(t, "33333333-3333-4333-8333-333333333333", onlyNew[0].ID)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "contact_submissions")

		s := newSubmission("55555555-5555-4555-8555-555555555555", contact.StatusNew, fixedNow)
		require.NoError(t, repo.Create(ctx, s))

		require.NoError(t, repo.UpdateStatus(ctx, s.ID, contact.StatusArchived))
		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, contact.StatusArchived, got.Status)

		err = repo.UpdateStatus(ctx, "66666666-6666-4666-8666-666666666666", contact.StatusRead)
		assert.ErrorIs(t, err, contact.ErrSubmissionNotFound)
	})
}
