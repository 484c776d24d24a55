package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	t.Run("gallery totals derive inactive", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM gallery_items")).
			WillReturnRows(sqlmock.NewRows([]string{"total", "active"}).AddRow(7, 5))

		totals, err := repo.GalleryTotals(ctx)

		require.NoError(t, err)
		assert.Equal(t, 7, totals.Total)
		assert.Equal(t, 5, totals.Active)
		assert.Equal(t, 2, totals.Inactive)
	})

	t.Run("review counts", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).
			WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "approved", "rejected", "approved_rating_sum"}).
				AddRow(6, 2, 3, 1, 14))

		counts, err := repo.ReviewCounts(ctx)

		require.NoError(t, err)
		assert.Equal(t, 6, counts.Total)
		assert.Equal(t, 3, counts.Approved)
		assert.Equal(t, 14, counts.ApprovedRatingSum)
	})

	t.Run("count admins", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM admins")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountAdmins(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM admins")).
			WillReturnError(errors.New("timeout"))

		_, err := repo.CountAdmins(ctx)

		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
