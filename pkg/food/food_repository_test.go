package food

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"worthy-waste/domain"
)

func newFoodRepoWithMock(t *testing.T) (FoodRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewFoodRepository(db), mock
}

func TestGetFoodItems_AppliesFilters(t *testing.T) {
	repo, mock := newFoodRepoWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "food_items" WHERE user_id = \$1 AND category = \$2 AND storage = \$3 AND "food_items"."deleted_at" IS NULL ORDER BY expiry_date asc,\s?created_at desc`).
		WithArgs("user-1", "dairy", "refrigerator").
		WillReturnRows(sqlmock.NewRows([]string{"name", "status"}).AddRow("Milk", domain.FoodStatusExpiringSoon))

	got, err := repo.GetFoodItems(context.Background(), "user-1", domain.FoodItemFilter{
		Status:   "all",
		Category: "dairy",
		Storage:  "refrigerator",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Milk", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOpenFoodItems(t *testing.T) {
	repo, mock := newFoodRepoWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "food_items" WHERE \(?user_id = \$1 AND status IN \(\$2,\$3,\$4\)`).
		WithArgs("user-1", domain.FoodStatusFresh, domain.FoodStatusExpiringSoon, domain.FoodStatusExpired).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Bread").AddRow("Eggs"))

	got, err := repo.GetOpenFoodItems(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus(t *testing.T) {
	repo, mock := newFoodRepoWithMock(t)

	mock.ExpectQuery(`SELECT status, count\(\*\) as count FROM "food_items" WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(domain.FoodStatusFresh, 3).
			AddRow(domain.FoodStatusConsumed, 1))

	counts, err := repo.CountByStatus(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{domain.FoodStatusFresh: 3, domain.FoodStatusConsumed: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFoodItem_SoftDeletes(t *testing.T) {
	repo, mock := newFoodRepoWithMock(t)

	mock.ExpectExec(`UPDATE "food_items" SET "deleted_at"=\$1 WHERE id = \$2 AND "food_items"."deleted_at" IS NULL`).
		WithArgs(sqlmock.AnyArg(), "item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteFoodItem(context.Background(), "item-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountCreatedSince(t *testing.T) {
	repo, mock := newFoodRepoWithMock(t)
	since := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "food_items" WHERE \(?user_id = \$1 AND created_at >= \$2`).
		WithArgs("user-1", since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountCreatedSince(context.Background(), "user-1", since)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
