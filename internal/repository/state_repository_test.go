package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-web/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.ClientState{}))
	return db
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(newSQLiteDB(t), "")

	_, ok, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "access_token", "a1"))
	require.NoError(t, repo.Set(ctx, "access_token", "a2"))
	require.NoError(t, repo.Set(ctx, "refresh_token", "r1"))

	value, ok, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a2", value)

	require.NoError(t, repo.Delete(ctx, "access_token", "refresh_token", "unknown"))
	_, ok, err = repo.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Delete(ctx))
}

func TestStateRepositoryProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	work := NewStateRepository(db, "work")
	home := NewStateRepository(db, "home")

	require.NoError(t, work.Set(ctx, "access_token", "work-token"))
	require.NoError(t, home.Set(ctx, "access_token", "home-token"))
	require.NoError(t, home.Delete(ctx, "access_token"))

	value, ok, err := work.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "work-token", value)
}

func TestStateRepositoryPropagatesErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT .* FROM `client_states`").WillReturnError(boom)

	_, ok, err := NewStateRepository(db, "").Get(context.Background(), "access_token")

	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
