package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func newTestApp(t *testing.T, rm *fakeRepoManager) (*App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	return &App{config: cfg, logger: logging.Nop(), db: db, repomanager: rm}, mock
}

func TestNewApp(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	app, err := NewApp(cfg)
	require.NoError(t, err)
	assert.NotNil(t, app.db)
	assert.NotNil(t, app.repomanager)
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
	_ = app.db.Close()
}

func TestGinMode(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", gin.DebugMode},
		{"DEBUG", gin.DebugMode},
		{"info", gin.ReleaseMode},
		{"warn", gin.ReleaseMode},
		{"error", gin.ReleaseMode},
		{"", gin.ReleaseMode},
		{"bogus", gin.ReleaseMode},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ginMode(tt.level))
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	rm := &fakeRepoManager{}
	app, mock := newTestApp(t, rm)
	mock.ExpectPing()
	mock.ExpectClose()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, app.Run(ctx))
	assert.True(t, rm.migrated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_PingFails(t *testing.T) {
	rm := &fakeRepoManager{}
	app, mock := newTestApp(t, rm)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
	assert.False(t, rm.migrated)
}

func TestRun_MigrationsFail(t *testing.T) {
	rm := &fakeRepoManager{migrateErr: errors.New("bad sql")}
	app, mock := newTestApp(t, rm)
	mock.ExpectPing()
	mock.ExpectClose()

	err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations")
}

func TestRun_ListenFails(t *testing.T) {
	app, mock := newTestApp(t, &fakeRepoManager{})
	app.config.EndpointAddrHTTP = "bad-address"
	mock.ExpectPing()
	mock.ExpectClose()

	require.Error(t, app.Run(context.Background()))
}
