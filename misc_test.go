package pagekit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openGORMMock(t *testing.T, dialectorFor func(conn gorm.ConnPool) gorm.Dialector) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(dialectorFor(mockDB), &gorm.Config{})
	require.NoError(t, err)

	return db.Debug(), mock
}

func newGORMMySQLMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	return openGORMMock(t, func(conn gorm.ConnPool) gorm.Dialector {
		return mysql.New(mysql.Config{
			Conn:                      conn,
			SkipInitializeWithVersion: true,
		})
	})
}

func newGORMPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	return openGORMMock(t, func(conn gorm.ConnPool) gorm.Dialector {
		return postgres.New(postgres.Config{Conn: conn})
	})
}
