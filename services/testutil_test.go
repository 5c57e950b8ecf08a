package services

import (
	"errors"
	"io"
	"testing"

	"task-review-api/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens a gorm handle over a sqlmock connection. Expectations are
// matched in order, which is what lets the cascade tests assert ordering.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// fakeStore records every removal attempt and can be told to fail for
// specific keys.
type fakeStore struct {
	attempts []string
	failOn   map[string]bool
	objects  []storage.Object
}

func (f *fakeStore) Save(key string, content io.Reader) error {
	return nil
}

func (f *fakeStore) Open(key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Remove(key string) error {
	f.attempts = append(f.attempts, key)
	if f.failOn[key] {
		return errors.New("storage unavailable")
	}
	return nil
}

func (f *fakeStore) List() ([]storage.Object, error) {
	return f.objects, nil
}
