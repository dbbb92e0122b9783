package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.BatchWriter = (*Store)(nil)
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp), sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock, db
}

const selectQ = `(?s)^SELECT\s+value\s+FROM\s+kv_data\s+WHERE\s+key\s*=\s*\$1$`
const upsertQ = `(?s)INSERT\s+INTO\s+kv_data\s*\(key,\s*value,\s*writer,\s*updated_at\).*ON\s+CONFLICT\s*\(key\)\s+DO\s+UPDATE`

func TestGetData_Found(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectQuery(selectQ).
		WithArgs("schedule_keys").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`["a"]`)))

	v, err := s.GetData(context.Background(), "schedule_keys")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a"]`), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetData_AbsentIsEmpty(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectQuery(selectQ).WithArgs("schedule_x").WillReturnError(sql.ErrNoRows)

	v, err := s.GetData(context.Background(), "schedule_x")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestGetData_DBError(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectQuery(selectQ).WithArgs("k").WillReturnError(errors.New("db down"))

	_, err := s.GetData(context.Background(), "k")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSetDataAs_Upserts(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectExec(upsertQ).
		WithArgs("schedule_1", []byte("v"), "0xowner").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.SetDataAs(context.Background(), "0xowner", "schedule_1", []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetData_DBError(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectExec(upsertQ).
		WithArgs("k", []byte{}, "").
		WillReturnError(errors.New("read-only transaction"))

	err := s.SetData(context.Background(), "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only transaction")
}

func TestIsAvailable_Ping(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectPing()
	ok, err := s.IsAvailable(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectPing().WillReturnError(errors.New("conn refused"))
	ok, err = s.IsAvailable(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetBatchAs_CommitsTransaction(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(upsertQ).WithArgs("schedule_1", []byte("r"), "0xowner").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertQ).WithArgs("schedule_keys", []byte(`["1"]`), "0xowner").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.SetBatchAs(context.Background(), "0xowner", []kv.Entry{
		{Key: "schedule_1", Value: []byte("r")},
		{Key: "schedule_keys", Value: []byte(`["1"]`)},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetBatch_RollsBackOnError(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(upsertQ).WithArgs("schedule_1", []byte("r"), "").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.SetBatch(context.Background(), []kv.Entry{
		{Key: "schedule_1", Value: []byte("r")},
		{Key: "schedule_keys", Value: []byte(`["1"]`)},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
