package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
)

func TestGetExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := Wrap(db, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, wrapped, GetExecutor(ctx, wrapped))

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, wrapped))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryDurationObserved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, "test")
	wrapped := Wrap(db, m)

	mock.ExpectExec("DELETE FROM capacity_rules").WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = wrapped.ExecContext(context.Background(), "DELETE FROM capacity_rules WHERE id = $1", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration))
	assert.NoError(t, mock.ExpectationsWereMet())
}
