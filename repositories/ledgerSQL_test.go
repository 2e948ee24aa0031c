package repositories

import (
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

// sqlPattern matches a statement containing the given fragments in order.
func sqlPattern(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, fragment := range fragments {
		quoted[i] = regexp.QuoteMeta(fragment)
	}
	return strings.Join(quoted, ".*")
}

var (
	decrementSQL = sqlPattern(`UPDATE "hospital_bed" SET`, `available - 1`,
		`WHERE hospital_id = `, `AND bed_type = `, `AND available > 0`)
	incrementSQL = sqlPattern(`UPDATE "hospital_bed" SET`, `available + 1`,
		`WHERE hospital_id = `, `AND bed_type = `, `AND available < total`)
	dischargeSQL = sqlPattern(`UPDATE "patient" SET "discharge_date"=`,
		`WHERE id = `, `AND hospital_id = `, `AND discharge_date IS NULL`)
)

func TestDecrementAvailableIsConditional(t *testing.T) {
	cases := []struct {
		name    string
		rows    int64
		claimed bool
	}{
		{"bed free", 1, true},
		{"no bed free", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewHospitalRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(decrementSQL).
				WithArgs(sqlmock.AnyArg(), "h1", string(models.BedTypeICU)).
				WillReturnResult(sqlmock.NewResult(0, tc.rows))
			mock.ExpectCommit()

			claimed, err := repo.DecrementAvailable(context.Background(), "h1", models.BedTypeICU)
			require.NoError(t, err)
			assert.Equal(t, tc.claimed, claimed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIncrementAvailableIsConditional(t *testing.T) {
	cases := []struct {
		name     string
		rows     int64
		released bool
	}{
		{"below total", 1, true},
		{"already at total", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewHospitalRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(incrementSQL).
				WithArgs(sqlmock.AnyArg(), "h1", string(models.BedTypeGeneral)).
				WillReturnResult(sqlmock.NewResult(0, tc.rows))
			mock.ExpectCommit()

			released, err := repo.IncrementAvailable(context.Background(), "h1", models.BedTypeGeneral)
			require.NoError(t, err)
			assert.Equal(t, tc.released, released)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMarkDischargedOnlyOnce(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		rows   int64
		marked bool
	}{
		{"first discharge", 1, true},
		{"already discharged", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewPatientRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(dischargeSQL).
				WithArgs(at, "p1", "h1").
				WillReturnResult(sqlmock.NewResult(0, tc.rows))
			mock.ExpectCommit()

			marked, err := repo.MarkDischarged(context.Background(), "h1", "p1", at)
			require.NoError(t, err)
			assert.Equal(t, tc.marked, marked)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDecrementAvailableMapsSerializationFailure(t *testing.T) {
	for _, code := range []string{pgSerializationFailure, pgDeadlockDetected} {
		t.Run(code, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewHospitalRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(decrementSQL).WillReturnError(&pgconn.PgError{Code: code})
			mock.ExpectRollback()

			claimed, err := repo.DecrementAvailable(context.Background(), "h1", models.BedTypeICU)
			assert.False(t, claimed)
			assert.ErrorIs(t, err, exceptions.ErrConflict)
			assert.Equal(t, exceptions.KindConflict, exceptions.KindOf(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))

	for _, code := range []string{pgSerializationFailure, pgDeadlockDetected} {
		err := translate(&pgconn.PgError{Code: code, Message: "could not serialize access"})
		assert.ErrorIs(t, err, exceptions.ErrConflict, code)
		assert.Contains(t, err.Error(), "SQLSTATE "+code)
	}

	unique := &pgconn.PgError{Code: pgUniqueViolation}
	assert.NotErrorIs(t, translate(unique), exceptions.ErrConflict)
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgSerializationFailure}))

	plain := errors.New("connection reset")
	assert.Same(t, plain, translate(plain))
}

func TestWithinTransactionSharesOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db)
	hospitals := NewHospitalRepository(db)
	patients := NewPatientRepository(db)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// one BEGIN/COMMIT around both statements: repositories join the
	// transaction carried by the context
	mock.ExpectBegin()
	mock.ExpectExec(dischargeSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(incrementSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		marked, err := patients.MarkDischarged(ctx, "h1", "p1", at)
		if err != nil || !marked {
			return errors.New("discharge not applied")
		}
		released, err := hospitals.IncrementAvailable(ctx, "h1", models.BedTypeICU)
		if err != nil || !released {
			return errors.New("bed not released")
		}
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db)
	hospitals := NewHospitalRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(decrementSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := hospitals.DecrementAvailable(ctx, "h1", models.BedTypeICU); err != nil {
			return err
		}
		return exceptions.ErrPatientNotFound
	})
	assert.ErrorIs(t, err, exceptions.ErrPatientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransactionTranslatesDeadlock(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return &pgconn.PgError{Code: pgDeadlockDetected}
	})
	assert.ErrorIs(t, err, exceptions.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
