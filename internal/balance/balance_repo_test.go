package balance_test

import (
	"context"
	"regexp"
	"testing"

	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (balance.Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return balance.NewRepository(gdb), mock
}

func TestRepository_Deduct(t *testing.T) {
	t.Run("provisioned row", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`UPDATE "leave_balances" SET .*"used"=used \+ \$`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Deduct(context.Background(), "company-1", "emp-1", domain.LeaveAnnual, 2026, decimal.NewFromInt(3))

		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row touches nothing", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`UPDATE "leave_balances" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.Deduct(context.Background(), "company-1", "emp-1", domain.LeaveAnnual, 2026, decimal.NewFromInt(3))

		assert.NoError(t, err)
		assert.Zero(t, rows)
	})
}

func TestRepository_Find(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "leave_balances" WHERE`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.Find(context.Background(), "company-1", "emp-1", domain.LeaveSick, 2026)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectExec(`INSERT INTO "leave_balances" .* ON CONFLICT \("employee_id","leave_type","year"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &balance.Balance{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		EmployeeID: uuid.New(),
		LeaveType:  domain.LeaveAnnual,
		Year:       2026,
		Opening:    decimal.NewFromInt(12),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
