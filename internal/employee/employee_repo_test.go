package employee_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var employeeColumns = []string{"id", "company_id", "department_id", "full_name", "email", "role", "hire_date", "active"}

func setupRepo(t *testing.T) (employee.Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return employee.NewRepository(gdb), mock
}

func TestRepository_FindByIDAndCompany(t *testing.T) {
	companyID := uuid.New()
	empID := uuid.New()
	hired := time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE`)).
			WillReturnRows(sqlmock.NewRows(employeeColumns).
				AddRow(empID.String(), companyID.String(), nil, "Ana Lima", "ana@example.com", "SUPERVISOR", hired, true))

		got, err := repo.FindByIDAndCompany(context.Background(), companyID.String(), empID.String())

		require.NoError(t, err)
		assert.Equal(t, empID, got.ID)
		assert.Equal(t, domain.RoleSupervisor, got.Role)
		assert.True(t, got.HireDate.Equal(hired))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE`)).
			WillReturnRows(sqlmock.NewRows(employeeColumns))

		got, err := repo.FindByIDAndCompany(context.Background(), companyID.String(), empID.String())

		assert.Nil(t, got)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestRepository_FindApproverByRole(t *testing.T) {
	companyID := uuid.New()
	deptID := uuid.New()
	approverID := uuid.New()

	t.Run("falls back to company-wide search", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE .*department_id = .*id <> `).
			WillReturnRows(sqlmock.NewRows(employeeColumns))
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE .*role = .*active = `).
			WillReturnRows(sqlmock.NewRows(employeeColumns).
				AddRow(approverID.String(), companyID.String(), nil, "Ben Ode", "ben@example.com", "HEAD_OF_DEPARTMENT", time.Now(), true))

		got, err := repo.FindApproverByRole(context.Background(), companyID.String(), domain.RoleHeadOfDepartment, &deptID, "requester")

		require.NoError(t, err)
		assert.Equal(t, approverID, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("company-wide role skips department search", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE .*role = `).
			WillReturnRows(sqlmock.NewRows(employeeColumns).
				AddRow(approverID.String(), companyID.String(), nil, "Cy Park", "cy@example.com", "HR_MANAGER", time.Now(), true))

		got, err := repo.FindApproverByRole(context.Background(), companyID.String(), domain.RoleHRManager, &deptID, "")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleHRManager, got.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nobody holds the role", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE`).
			WillReturnRows(sqlmock.NewRows(employeeColumns))

		_, err := repo.FindApproverByRole(context.Background(), companyID.String(), domain.RoleDirector, nil, "")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestRepository_FindByIDs_Empty(t *testing.T) {
	repo, mock := setupRepo(t)

	got, err := repo.FindByIDs(context.Background(), "company", nil)

	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployee_SameDepartment(t *testing.T) {
	dept := uuid.New()
	other := uuid.New()

	a := &employee.Employee{DepartmentID: &dept}
	assert.True(t, a.SameDepartment(&employee.Employee{DepartmentID: &dept}))
	assert.False(t, a.SameDepartment(&employee.Employee{DepartmentID: &other}))
	assert.False(t, a.SameDepartment(&employee.Employee{}))
}
