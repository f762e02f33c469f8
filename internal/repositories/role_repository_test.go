package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crewboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupRoleTestRepository creates a role repository with a mock database
func setupRoleTestRepository(t *testing.T) (*roleRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewRoleRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRoleRepository_Get(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		setupMock     func(sqlmock.Sqlmock)
		expected      models.Role
		expectedError bool
	}{
		{
			name:   "assigned role",
			userID: "uuid-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT role`).
					WithArgs("uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("moderator"))
			},
			expected: models.RoleModerator,
		},
		{
			name:   "no assignment row yields unassigned without error",
			userID: "uuid-2",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT role`).
					WithArgs("uuid-2").
					WillReturnRows(sqlmock.NewRows([]string{"role"}))
			},
			expected: models.RoleUnassigned,
		},
		{
			name:   "database error",
			userID: "uuid-3",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT role`).
					WithArgs("uuid-3").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRoleTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			role, err := repo.Get(context.Background(), tt.userID)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, role)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoleRepository_GetAll(t *testing.T) {
	repo, mock, cleanup := setupRoleTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"user_id", "role"}).
		AddRow("uuid-1", "owner").
		AddRow("uuid-2", "moderator")
	mock.ExpectQuery(`SELECT user_id, role FROM user_roles`).
		WillReturnRows(rows)

	roles, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Role{
		"uuid-1": models.RoleOwner,
		"uuid-2": models.RoleModerator,
	}, roles)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_Upsert(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		role          models.Role
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:   "insert new assignment",
			userID: "uuid-1",
			role:   models.RoleModerator,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_roles`).
					WithArgs("uuid-1", models.RoleModerator).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:   "update existing assignment",
			userID: "uuid-1",
			role:   models.RoleUser,
			setupMock: func(mock sqlmock.Sqlmock) {
				// ON DUPLICATE KEY UPDATE reports 2 affected rows
				mock.ExpectExec(`INSERT INTO user_roles`).
					WithArgs("uuid-1", models.RoleUser).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name:   "database error",
			userID: "uuid-2",
			role:   models.RoleModerator,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_roles`).
					WithArgs("uuid-2", models.RoleModerator).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRoleTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Upsert(context.Background(), tt.userID, tt.role)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
