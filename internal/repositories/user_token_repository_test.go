package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crewboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTokenTestRepository creates a user token repository with a mock database
func setupTokenTestRepository(t *testing.T) (*userTokenRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserTokenRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestUserTokenRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupTokenTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO user_tokens`).
		WithArgs("uuid-1", "refresh-token").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.UserToken{
		UserID: "uuid-1",
		Token:  "refresh-token",
	})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserTokenRepository_GetByToken(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMock     func(sqlmock.Sqlmock)
		expected      *models.UserToken
		expectedError string
	}{
		{
			name:  "success",
			token: "refresh-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "token"}).
					AddRow(int64(1), "uuid-1", "refresh-token")
				mock.ExpectQuery(`SELECT id, user_id, token`).
					WithArgs("refresh-token").
					WillReturnRows(rows)
			},
			expected: &models.UserToken{ID: 1, UserID: "uuid-1", Token: "refresh-token"},
		},
		{
			name:  "not found",
			token: "unknown-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, token`).
					WithArgs("unknown-token").
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token"}))
			},
			expectedError: "token not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			userToken, err := repo.GetByToken(context.Background(), tt.token)
			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
				assert.Nil(t, userToken)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, userToken)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_UpdateToken(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens`).
					WithArgs("new-token", "old-token", "uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "token not found or user mismatch",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens`).
					WithArgs("new-token", "old-token", "uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: "token not found or user mismatch",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens`).
					WithArgs("new-token", "old-token", "uuid-1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: "failed to update user token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateToken(context.Background(), "old-token", "new-token", "uuid-1")
			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_DeleteByToken(t *testing.T) {
	repo, mock, cleanup := setupTokenTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM user_tokens`).
		WithArgs("refresh-token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteByToken(context.Background(), "refresh-token")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
