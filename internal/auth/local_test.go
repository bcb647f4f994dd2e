package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	p := NewLocalProvider(db)

	user := newUser(t, db, "admin")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "admin", password: "secret"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: ErrInvalidPassword},
		{name: "unknown user", username: "ghost", password: "secret", wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Authenticate(tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestAuthenticate_Disabled(t *testing.T) {
	db := newTestDB(t)
	p := NewLocalProvider(db)

	user := newUser(t, db, "admin")
	require.NoError(t, db.Model(user).Update("active", false).Error)

	_, err := p.Authenticate("admin", "secret")
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestCreateUser_Duplicate(t *testing.T) {
	db := newTestDB(t)
	p := NewLocalProvider(db)

	user := newUser(t, db, "admin")

	_, err := p.CreateUser("admin", "other@example.org", "x", user.RoleID)
	require.ErrorIs(t, err, ErrUserNameOrEmailExists)

	_, err = p.CreateUser("other", "admin@example.org", "x", user.RoleID)
	require.ErrorIs(t, err, ErrUserNameOrEmailExists)

	// empty emails do not collide
	_, err = p.CreateUser("first", "", "x", user.RoleID)
	require.NoError(t, err)
	_, err = p.CreateUser("second", "", "x", user.RoleID)
	require.NoError(t, err)

	count, err := p.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	p := NewLocalProvider(db)

	user := newUser(t, db, "admin")

	require.ErrorIs(t, p.ChangePassword(user.ID, "wrong", "new-secret"), ErrInvalidOldPassword)
	require.NoError(t, p.ChangePassword(user.ID, "secret", "new-secret"))

	_, err := p.Authenticate("admin", "secret")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("admin", "new-secret")
	require.NoError(t, err)

	require.NoError(t, p.ResetPassword(user.ID, "reset"))

	_, err = p.Authenticate("admin", "reset")
	require.NoError(t, err)
}
