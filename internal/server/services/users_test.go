package services

import (
	"context"
	"testing"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesStudentAccount(t *testing.T) {
	e := newEnv(t)

	user, err := e.users.Register(context.Background(), "alice", "pw", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, models.PermissionStudent, user.Permission)
}

func TestRegister_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		display  string
	}{
		{"empty username", "", "pw", "A"},
		{"non-alphanumeric username", "a lice!", "pw", "A"},
		{"empty password", "alice", "", "A"},
		{"empty name", "alice", "pw", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.users.Register(ctx, tc.username, tc.password, tc.display)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Register(ctx, "alice", "pw", "Alice")
	require.NoError(t, err)

	_, err = e.users.Register(ctx, "alice", "other", "Other Alice")
	require.ErrorIs(t, err, common.ErrorConflict)
}

func TestLogin_Success(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.addUser(t, "alice", models.PermissionStudent)

	token, view, err := e.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, u.ID, view.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addUser(t, "alice", models.PermissionStudent)

	_, _, err := e.users.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthenticated)

	// unknown users are indistinguishable from wrong passwords
	_, _, err = e.users.Login(ctx, "ghost", "pw")
	require.ErrorIs(t, err, common.ErrorUnauthenticated)
}

func TestGetUser_ProjectionOmitsCredentials(t *testing.T) {
	e := newEnv(t)
	u := e.addUser(t, "alice", models.PermissionStudent)

	view, err := e.users.Get(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, &UserView{ID: u.ID, Name: "alice", Permission: models.PermissionStudent}, view)
}

func TestUpdateUser_SelfEditAllowed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.addUser(t, "alice", models.PermissionStudent)

	newName := "Alice B."
	err := e.users.Update(ctx, u.ID, u.ID, UpdateUserParams{Name: &newName})
	require.NoError(t, err)

	view, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice B.", view.Name)
}

func TestUpdateUser_OtherRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.addUser(t, "alice", models.PermissionStudent)
	bob := e.addUser(t, "bob", models.PermissionStudent)
	root := e.addUser(t, "root", models.PermissionAdmin)

	newName := "renamed"
	require.ErrorIs(t, e.users.Update(ctx, bob.ID, alice.ID, UpdateUserParams{Name: &newName}), common.ErrorForbidden)
	require.NoError(t, e.users.Update(ctx, root.ID, alice.ID, UpdateUserParams{Name: &newName}))
}

func TestUpdateUser_PasswordRehash(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.addUser(t, "alice", models.PermissionStudent)

	newPw := "changed"
	require.NoError(t, e.users.Update(ctx, u.ID, u.ID, UpdateUserParams{Password: &newPw}))

	_, _, err := e.users.Login(ctx, "alice", "pw")
	require.ErrorIs(t, err, common.ErrorUnauthenticated)
	_, _, err = e.users.Login(ctx, "alice", "changed")
	require.NoError(t, err)
}

func TestDeleteUser_SelfOrAdmin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.addUser(t, "alice", models.PermissionStudent)
	bob := e.addUser(t, "bob", models.PermissionStudent)
	root := e.addUser(t, "root", models.PermissionAdmin)

	require.ErrorIs(t, e.users.Delete(ctx, bob.ID, alice.ID), common.ErrorForbidden)
	require.NoError(t, e.users.Delete(ctx, root.ID, alice.ID))
	_, err := e.users.Get(ctx, alice.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, e.users.Delete(ctx, bob.ID, bob.ID))
}

func TestDeleteUser_UnknownTarget(t *testing.T) {
	e := newEnv(t)
	root := e.addUser(t, "root", models.PermissionAdmin)

	err := e.users.Delete(context.Background(), root.ID, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
