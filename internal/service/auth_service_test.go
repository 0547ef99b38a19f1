package service

import (
	"testing"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/pkg/jwt"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func newAuthFixture(t *testing.T) (AuthService, *AccessSeeder) {
	t.Helper()
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	seeder := NewAccessSeeder(users, repository.NewRoleRepo(db), repository.NewPrivilegeRepo(db), zerolog.Nop())
	require.NoError(t, seeder.Seed(ctxT(t), "admin@example.com", "admin-password"))
	return NewAuthService(users, jwt.NewManager(testSecret, time.Hour), zerolog.Nop()), seeder
}

func TestSeedIsRepeatableAndGrantsRoles(t *testing.T) {
	db := openTestDB(t)
	ctx := ctxT(t)
	roles := repository.NewRoleRepo(db)
	seeder := NewAccessSeeder(repository.NewUserRepo(db), roles, repository.NewPrivilegeRepo(db), zerolog.Nop())

	require.NoError(t, seeder.Seed(ctx, "admin@example.com", "admin-password"))
	require.NoError(t, seeder.Seed(ctx, "admin@example.com", "admin-password"))

	master, err := roles.FindByCode(ctx, model.RoleMasterAdmin)
	require.NoError(t, err)
	assert.Len(t, master.Privileges, len(model.DefaultPrivileges))

	staff, err := roles.FindByCode(ctx, model.RoleStaff)
	require.NoError(t, err)
	assert.Len(t, staff.Privileges, len(model.RolePrivilegeCodes[model.RoleStaff]))
}

func TestLoginAndAuthenticate(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := ctxT(t)

	resp, err := auth.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.Privileges, model.PrivTransactionPurge)

	session, err := auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", session.Actor.Email)

	validated, err := auth.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMasterAdmin, validated.Role.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := ctxT(t)

	_, err := auth.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = auth.Login(ctx, LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestNewLoginAndLogoutRevokeOldToken(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := ctxT(t)

	first, err := auth.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin-password"})
	require.NoError(t, err)
	second, err := auth.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin-password"})
	require.NoError(t, err)

	_, err = auth.Authenticate(ctx, first.Token)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	session, err := auth.Authenticate(ctx, second.Token)
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx, session.UserID))

	_, err = auth.Authenticate(ctx, second.Token)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestResetPassword(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := ctxT(t)

	err := auth.ResetPassword(ctx, ResetPasswordRequest{Email: "admin@example.com", OldPassword: "wrong", NewPassword: "brand-new-pass"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	require.NoError(t, auth.ResetPassword(ctx, ResetPasswordRequest{Email: "admin@example.com", OldPassword: "admin-password", NewPassword: "brand-new-pass"}))

	_, err = auth.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin-password"})
	assert.Error(t, err)
	_, err = auth.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	require.NoError(t, auth.SetPassword(ctx, "admin@example.com", "reset-by-cli"))
	_, err = auth.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "reset-by-cli"})
	assert.NoError(t, err)

	err = auth.SetPassword(ctx, "admin@example.com", "short")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestStaffGetsRolePrivilegesOnly(t *testing.T) {
	auth, seeder := newAuthFixture(t)
	ctx := ctxT(t)

	user, err := seeder.CreateUser(ctx, "staff@example.com", "Staff", "staff-password", model.RoleStaff)
	require.NoError(t, err)
	assert.Len(t, user.Privileges, len(model.RolePrivilegeCodes[model.RoleStaff]))

	resp, err := auth.Login(ctx, LoginRequest{Email: "staff@example.com", Password: "staff-password"})
	require.NoError(t, err)
	assert.Contains(t, resp.Privileges, model.PrivTransactionCreate)
	assert.NotContains(t, resp.Privileges, model.PrivTransactionPurge)
	assert.NotContains(t, resp.Privileges, model.PrivProductArchive)

	_, err = seeder.CreateUser(ctx, "staff@example.com", "Again", "staff-password", model.RoleStaff)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
