package services

import (
	"context"
	"testing"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(seed ...models.User) (*UserService, *fakeUserRepo) {
	userRepo := newFakeUserRepo(seed...)
	activities := NewActivityService(newFakeCollection[models.Activity](), userRepo)
	return NewUserService(userRepo, activities), userRepo
}

func seedSuperAdmin() models.User {
	hashed, _ := password.Hash("admin123456")
	return models.User{
		ID:          1,
		Name:        "System Administrator",
		Username:    "admin",
		Password:    hashed,
		Role:        string(domain.RoleSuperAdmin),
		Permissions: domain.NewPermissionSet(domain.PermissionAll),
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(seedSuperAdmin())

	created, err := svc.CreateUser(ctx, testSession(), &CreateUserInput{
		Name:        "হিসাবরক্ষক",
		Username:    "cashier",
		Password:    "strongpass1",
		Permissions: []string{domain.ModuleDeposits, domain.ModuleMembers},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleUser), created.Role, "role defaults to user")
	assert.ElementsMatch(t, []string{domain.ModuleDeposits, domain.ModuleMembers}, created.Permissions.Slice())

	_, err = svc.CreateUser(ctx, testSession(), &CreateUserInput{
		Name: "x", Username: "cashier", Password: "strongpass1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.CreateUser(ctx, testSession(), &CreateUserInput{
		Name: "x", Username: "y", Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.CreateUser(ctx, testSession(), &CreateUserInput{
		Name: "x", Username: "y", Password: "strongpass1", Role: "owner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateUserRoleGuards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(seedSuperAdmin())

	// session user 1 cannot change their own role
	role := string(domain.RoleUser)
	_, err := svc.UpdateUser(ctx, testSession(), 1, &UpdateUserInput{Role: &role})
	assert.ErrorIs(t, err, ErrCannotDemoteSelf)
}

func TestDemotingLastSuperAdminRefused(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newTestUserService(seedSuperAdmin())

	// a different superadmin tries to demote the only other one
	require.NoError(t, userRepo.Create(ctx, &models.User{
		Name: "Second", Username: "second", Role: string(domain.RoleSuperAdmin),
	}))
	secondSession := &domain.Session{UserID: 2, Role: domain.RoleSuperAdmin}

	role := string(domain.RoleAdmin)
	_, err := svc.UpdateUser(ctx, secondSession, 1, &UpdateUserInput{Role: &role})
	require.NoError(t, err, "demotion is fine while another superadmin remains")

	// now user 2 is the last superadmin; deleting them is refused
	assert.ErrorIs(t, svc.DeleteUser(ctx, testSession(), 2), ErrLastSuperAdmin)
}

func TestDeleteUserGuards(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newTestUserService(seedSuperAdmin())

	assert.ErrorIs(t, svc.DeleteUser(ctx, testSession(), 1), ErrCannotDeleteSelf)

	require.NoError(t, userRepo.Create(ctx, &models.User{
		Name: "Clerk", Username: "clerk", Role: string(domain.RoleUser),
	}))
	require.NoError(t, svc.DeleteUser(ctx, testSession(), 2))

	assert.ErrorIs(t, svc.DeleteUser(ctx, testSession(), 99), ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newTestUserService(seedSuperAdmin())

	err := svc.ChangePassword(ctx, testSession(), &ChangePasswordInput{
		OldPassword: "wrong-password",
		NewPassword: "newpass12345",
	})
	assert.ErrorIs(t, err, ErrOldPasswordWrong)

	err = svc.ChangePassword(ctx, testSession(), &ChangePasswordInput{
		OldPassword: "admin123456",
		NewPassword: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(ctx, testSession(), &ChangePasswordInput{
		OldPassword: "admin123456",
		NewPassword: "newpass12345",
	}))

	stored, err := userRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, password.Verify("newpass12345", stored.Password))

	assert.ErrorIs(t, svc.ChangePassword(ctx, nil, &ChangePasswordInput{}), domain.ErrUnauthorized)
}
