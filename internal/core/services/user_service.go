package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrWeakPassword     = errors.New("password must be at least 8 characters")
	ErrOldPasswordWrong = errors.New("old password is incorrect")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
	ErrCannotDemoteSelf = errors.New("cannot change your own role")
	ErrLastSuperAdmin   = errors.New("cannot remove the last superadmin")
)

// UserService handles operator account management
type UserService struct {
	userRepo   repositories.UserRepository
	activities *ActivityService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, activities *ActivityService) *UserService {
	return &UserService{
		userRepo:   userRepo,
		activities: activities,
	}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Name        string   `json:"name"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// UpdateUserInput represents update user input
type UpdateUserInput struct {
	Name        *string   `json:"name"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ListUsers returns all operator accounts sorted by name.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})

	responses := make([]*models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}

// GetUser returns one operator account.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// CreateUser creates an operator account. Permissions are normalized into
// the canonical set form before storage.
func (s *UserService) CreateUser(ctx context.Context, session *domain.Session, input *CreateUserInput) (*models.UserResponse, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Username) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	role := input.Role
	if role == "" {
		role = string(domain.RoleUser)
	}
	if role != string(domain.RoleUser) && role != string(domain.RoleAdmin) && role != string(domain.RoleSuperAdmin) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        strings.TrimSpace(input.Name),
		Username:    strings.TrimSpace(input.Username),
		Password:    hashedPassword,
		Role:        role,
		Permissions: domain.NewPermissionSet(input.Permissions...),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionUserAdd,
		fmt.Sprintf("নতুন ব্যবহারকারী: %s", user.Username), nil, user.ToResponse())
	return user.ToResponse(), nil
}

// UpdateUser edits an account's name, role and permissions. An operator
// cannot change their own role.
func (s *UserService) UpdateUser(ctx context.Context, session *domain.Session, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	before := user.ToResponse()

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		if session != nil && session.UserID == id && *input.Role != user.Role {
			return nil, ErrCannotDemoteSelf
		}
		if *input.Role != string(domain.RoleUser) && *input.Role != string(domain.RoleAdmin) && *input.Role != string(domain.RoleSuperAdmin) {
			return nil, domain.ErrInvalidInput
		}
		if user.Role == string(domain.RoleSuperAdmin) && *input.Role != string(domain.RoleSuperAdmin) {
			if err := s.ensureAnotherSuperAdmin(ctx, id); err != nil {
				return nil, err
			}
		}
		user.Role = *input.Role
	}
	if input.Permissions != nil {
		user.Permissions = domain.NewPermissionSet(*input.Permissions...)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionUserUpdate,
		fmt.Sprintf("ব্যবহারকারী হালনাগাদ: %s", user.Username), before, user.ToResponse())
	return user.ToResponse(), nil
}

// ChangePassword lets an operator change their own password.
func (s *UserService) ChangePassword(ctx context.Context, session *domain.Session, input *ChangePasswordInput) error {
	if session == nil {
		return domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return ErrUserNotFound
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}
	if !password.ValidatePassword(input.NewPassword) {
		return ErrWeakPassword
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword

	return s.userRepo.Save(ctx, user)
}

// DeleteUser removes an operator account. Self-deletion and deleting the
// last superadmin are both refused.
func (s *UserService) DeleteUser(ctx context.Context, session *domain.Session, id uint) error {
	if session != nil && session.UserID == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Role == string(domain.RoleSuperAdmin) {
		if err := s.ensureAnotherSuperAdmin(ctx, id); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionUserDelete,
		fmt.Sprintf("ব্যবহারকারী মুছে ফেলা: %s", user.Username), user.ToResponse(), nil)
	return nil
}

// ensureAnotherSuperAdmin refuses the change if no other superadmin exists.
func (s *UserService) ensureAnotherSuperAdmin(ctx context.Context, excludeID uint) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID != excludeID && u.Role == string(domain.RoleSuperAdmin) {
			return nil
		}
	}
	return ErrLastSuperAdmin
}
