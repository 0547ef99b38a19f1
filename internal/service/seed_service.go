package service

import (
	"context"
	"fmt"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// AccessSeeder installs the default privileges, roles and the first administrator
type AccessSeeder struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	privileges repository.PrivilegeRepository
	log        zerolog.Logger
}

func NewAccessSeeder(users repository.UserRepository, roles repository.RoleRepository, privileges repository.PrivilegeRepository, log zerolog.Logger) *AccessSeeder {
	return &AccessSeeder{users: users, roles: roles, privileges: privileges, log: log}
}

// Seed is safe to run on every start: existing rows are left as they are
func (s *AccessSeeder) Seed(ctx context.Context, adminEmail, adminPassword string) error {
	// 1. Seed privileges first
	if err := s.privileges.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed privileges: %w", err)
	}

	// 2. Seed roles
	if err := s.roles.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	// 3. Assign privileges to roles that have none yet
	all, err := s.privileges.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load privileges: %w", err)
	}
	for _, code := range []string{model.RoleMasterAdmin, model.RoleAdmin, model.RoleStaff} {
		role, err := s.roles.FindByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("load role %s: %w", code, err)
		}
		if len(role.Privileges) > 0 {
			continue
		}
		granted := all
		if code != model.RoleMasterAdmin {
			if granted, err = s.privileges.FindByCodes(ctx, model.RolePrivilegeCodes[code]); err != nil {
				return fmt.Errorf("load privileges for %s: %w", code, err)
			}
		}
		if err := s.roles.AssignPrivileges(ctx, role, granted); err != nil {
			return fmt.Errorf("assign privileges to %s: %w", code, err)
		}
		s.log.Info().Str("role", code).Int("privileges", len(granted)).Msg("role privileges assigned")
	}

	// 4. Create the default admin user with MASTER_ADMIN role
	if adminEmail == "" {
		return nil
	}
	_, err = s.users.FindByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return fmt.Errorf("load admin: %w", err)
	}
	if adminPassword == "" {
		s.log.Warn().Str("email", adminEmail).Msg("ADMIN_PASSWORD empty, admin user not created")
		return nil
	}

	_, err = s.CreateUser(ctx, adminEmail, "Master Administrator", adminPassword, model.RoleMasterAdmin)
	return err
}

// CreateUser adds an active user holding every privilege of roleCode
func (s *AccessSeeder) CreateUser(ctx context.Context, email, fullName, password, roleCode string) (*model.User, error) {
	role, err := s.roles.FindByCode(ctx, roleCode)
	if err != nil {
		return nil, fmt.Errorf("load role %s: %w", roleCode, err)
	}

	user := &model.User{
		Email:      email,
		FullName:   fullName,
		RoleID:     &role.ID,
		IsActive:   true,
		Privileges: role.Privileges,
	}
	user.CreatedBy = SystemActor.ID
	user.UpdatedBy = SystemActor.ID
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", roleCode).Msg("user created")
	return user, nil
}
