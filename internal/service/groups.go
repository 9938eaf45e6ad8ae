package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"restaurant_api/internal/authz"
	"restaurant_api/internal/models"
)

// GroupService manages role-group membership. Managers administer both
// groups; RolesOf is the role-membership capability the principal
// middleware consumes.
type GroupService struct {
	DB *gorm.DB
}

func (s *GroupService) Members(ctx context.Context, p authz.Principal, group string) ([]models.User, error) {
	if !authz.Allowed(p, authz.ActionGroupManage) {
		return nil, fmt.Errorf("only managers may view group membership: %w", ErrForbidden)
	}
	if !authz.ValidGroup(group) {
		return nil, fmt.Errorf("unknown group %q: %w", group, ErrValidation)
	}

	var users []models.User
	err := s.DB.WithContext(ctx).
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_name = ?", group).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AddMember grants the group to the named user. Granting an already-held
// role is a no-op, matching group semantics.
func (s *GroupService) AddMember(ctx context.Context, p authz.Principal, group, username string) error {
	if !authz.Allowed(p, authz.ActionGroupManage) {
		return fmt.Errorf("only managers may manage groups: %w", ErrForbidden)
	}
	if !authz.ValidGroup(group) {
		return fmt.Errorf("unknown group %q: %w", group, ErrValidation)
	}
	if username == "" {
		return fmt.Errorf("username is required: %w", ErrValidation)
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return err
	}

	member := models.GroupMember{UserID: user.ID, Group: group}
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND group_name = ?", user.ID, group).
		FirstOrCreate(&member).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return nil
}

// RemoveMember revokes the group from the user. Revoking a role the user
// does not hold succeeds silently.
func (s *GroupService) RemoveMember(ctx context.Context, p authz.Principal, group string, userID uint) error {
	if !authz.Allowed(p, authz.ActionGroupManage) {
		return fmt.Errorf("only managers may manage groups: %w", ErrForbidden)
	}
	if !authz.ValidGroup(group) {
		return fmt.Errorf("unknown group %q: %w", group, ErrValidation)
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return err
	}

	return s.DB.WithContext(ctx).
		Where("user_id = ? AND group_name = ?", userID, group).
		Delete(&models.GroupMember{}).Error
}

// RolesOf returns the set of named roles the user holds.
func (s *GroupService) RolesOf(ctx context.Context, userID uint) ([]string, error) {
	var roles []string
	err := s.DB.WithContext(ctx).Model(&models.GroupMember{}).
		Where("user_id = ?", userID).
		Pluck("group_name", &roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
