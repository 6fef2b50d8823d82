package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/authz"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// UserAdminService covers admin-side account management: listing, role
// changes and deletion. Both mutations carry a self-lockout guard: an admin
// may never change or delete their own account.
type UserAdminService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserAdminService constructs the service.
func NewUserAdminService(users repository.UserRepository, dispatcher events.Dispatcher) *UserAdminService {
	return &UserAdminService{users: users, dispatcher: dispatcher}
}

// ListUsers returns all accounts ordered by role then email.
func (s *UserAdminService) ListUsers(ctx context.Context, actor *authz.Identity) ([]domain.User, error) {
	if _, ok := authz.Resolve(authz.ActionUserManage, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot manage users")
	}
	return s.users.ListAll(ctx)
}

// ListEngineers returns engineer accounts ordered by email, for assignment
// pickers.
func (s *UserAdminService) ListEngineers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleEngineer)
}

// ChangeRole updates another user's role.
func (s *UserAdminService) ChangeRole(ctx context.Context, actor *authz.Identity, targetID int64, role domain.Role) (*domain.User, error) {
	if _, ok := authz.Resolve(authz.ActionUserManage, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot manage users")
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewInvalidRole(string(role))
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == actor.UserID {
		return nil, apperrors.NewForbidden("you cannot change your own role")
	}

	oldRole := target.Role
	if err := s.users.UpdateRole(ctx, target.ID, role); err != nil {
		return nil, err
	}
	target.Role = role

	s.publish(ctx, events.Event{
		Type:  events.EventUserRoleChanged,
		Actor: eventActor(actor),
		Payload: events.UserRoleChangedPayload{
			TargetEmail: target.Email,
			OldRole:     oldRole,
			NewRole:     role,
		},
	})
	return target, nil
}

// DeleteUser removes another user's account. Issues the user created are
// kept; their creator link is cleared while the email snapshot remains.
func (s *UserAdminService) DeleteUser(ctx context.Context, actor *authz.Identity, targetID int64) error {
	if _, ok := authz.Resolve(authz.ActionUserManage, actor.Role); !ok {
		return apperrors.NewForbidden("role cannot manage users")
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.ID == actor.UserID {
		return apperrors.NewForbidden("you cannot delete your own account")
	}
	return s.users.Delete(ctx, target.ID)
}

func (s *UserAdminService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
