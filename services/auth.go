package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
)

// AuthService implements login, registration and password recovery.
// Credentials are matched exactly and case-sensitively against the stored
// plain text; there is deliberately no hashing in this system.
type AuthService struct {
	store *database.Store
}

// NewAuthService creates a new auth service.
func NewAuthService(store *database.Store) *AuthService {
	return &AuthService{store: store}
}

// Login matches email and password exactly. A blocked account with correct
// credentials fails with ErrAccountBlocked, not ErrInvalidCredentials, so the
// caller can distinguish the two. Successful logins are audit-logged.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		found := doc.UserByEmail(email)
		if found == nil || found.Password != password {
			return ErrInvalidCredentials
		}
		if found.IsBlocked() {
			return ErrAccountBlocked
		}
		user = *found
		doc.AppendLog(fmt.Sprintf("User logged in: %s", email), email, model.LogInfo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a student account and clones the full global chapter
// catalog into per-user instances with empty progress state.
func (s *AuthService) Register(ctx context.Context, name, email, password, recoveryHint string) (*model.User, error) {
	user := model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Password:     password,
		RecoveryHint: recoveryHint,
		Role:         model.RoleStudent,
		Status:       model.StatusActive,
		JoinedAt:     time.Now().UTC(),
	}

	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		if doc.UserByEmail(email) != nil {
			return ErrDuplicateEmail
		}
		doc.Users = append(doc.Users, user)
		for _, tpl := range doc.GlobalChapters {
			doc.UserChapters = append(doc.UserChapters, tpl.Instance(user.ID))
		}
		doc.AppendLog(fmt.Sprintf("User registered: %s", email), email, model.LogInfo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Recover overwrites the password in place when both email and recovery hint
// match the same, unblocked user.
func (s *AuthService) Recover(ctx context.Context, email, recoveryHint, newPassword string) error {
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		user := doc.UserByEmail(email)
		if user == nil || user.RecoveryHint != recoveryHint {
			return ErrRecoveryMismatch
		}
		if user.IsBlocked() {
			return ErrAccountBlocked
		}
		user.Password = newPassword
		doc.AppendLog(fmt.Sprintf("Password recovered: %s", email), email, model.LogWarning)
		return nil
	})
	return err
}

// UserByID resolves a session's user, for middleware and profile reads.
func (s *AuthService) UserByID(ctx context.Context, id string) (*model.User, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := doc.UserByID(id)
	if user == nil {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}
