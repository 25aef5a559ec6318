package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
)

// AdminService covers the admin console: user management, audit trail reads
// and system statistics.
type AdminService struct {
	store *database.Store
}

// NewAdminService creates a new admin service.
func NewAdminService(store *database.Store) *AdminService {
	return &AdminService{store: store}
}

// UserInput carries an admin-provisioned user.
type UserInput struct {
	Name         string
	Email        string
	Password     string
	RecoveryHint string
	Role         string
}

// UserUpdate names exactly the fields an admin may change on a user.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Status   *string
}

// SystemStats is the on-demand dashboard summary. It is computed per request
// and never cached.
type SystemStats struct {
	Students     int `json:"students"`
	Questions    int `json:"questions"`
	TestsTaken   int `json:"tests_taken"`
	MasterMocks  int `json:"master_mocks"`
	StorageBytes int `json:"storage_bytes"`
}

// ListUsers returns every user.
func (s *AdminService) ListUsers(ctx context.Context, sess Session) ([]model.User, error) {
	if err := sess.require(CapManageUsers); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// Logs returns the audit trail, newest first.
func (s *AdminService) Logs(ctx context.Context, sess Session) ([]model.SystemLog, error) {
	if err := sess.require(CapViewLogs); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Logs, nil
}

// CreateUser provisions a user directly. Student accounts get the chapter
// catalog cloned exactly as self-registration does.
func (s *AdminService) CreateUser(ctx context.Context, sess Session, input UserInput) (*model.User, error) {
	if err := sess.require(CapManageUsers); err != nil {
		return nil, err
	}
	if input.Role != model.RoleAdmin && input.Role != model.RoleStudent {
		return nil, ErrValidation
	}
	user := model.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		Password:     input.Password,
		RecoveryHint: input.RecoveryHint,
		Role:         input.Role,
		Status:       model.StatusActive,
		JoinedAt:     time.Now().UTC(),
	}
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		if doc.UserByEmail(input.Email) != nil {
			return ErrDuplicateEmail
		}
		doc.Users = append(doc.Users, user)
		if user.Role == model.RoleStudent {
			for _, tpl := range doc.GlobalChapters {
				doc.UserChapters = append(doc.UserChapters, tpl.Instance(user.ID))
			}
		}
		doc.AppendLog(fmt.Sprintf("User provisioned: %s", user.Email), sess.Email, model.LogInfo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a typed update command to a user.
func (s *AdminService) UpdateUser(ctx context.Context, sess Session, id string, update UserUpdate) (*model.User, error) {
	if err := sess.require(CapManageUsers); err != nil {
		return nil, err
	}
	if update.Status != nil && *update.Status != model.StatusActive && *update.Status != model.StatusBlocked {
		return nil, ErrValidation
	}
	var updated model.User
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		user := doc.UserByID(id)
		if user == nil {
			return ErrNotFound
		}
		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Email != nil {
			if other := doc.UserByEmail(*update.Email); other != nil && other.ID != id {
				return ErrDuplicateEmail
			}
			user.Email = *update.Email
		}
		if update.Password != nil {
			user.Password = *update.Password
		}
		if update.Status != nil {
			user.Status = *update.Status
			doc.AppendLog(fmt.Sprintf("User status set to %s: %s", user.Status, user.Email), sess.Email, model.LogWarning)
		}
		updated = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes a user and cascades to their chapter instances and test
// results. Logs are retained as an audit-trail policy.
func (s *AdminService) DeleteUser(ctx context.Context, sess Session, id string) error {
	if err := sess.require(CapManageUsers); err != nil {
		return err
	}
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		user := doc.UserByID(id)
		if user == nil {
			return ErrNotFound
		}
		email := user.Email

		users := doc.Users[:0]
		for _, u := range doc.Users {
			if u.ID != id {
				users = append(users, u)
			}
		}
		doc.Users = users

		chapters := doc.UserChapters[:0]
		for _, ch := range doc.UserChapters {
			if ch.UserID != id {
				chapters = append(chapters, ch)
			}
		}
		doc.UserChapters = chapters

		tests := doc.Tests[:0]
		for _, t := range doc.Tests {
			if t.UserID != id {
				tests = append(tests, t)
			}
		}
		doc.Tests = tests

		doc.AppendLog(fmt.Sprintf("User deleted: %s", email), sess.Email, model.LogWarning)
		return nil
	})
	return err
}

// Stats derives counts and the serialized document footprint on demand.
func (s *AdminService) Stats(ctx context.Context, sess Session) (*SystemStats, error) {
	if err := sess.require(CapManageUsers); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	students := 0
	for _, u := range doc.Users {
		if u.Role == model.RoleStudent {
			students++
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &SystemStats{
		Students:     students,
		Questions:    len(doc.GlobalQuestions),
		TestsTaken:   len(doc.Tests),
		MasterMocks:  len(doc.MasterMocks),
		StorageBytes: len(data),
	}, nil
}
