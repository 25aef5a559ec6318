package services

import (
	"context"

	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
)

// ConfigService reads and merge-writes the system-wide configuration
// singleton. Every write appends a log entry.
type ConfigService struct {
	store *database.Store
}

// NewConfigService creates a new config service.
func NewConfigService(store *database.Store) *ConfigService {
	return &ConfigService{store: store}
}

// ConfigUpdate names exactly the fields a config write may change.
type ConfigUpdate struct {
	ActiveModel *string
}

// Get returns the configuration singleton.
func (s *ConfigService) Get(ctx context.Context, sess Session) (*model.SystemConfig, error) {
	if err := sess.require(CapManageConfig); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	cfg := doc.SystemConfig
	return &cfg, nil
}

// Set merges the update into the singleton and logs the change.
func (s *ConfigService) Set(ctx context.Context, sess Session, update ConfigUpdate) (*model.SystemConfig, error) {
	if err := sess.require(CapManageConfig); err != nil {
		return nil, err
	}
	var updated model.SystemConfig
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		if update.ActiveModel != nil {
			doc.SystemConfig.ActiveModel = *update.ActiveModel
		}
		doc.AppendLog("System config updated", sess.Email, model.LogInfo)
		updated = doc.SystemConfig
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
