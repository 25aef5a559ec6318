package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/reelflip/jeeprep-api/model"
)

// Store is the document store every domain operation goes through. Each
// operation wraps a full load, mutate, save cycle; the complete document is
// written back on every mutation, never a partial one.
type Store struct {
	kv  KV
	key string
}

// NewStore creates a document store over the given backend.
func NewStore(kv KV) *Store {
	return &Store{kv: kv, key: StorageKey}
}

// Load reads the stored document. A missing document is replaced with the
// seed document; a stale version tag triggers a one-step migration. Both are
// persisted before returning.
func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if !ok {
		doc := SeedDocument()
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
		log.Println("Seeded fresh document at", s.key)
		return doc, nil
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if doc.Version != model.SchemaVersion {
		migrate(&doc)
		if err := s.Save(ctx, &doc); err != nil {
			return nil, err
		}
		log.Println("Migrated document to schema version", model.SchemaVersion)
	}

	return &doc, nil
}

// Save serializes and stores the full document in a single write. A backend
// failure is fatal to the triggering operation; there is no retry.
func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Mutate runs fn inside a load→mutate→save cycle and returns the persisted
// document. If fn returns an error nothing is written.
func (s *Store) Mutate(ctx context.Context, fn func(doc *model.Document) error) (*model.Document, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// migrate backfills missing top-level fields with defaults and stamps the
// current schema version. All populated fields are preserved unchanged.
func migrate(doc *model.Document) {
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	if doc.GlobalChapters == nil {
		doc.GlobalChapters = []model.Chapter{}
	}
	if doc.GlobalQuestions == nil {
		doc.GlobalQuestions = []model.Question{}
	}
	if doc.UserChapters == nil {
		doc.UserChapters = []model.Chapter{}
	}
	if doc.Tests == nil {
		doc.Tests = []model.MockTestResult{}
	}
	if doc.Logs == nil {
		doc.Logs = []model.SystemLog{}
	}
	if doc.MasterMocks == nil {
		doc.MasterMocks = []model.MasterMockTest{}
	}
	if doc.SystemConfig.ActiveModel == "" {
		doc.SystemConfig = model.DefaultSystemConfig()
	}
	doc.Version = model.SchemaVersion
}
