package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tagebuch/internal/logger"
	"tagebuch/internal/model"
)

// EntriesSlotKey namespaces the persisted entry collection.
const EntriesSlotKey = "deutsch_tagebuch_entries_v2"

//go:generate mockgen -source=entry_store.go -destination=mock/mock_entry_store.go -package=mock

// EntryStore persists the whole entry collection as one JSON document.
type EntryStore interface {
	// Load returns an empty collection when nothing is stored or the stored
	// document cannot be decoded. Only storage failures are returned.
	Load(ctx context.Context) ([]model.Entry, error)
	// Save replaces the stored collection with entries in one write.
	Save(ctx context.Context, entries []model.Entry) error
}

type entryStore struct {
	slots SlotRepository
	key   string
}

func NewEntryStore(slots SlotRepository) EntryStore {
	return &entryStore{slots: slots, key: EntriesSlotKey}
}

func (s *entryStore) Load(ctx context.Context) ([]model.Entry, error) {
	slot, err := s.slots.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read entries slot: %w", err)
	}
	if slot == nil || slot.Value == "" {
		return []model.Entry{}, nil
	}

	var entries []model.Entry
	if err := json.Unmarshal([]byte(slot.Value), &entries); err != nil {
		logger.Error("entry collection unreadable, starting empty", "module", "repository", "action", "load", "resource", "entry", "result", "failed", "key", s.key, "bytes", len(slot.Value), "error", err)
		return []model.Entry{}, nil
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

func (s *entryStore) Save(ctx context.Context, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := s.slots.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("write entries slot: %w", err)
	}
	logger.Debug("entry collection saved", "module", "repository", "action", "save", "resource", "entry", "result", "ok", "count", len(entries))
	return nil
}
