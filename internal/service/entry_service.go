package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tagebuch/internal/logger"
	"tagebuch/internal/model"
	"tagebuch/internal/repository"
)

// EntryInput carries the fields of a new entry.
type EntryInput struct {
	Title      string
	Body       string
	Correction string
	Image      *ImageUpload
}

// EntryPatch carries an update. Nil fields keep the stored value.
type EntryPatch struct {
	Title      *string
	Body       *string
	Correction *string
	Image      *ImageUpload
	// KeepImage leaves the stored image untouched even if Image is set.
	KeepImage bool
	// RemoveImage clears the stored image unless KeepImage is set.
	RemoveImage bool
}

//go:generate mockgen -source=entry_service.go -destination=mock/mock_entry_service.go -package=mock

type EntryService interface {
	// List returns all entries, newest first.
	List(ctx context.Context) ([]model.Entry, error)
	Get(ctx context.Context, id string) (model.Entry, error)
	Create(ctx context.Context, in EntryInput) (model.Entry, error)
	// Update reports false without error when id does not exist.
	Update(ctx context.Context, id string, patch EntryPatch) (model.Entry, bool, error)
	// Delete asks the Confirmer first. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
	// Replace swaps the whole collection, e.g. for an import.
	Replace(ctx context.Context, entries []model.Entry) error
	// Export returns the collection in stored order.
	Export(ctx context.Context) ([]model.Entry, error)
}

// EntryOption customizes an EntryService.
type EntryOption func(*entryService)

func WithClock(c Clock) EntryOption {
	return func(s *entryService) { s.clock = c }
}

func WithIDGenerator(g IDGenerator) EntryOption {
	return func(s *entryService) { s.ids = g }
}

func WithConfirmer(c Confirmer) EntryOption {
	return func(s *entryService) { s.confirm = c }
}

type entryService struct {
	store   repository.EntryStore
	clock   Clock
	ids     IDGenerator
	confirm Confirmer

	// mu makes each load-mutate-save cycle atomic.
	mu sync.Mutex
}

func NewEntryService(store repository.EntryStore, opts ...EntryOption) EntryService {
	s := &entryService{
		store:   store,
		clock:   RealClock{},
		ids:     UUIDGenerator{},
		confirm: ContextConfirmer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *entryService) List(ctx context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	entries, err := s.store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *entryService) Get(ctx context.Context, id string) (model.Entry, error) {
	s.mu.Lock()
	entries, err := s.store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return model.Entry{}, err
	}
	if idx := indexOf(entries, id); idx >= 0 {
		return entries[idx], nil
	}
	return model.Entry{}, ErrNotFound
}

func (s *entryService) Create(ctx context.Context, in EntryInput) (model.Entry, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" && body == "" {
		return model.Entry{}, ErrEmptyEntry
	}
	image, err := encodeImage(in.Image)
	if err != nil {
		return model.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.Load(ctx)
	if err != nil {
		return model.Entry{}, err
	}

	now := s.clock.Now().UTC()
	entry := model.Entry{
		ID:         s.ids.New(),
		Title:      title,
		Body:       body,
		Correction: strings.TrimSpace(in.Correction),
		Image:      image,
		CreatedAt:  now,
		UpdatedAt:  &now,
	}
	entries = append([]model.Entry{entry}, entries...)
	if err := s.store.Save(ctx, entries); err != nil {
		return model.Entry{}, fmt.Errorf("save entries: %w", err)
	}

	logger.Info("entry created", "module", "service", "action", "create", "resource", "entry", "result", "ok", "entry_id", entry.ID, "has_image", image != "")
	return entry, nil
}

func (s *entryService) Update(ctx context.Context, id string, patch EntryPatch) (model.Entry, bool, error) {
	var image string
	if !patch.KeepImage {
		var err error
		if image, err = encodeImage(patch.Image); err != nil {
			return model.Entry{}, false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.Load(ctx)
	if err != nil {
		return model.Entry{}, false, err
	}
	idx := indexOf(entries, id)
	if idx < 0 {
		logger.Debug("entry update skipped", "module", "service", "action", "update", "resource", "entry", "result", "skipped", "entry_id", id)
		return model.Entry{}, false, nil
	}

	entry := entries[idx]
	if patch.Title != nil {
		entry.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Body != nil {
		entry.Body = strings.TrimSpace(*patch.Body)
	}
	if patch.Correction != nil {
		entry.Correction = strings.TrimSpace(*patch.Correction)
	}
	if !entry.HasContent() {
		return model.Entry{}, false, ErrEmptyEntry
	}
	switch {
	case patch.KeepImage:
	case image != "":
		entry.Image = image
	case patch.RemoveImage:
		entry.Image = ""
	}
	now := s.clock.Now().UTC()
	entry.UpdatedAt = &now

	entries[idx] = entry
	if err := s.store.Save(ctx, entries); err != nil {
		return model.Entry{}, false, fmt.Errorf("save entries: %w", err)
	}

	logger.Info("entry updated", "module", "service", "action", "update", "resource", "entry", "result", "ok", "entry_id", id)
	return entry, true, nil
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	if !s.confirm.Confirm(ctx, DeletePrompt) {
		return ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(entries, id)
	if idx < 0 {
		return nil
	}
	entries = append(entries[:idx], entries[idx+1:]...)
	if err := s.store.Save(ctx, entries); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}

	logger.Info("entry deleted", "module", "service", "action", "delete", "resource", "entry", "result", "ok", "entry_id", id)
	return nil
}

func (s *entryService) Replace(ctx context.Context, entries []model.Entry) error {
	seen := make(map[string]bool, len(entries))
	out := make([]model.Entry, 0, len(entries))
	now := s.clock.Now().UTC()
	for i, e := range entries {
		if strings.TrimSpace(e.Title) == "" && strings.TrimSpace(e.Body) == "" {
			return fmt.Errorf("record %d: %w", i, ErrEmptyEntry)
		}
		if e.ID == "" {
			e.ID = s.ids.New()
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate entry id %s", ErrInvalid, e.ID)
		}
		seen[e.ID] = true
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		out = append(out, e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, out); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	logger.Info("entries replaced", "module", "service", "action", "import", "resource", "entry", "result", "ok", "count", len(out))
	return nil
}

func (s *entryService) Export(ctx context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

func indexOf(entries []model.Entry, id string) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}
