package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tagebuch/internal/model"
)

//go:generate mockgen -source=slot_repository.go -destination=mock/mock_slot_repository.go -package=mock

// SlotRepository is the key/value store every persisted value lives in.
type SlotRepository interface {
	// Get returns nil, nil when the key does not exist.
	Get(ctx context.Context, key string) (*model.Slot, error)
	Set(ctx context.Context, key, value string) error
	GetByPrefix(ctx context.Context, prefix string) ([]model.Slot, error)
	Delete(ctx context.Context, key string) error
}

type slotRepository struct {
	db  dbtx
	now func() time.Time
}

// NewSlotRepository creates a new slot repository.
func NewSlotRepository(db dbtx) SlotRepository {
	return &slotRepository{db: db, now: time.Now}
}

func (r *slotRepository) Get(ctx context.Context, key string) (*model.Slot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, value, updated_at FROM kv WHERE key = ?
	`, key)

	var s model.Slot
	var updatedAt string
	if err := row.Scan(&s.Key, &s.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	s.UpdatedAt, _ = parseTime(updatedAt)
	return &s, nil
}

// Set creates or replaces a slot in a single statement.
func (r *slotRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, formatTime(r.now()))
	return err
}

func (r *slotRepository) GetByPrefix(ctx context.Context, prefix string) ([]model.Slot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value, updated_at FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key
	`, len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.Slot
	for rows.Next() {
		var s model.Slot
		var updatedAt string
		if err := rows.Scan(&s.Key, &s.Value, &updatedAt); err != nil {
			return nil, err
		}
		s.UpdatedAt, _ = parseTime(updatedAt)
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *slotRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}
