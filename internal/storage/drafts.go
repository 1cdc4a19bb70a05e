package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SaveDraft upserts the draft payload for a modality. One draft per
// modality; resubmitting replaces the previous draft.
func (s *SQLiteStore) SaveDraft(ctx context.Context, modality, payload string) error {
	if modality == "" {
		return fmt.Errorf("modality is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (id, modality, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(modality) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), modality, payload)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the saved payload for a modality, or "" when none
// exists.
func (s *SQLiteStore) LoadDraft(ctx context.Context, modality string) (string, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM drafts WHERE modality = ?`, modality).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load draft: %w", err)
	}
	return payload, nil
}

// ClearDraft removes the draft for a modality. Clearing an absent draft
// succeeds.
func (s *SQLiteStore) ClearDraft(ctx context.Context, modality string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE modality = ?`, modality); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
