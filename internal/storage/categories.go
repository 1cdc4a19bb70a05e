package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhatminh/vifin/internal/model"
)

// CacheCategories replaces the local category cache with the given catalog.
func (s *SQLiteStore) CacheCategories(ctx context.Context, categories []model.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear category cache: %w", err)
	}

	for _, cat := range categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, icon, color, type, cached_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			cat.ID, cat.Name, cat.Icon, cat.Color, string(cat.Type)); err != nil {
			return fmt.Errorf("failed to cache category %q: %w", cat.Name, err)
		}
	}

	return tx.Commit()
}

// CachedCategories returns the locally cached category catalog.
func (s *SQLiteStore) CachedCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(icon, ''), COALESCE(color, ''), type FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category cache: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var catType string
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color, &catType); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Type = model.CategoryType(catType)
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// ResolveCategory finds a cached category by case-insensitive name match,
// for turning --category flags into IDs.
func (s *SQLiteStore) ResolveCategory(ctx context.Context, name string) (*model.Category, error) {
	categories, err := s.CachedCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return &cat, nil
		}
	}
	return nil, fmt.Errorf("unknown category %q (run 'vifin categories' to refresh the list)", name)
}
