package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FactionRepository handles the template → faction table.
type FactionRepository struct {
	pool *pgxpool.Pool
}

// NewFactionRepository creates a new faction repository.
func NewFactionRepository(pool *pgxpool.Pool) *FactionRepository {
	return &FactionRepository{pool: pool}
}

// LoadAll returns every template faction assignment.
func (r *FactionRepository) LoadAll(ctx context.Context) (map[int32]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT template_id, faction FROM mob_factions`)
	if err != nil {
		return nil, fmt.Errorf("querying mob factions: %w", err)
	}
	defer rows.Close()

	out := make(map[int32]string)
	for rows.Next() {
		var (
			templateID int32
			faction    string
		)
		if err := rows.Scan(&templateID, &faction); err != nil {
			return nil, fmt.Errorf("scanning mob faction: %w", err)
		}
		out[templateID] = faction
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mob factions: %w", err)
	}
	return out, nil
}

// Upsert assigns a faction to a template.
func (r *FactionRepository) Upsert(ctx context.Context, templateID int32, faction string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO mob_factions (template_id, faction, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (template_id) DO UPDATE
		SET faction = EXCLUDED.faction, updated_at = now()
	`, templateID, faction)
	if err != nil {
		return fmt.Errorf("upserting faction of template %d: %w", templateID, err)
	}
	return nil
}

// UpsertAll writes a whole table in one transaction.
func (r *FactionRepository) UpsertAll(ctx context.Context, entries map[int32]string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for id, faction := range entries {
		batch.Queue(`
			INSERT INTO mob_factions (template_id, faction, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (template_id) DO UPDATE
			SET faction = EXCLUDED.faction, updated_at = now()
		`, id, faction)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting mob factions: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing mob factions: %w", err)
	}
	return nil
}

// Delete removes the assignment of a template.
func (r *FactionRepository) Delete(ctx context.Context, templateID int32) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM mob_factions WHERE template_id = $1`, templateID); err != nil {
		return fmt.Errorf("deleting faction of template %d: %w", templateID, err)
	}
	return nil
}
