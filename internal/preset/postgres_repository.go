package preset

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL preset repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetPreset retrieves a preset by name.
func (r *PostgresRepository) GetPreset(ctx context.Context, name string) (*Preset, error) {
	query := `
		SELECT id, name, profile, options, created_at, updated_at
		FROM routing_presets
		WHERE name = $1
	`

	var (
		p           Preset
		optionsJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, name).Scan(
		&p.ID,
		&p.Name,
		&p.Profile,
		&optionsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(optionsJSON, &p.Options); err != nil {
		return nil, err
	}

	return &p, nil
}

// ListPresets retrieves all presets ordered by name.
func (r *PostgresRepository) ListPresets(ctx context.Context) ([]*Preset, error) {
	query := `
		SELECT id, name, profile, options, created_at, updated_at
		FROM routing_presets
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		var (
			p           Preset
			optionsJSON []byte
		)

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Profile,
			&optionsJSON,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(optionsJSON, &p.Options); err != nil {
			return nil, err
		}

		presets = append(presets, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return presets, nil
}

// CreatePreset stores a new preset.
func (r *PostgresRepository) CreatePreset(ctx context.Context, p *Preset) error {
	query := `
		INSERT INTO routing_presets (id, name, profile, options, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	optionsJSON, err := json.Marshal(p.Options)
	if err != nil {
		return err
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = r.pool.Exec(ctx, query, p.ID, p.Name, p.Profile, optionsJSON, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

// UpdatePreset replaces the profile and options of a stored preset.
func (r *PostgresRepository) UpdatePreset(ctx context.Context, p *Preset) error {
	query := `
		UPDATE routing_presets
		SET profile = $2, options = $3, updated_at = $4
		WHERE name = $1
	`

	optionsJSON, err := json.Marshal(p.Options)
	if err != nil {
		return err
	}

	p.UpdatedAt = time.Now()

	tag, err := r.pool.Exec(ctx, query, p.Name, p.Profile, optionsJSON, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPresetNotFound
	}
	return nil
}

// DeletePreset removes a preset by name.
func (r *PostgresRepository) DeletePreset(ctx context.Context, name string) error {
	query := `DELETE FROM routing_presets WHERE name = $1`

	tag, err := r.pool.Exec(ctx, query, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPresetNotFound
	}
	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
