package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"perspective/internal/archive"
)

// Postgres persists archive entries in PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS readings (
//	    id             UUID PRIMARY KEY,
//	    email          TEXT NOT NULL,
//	    category       TEXT NOT NULL,
//	    question       TEXT NOT NULL,
//	    spread_name    TEXT NOT NULL,
//	    summary        TEXT NOT NULL,
//	    final_guidance TEXT NOT NULL,
//	    pulls          JSONB NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX IF NOT EXISTS readings_email_idx ON readings (email, created_at DESC);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, e *archive.Entry) error {
	pulls, err := json.Marshal(e.Pulls)
	if err != nil {
		return fmt.Errorf("encode pulls: %w", err)
	}

	query := `
		INSERT INTO readings (id, email, category, question, spread_name, summary, final_guidance, pulls, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		e.ID, strings.ToLower(e.Email), e.Category, e.Question, e.SpreadName,
		e.Summary, e.FinalGuidance, pulls, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save reading: %w", err)
	}
	return nil
}

func (s *Postgres) ListByEmail(ctx context.Context, email string) ([]*archive.Entry, error) {
	query := `
		SELECT id, email, category, question, spread_name, summary, final_guidance, pulls, created_at
		FROM readings
		WHERE email = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var out []*archive.Entry
	for rows.Next() {
		var e archive.Entry
		var pulls []byte
		if err := rows.Scan(&e.ID, &e.Email, &e.Category, &e.Question, &e.SpreadName,
			&e.Summary, &e.FinalGuidance, &pulls, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		if err := json.Unmarshal(pulls, &e.Pulls); err != nil {
			return nil, fmt.Errorf("decode pulls: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return out, nil
}
