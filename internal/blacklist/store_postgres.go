package blacklist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

// PostgresStore persists blacklist records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed blacklist store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the blacklist table when absent. Called once at
// startup; deployments with managed migrations can skip it.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS blacklist_records (
			id              UUID PRIMARY KEY,
			inn             TEXT,
			full_name_en    TEXT NOT NULL DEFAULT '',
			full_name_ru    TEXT NOT NULL DEFAULT '',
			short_name_en   TEXT NOT NULL DEFAULT '',
			short_name_ru   TEXT NOT NULL DEFAULT '',
			abbreviation_en TEXT NOT NULL DEFAULT '',
			abbreviation_ru TEXT NOT NULL DEFAULT '',
			notes           TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS blacklist_records_inn_idx
			ON blacklist_records (inn) WHERE inn IS NOT NULL;
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure blacklist schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, rec *domain.BlacklistRecord) error {
	const query = `
		INSERT INTO blacklist_records
			(id, inn, full_name_en, full_name_ru, short_name_en, short_name_ru,
			 abbreviation_en, abbreviation_ru, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, nullString(rec.INN),
		rec.Names.FullEn, rec.Names.FullRu,
		rec.Names.ShortEn, rec.Names.ShortRu,
		rec.Names.AbbrEn, rec.Names.AbbrRu,
		rec.Notes, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create blacklist record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, rec *domain.BlacklistRecord) error {
	const query = `
		UPDATE blacklist_records SET
			inn = $2, full_name_en = $3, full_name_ru = $4,
			short_name_en = $5, short_name_ru = $6,
			abbreviation_en = $7, abbreviation_ru = $8, notes = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		rec.ID, nullString(rec.INN),
		rec.Names.FullEn, rec.Names.FullRu,
		rec.Names.ShortEn, rec.Names.ShortRu,
		rec.Names.AbbrEn, rec.Names.AbbrRu,
		rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("update blacklist record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update blacklist record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("blacklist record %s: %w", rec.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blacklist_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blacklist record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blacklist record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("blacklist record %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

const selectColumns = `
	id, inn, full_name_en, full_name_ru, short_name_en, short_name_ru,
	abbreviation_en, abbreviation_ru, notes, created_at
`

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.BlacklistRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM blacklist_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("blacklist record %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find blacklist record: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) FindByINN(ctx context.Context, inn string) (*domain.BlacklistRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM blacklist_records WHERE inn = $1`, inn)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("blacklist record inn=%s: %w", inn, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find blacklist record by inn: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*domain.BlacklistRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM blacklist_records ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list blacklist records: %w", err)
	}
	defer rows.Close()

	var out []*domain.BlacklistRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blacklist record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blacklist records: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.BlacklistRecord, error) {
	var (
		rec domain.BlacklistRecord
		inn sql.NullString
	)
	err := row.Scan(
		&rec.ID, &inn,
		&rec.Names.FullEn, &rec.Names.FullRu,
		&rec.Names.ShortEn, &rec.Names.ShortRu,
		&rec.Names.AbbrEn, &rec.Names.AbbrRu,
		&rec.Notes, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.INN = inn.String
	return &rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
