package message

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

// PostgresStore persists messages in PostgreSQL. Party structures and check
// results are stored as JSONB; filterable scalars get their own columns.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed message store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the messages table when absent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS messages (
			id             UUID PRIMARY KEY,
			reference      TEXT NOT NULL,
			type           TEXT NOT NULL DEFAULT '',
			date           TIMESTAMPTZ NOT NULL,
			currency       TEXT NOT NULL DEFAULT '',
			amount         DOUBLE PRECISION NOT NULL DEFAULT 0,
			purpose        TEXT NOT NULL DEFAULT '',
			fees           TEXT NOT NULL DEFAULT '',
			notes          TEXT NOT NULL DEFAULT '',
			sender         JSONB NOT NULL,
			receiver       JSONB NOT NULL,
			sender_name    TEXT NOT NULL DEFAULT '',
			receiver_name  TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL,
			manual_status  BOOLEAN NOT NULL DEFAULT FALSE,
			checks         JSONB,
			blacklist_hits JSONB,
			created_at     TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS messages_reference_idx ON messages (reference);
		CREATE INDEX IF NOT EXISTS messages_status_idx ON messages (status);
		CREATE INDEX IF NOT EXISTS messages_created_at_idx ON messages (created_at DESC);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure messages schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, m *domain.Message) error {
	cols, err := encodeMessage(m)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO messages
			(id, reference, type, date, currency, amount, purpose, fees, notes,
			 sender, receiver, sender_name, receiver_name,
			 status, manual_status, checks, blacklist_hits, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
		        $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = s.db.ExecContext(ctx, query,
		m.ID, m.Reference, m.Type, m.Date, m.Currency, m.Amount,
		m.Purpose, m.Fees, m.Notes,
		cols.sender, cols.receiver, m.Sender.Name, m.Receiver.Name,
		m.Status.Disposition, m.Status.Manual, cols.checks, cols.hits,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, m *domain.Message) error {
	cols, err := encodeMessage(m)
	if err != nil {
		return err
	}
	const query = `
		UPDATE messages SET
			reference = $2, type = $3, date = $4, currency = $5, amount = $6,
			purpose = $7, fees = $8, notes = $9,
			sender = $10, receiver = $11, sender_name = $12, receiver_name = $13,
			status = $14, manual_status = $15, checks = $16, blacklist_hits = $17
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		m.ID, m.Reference, m.Type, m.Date, m.Currency, m.Amount,
		m.Purpose, m.Fees, m.Notes,
		cols.sender, cols.receiver, m.Sender.Name, m.Receiver.Name,
		m.Status.Disposition, m.Status.Manual, cols.checks, cols.hits,
	)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("message %s: %w", m.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("message %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

const messageColumns = `
	id, reference, type, date, currency, amount, purpose, fees, notes,
	sender, receiver, status, manual_status, checks, blacklist_hits, created_at
`

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("message %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages`
	where, args := buildWhere(f)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

func buildWhere(f Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		clauses = append(clauses, fmt.Sprintf(
			"(reference ILIKE %s OR sender_name ILIKE %s OR receiver_name ILIKE %s)", p, p, p))
	}
	if f.SenderName != "" {
		clauses = append(clauses, "sender_name ILIKE "+arg("%"+f.SenderName+"%"))
	}
	if f.ReceiverName != "" {
		clauses = append(clauses, "receiver_name ILIKE "+arg("%"+f.ReceiverName+"%"))
	}
	if f.Reference != "" {
		clauses = append(clauses, "reference ILIKE "+arg("%"+f.Reference+"%"))
	}
	if f.BankName != "" {
		p := arg("%" + f.BankName + "%")
		clauses = append(clauses, fmt.Sprintf(
			"(sender->>'bank_name' ILIKE %s OR receiver->>'bank_name' ILIKE %s)", p, p))
	}
	if f.Status != "" {
		clauses = append(clauses, "status = "+arg(string(f.Status)))
	}
	if f.DateFrom != nil {
		clauses = append(clauses, "date >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		clauses = append(clauses, "date <= "+arg(*f.DateTo))
	}
	if f.AmountMin != nil {
		clauses = append(clauses, "amount >= "+arg(*f.AmountMin))
	}
	if f.AmountMax != nil {
		clauses = append(clauses, "amount <= "+arg(*f.AmountMax))
	}
	return strings.Join(clauses, " AND "), args
}

type encodedColumns struct {
	sender   []byte
	receiver []byte
	checks   []byte
	hits     []byte
}

func encodeMessage(m *domain.Message) (encodedColumns, error) {
	var (
		cols encodedColumns
		err  error
	)
	if cols.sender, err = json.Marshal(m.Sender); err != nil {
		return cols, fmt.Errorf("encode sender: %w", err)
	}
	if cols.receiver, err = json.Marshal(m.Receiver); err != nil {
		return cols, fmt.Errorf("encode receiver: %w", err)
	}
	if m.Checks != nil {
		if cols.checks, err = json.Marshal(m.Checks); err != nil {
			return cols, fmt.Errorf("encode checks: %w", err)
		}
	}
	if m.BlacklistHits != nil {
		if cols.hits, err = json.Marshal(m.BlacklistHits); err != nil {
			return cols, fmt.Errorf("encode blacklist hits: %w", err)
		}
	}
	return cols, nil
}

func scanMessage(row interface{ Scan(dest ...any) error }) (*domain.Message, error) {
	var (
		m        domain.Message
		sender   []byte
		receiver []byte
		checks   []byte
		hits     []byte
	)
	err := row.Scan(
		&m.ID, &m.Reference, &m.Type, &m.Date, &m.Currency, &m.Amount,
		&m.Purpose, &m.Fees, &m.Notes,
		&sender, &receiver, &m.Status.Disposition, &m.Status.Manual,
		&checks, &hits, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sender, &m.Sender); err != nil {
		return nil, fmt.Errorf("decode sender: %w", err)
	}
	if err := json.Unmarshal(receiver, &m.Receiver); err != nil {
		return nil, fmt.Errorf("decode receiver: %w", err)
	}
	if len(checks) > 0 {
		if err := json.Unmarshal(checks, &m.Checks); err != nil {
			return nil, fmt.Errorf("decode checks: %w", err)
		}
	}
	if len(hits) > 0 {
		if err := json.Unmarshal(hits, &m.BlacklistHits); err != nil {
			return nil, fmt.Errorf("decode blacklist hits: %w", err)
		}
	}
	return &m, nil
}
