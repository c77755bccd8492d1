package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
	"github.com/aussiebroadwan/dealerseed/internal/seed/store"
	_ "modernc.org/sqlite"
)

const (
	kindLocation    = "location"
	kindRateProgram = "rate_program"
)

// Store keeps documents as JSON rows in a local SQLite file.
type Store struct {
	db  *sql.DB
	dsn string
}

var _ store.Store = (*Store)(nil)

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

// EnsureContainer runs the migrations.
func (s *Store) EnsureContainer(_ context.Context) error {
	if err := s.ApplyMigrations(); err != nil {
		return fmt.Errorf("sqlite: migrate %s: %w", s.dsn, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) PutLocation(ctx context.Context, l domain.Location) error {
	if err := store.ValidateLocation(l); err != nil {
		return err
	}
	return s.put(ctx, l.PartitionKey, l.LocationID, kindLocation, l.DealerID, l)
}

func (s *Store) PutRateProgram(ctx context.Context, p domain.RateProgram) error {
	if err := store.ValidateRateProgram(p); err != nil {
		return err
	}
	return s.put(ctx, p.PartitionKey, p.RateProgramID, kindRateProgram, p.DealerID, p)
}

func (s *Store) GetLocation(ctx context.Context, dealerID, locationID uuid.UUID) (domain.Location, error) {
	var l domain.Location
	err := s.get(ctx, domain.LocationPartitionKey(dealerID, locationID), locationID, kindLocation, &l)
	return l, err
}

func (s *Store) GetRateProgram(ctx context.Context, dealerID, id uuid.UUID) (domain.RateProgram, error) {
	var p domain.RateProgram
	if err := s.get(ctx, domain.RateProgramPartitionKey(id), id, kindRateProgram, &p); err != nil {
		return domain.RateProgram{}, err
	}
	if p.DealerID != dealerID {
		return domain.RateProgram{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListLocations(ctx context.Context, dealerID uuid.UUID) ([]domain.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE dealer_id = ? AND kind = ? ORDER BY id`,
		dealerID.String(), kindLocation,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var l domain.Location
		if err := json.Unmarshal([]byte(body), &l); err != nil {
			return nil, fmt.Errorf("sqlite: decode location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) put(ctx context.Context, partitionKey string, id uuid.UUID, kind string, dealerID uuid.UUID, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("sqlite: encode %s: %w", kind, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (partition_key, id, kind, dealer_id, body)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (partition_key, id) DO UPDATE SET
			body = excluded.body,
			updated_at = CURRENT_TIMESTAMP`,
		partitionKey, id.String(), kind, dealerID.String(), string(body),
	)
	return err
}

func (s *Store) get(ctx context.Context, partitionKey string, id uuid.UUID, kind string, dst any) error {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE partition_key = ? AND id = ? AND kind = ?`,
		partitionKey, id.String(), kind,
	).Scan(&body)
	if err != nil {
		return mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("sqlite: decode %s: %w", kind, err)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
