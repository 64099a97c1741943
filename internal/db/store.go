package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"voicecmd/internal/command"
)

var (
	ErrAliasInvalid  = errors.New("invalid company alias")
	ErrAliasNotFound = errors.New("company alias not found")
)

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

type Store struct {
	pool *pgxpool.Pool
}

// AliasRecord is one operator-managed company alias.
type AliasRecord struct {
	ID        int64
	Alias     string
	Ticker    string
	CreatedAt time.Time
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS company_aliases (
			id BIGSERIAL PRIMARY KEY,
			alias TEXT NOT NULL UNIQUE,
			ticker TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_company_aliases_ticker ON company_aliases(ticker);`,
	}

	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeAlias validates an alias/ticker pair and returns the stored form.
func NormalizeAlias(alias, ticker string) (string, string, error) {
	a := command.Normalize(alias)
	if a == "" {
		return "", "", fmt.Errorf("%w: alias is empty", ErrAliasInvalid)
	}
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerPattern.MatchString(t) {
		return "", "", fmt.Errorf("%w: ticker %q", ErrAliasInvalid, ticker)
	}
	return a, t, nil
}

func (s *Store) UpsertAlias(ctx context.Context, alias, ticker string) (AliasRecord, error) {
	a, t, err := NormalizeAlias(alias, ticker)
	if err != nil {
		return AliasRecord{}, err
	}

	var out AliasRecord
	err = s.pool.QueryRow(ctx, `
		INSERT INTO company_aliases(alias, ticker)
		VALUES ($1, $2)
		ON CONFLICT (alias)
		DO UPDATE SET ticker = EXCLUDED.ticker, updated_at = NOW()
		RETURNING id, alias, ticker, created_at
	`, a, t).Scan(&out.ID, &out.Alias, &out.Ticker, &out.CreatedAt)
	if err != nil {
		return AliasRecord{}, err
	}
	return out, nil
}

func (s *Store) DeleteAlias(ctx context.Context, alias string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM company_aliases WHERE alias=$1`, command.Normalize(alias))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAliasNotFound
	}
	return nil
}

func (s *Store) ListAliases(ctx context.Context) ([]AliasRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, alias, ticker, created_at
		FROM company_aliases
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AliasRecord, 0, 16)
	for rows.Next() {
		var r AliasRecord
		if err := rows.Scan(&r.ID, &r.Alias, &r.Ticker, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadCompanies returns the stored aliases as gazetteer entries.
func (s *Store) LoadCompanies(ctx context.Context) ([]command.CompanyEntry, error) {
	records, err := s.ListAliases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list company aliases: %w", err)
	}
	return GroupCompanies(records), nil
}

// GroupCompanies folds alias records into one entry per ticker. Tickers keep
// the order of their first alias, and aliases keep record order.
func GroupCompanies(records []AliasRecord) []command.CompanyEntry {
	index := make(map[string]int, len(records))
	out := make([]command.CompanyEntry, 0, len(records))
	for _, r := range records {
		i, ok := index[r.Ticker]
		if !ok {
			i = len(out)
			index[r.Ticker] = i
			out = append(out, command.CompanyEntry{TickerSymbol: r.Ticker})
		}
		out[i].Aliases = append(out[i].Aliases, r.Alias)
	}
	return out
}

// LoadInterpreter builds an interpreter whose gazetteer is extended with the
// stored aliases. An empty dsn yields the built-in interpreter. The store is
// read once; later alias changes need a new interpreter.
func LoadInterpreter(ctx context.Context, dsn string, logger *zap.Logger) (*command.Interpreter, error) {
	if strings.TrimSpace(dsn) == "" {
		return command.Default(), nil
	}

	store, err := New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	entries, err := store.LoadCompanies(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("company aliases loaded", zap.Int("companies", len(entries)))
	return command.New(command.WithCompanies(entries...)), nil
}
