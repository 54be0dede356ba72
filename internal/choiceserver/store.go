package choiceserver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	apperrors "autolight/internal/errors"
)

// DefaultLimit caps result rows when the request does not ask for fewer.
const DefaultLimit = 20

// Choice is one row offered to the widget.
type Choice struct {
	Value string
	Label string
}

// Store holds the countries and cities served as choices.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and seeds it when
// empty. An empty path opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if strings.TrimSpace(dsn) == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStoreFailed, "open sqlite db", err)
	}
	if dsn == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.seed(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA foreign_keys=ON;`,
		`CREATE TABLE IF NOT EXISTS countries (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS cities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			country TEXT NOT NULL,
			name TEXT NOT NULL,
			UNIQUE(country, name),
			FOREIGN KEY(country) REFERENCES countries(code) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cities_country ON cities(country);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return apperrors.New(apperrors.CodeStoreFailed, "migrate", err)
		}
	}
	return nil
}

func (s *Store) seed() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM countries`).Scan(&n); err != nil {
		return apperrors.New(apperrors.CodeStoreFailed, "count countries", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.New(apperrors.CodeStoreFailed, "begin seed", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range seedCountries {
		if _, err := tx.Exec(`INSERT INTO countries (code, name) VALUES (?, ?)`, c.code, c.name); err != nil {
			return apperrors.New(apperrors.CodeStoreFailed, fmt.Sprintf("seed country %s", c.code), err)
		}
		for _, city := range c.cities {
			if _, err := tx.Exec(`INSERT INTO cities (country, name) VALUES (?, ?)`, c.code, city); err != nil {
				return apperrors.New(apperrors.CodeStoreFailed, fmt.Sprintf("seed city %s", city), err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.New(apperrors.CodeStoreFailed, "commit seed", err)
	}
	return nil
}

// AddCountry inserts a country; existing codes are left untouched.
func (s *Store) AddCountry(ctx context.Context, code, name string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO countries (code, name) VALUES (?, ?)`, code, name)
	if err != nil {
		return apperrors.New(apperrors.CodeStoreFailed, "add country", err)
	}
	return nil
}

// AddCity inserts a city under country.
func (s *Store) AddCity(ctx context.Context, country, name string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO cities (country, name) VALUES (?, ?)`, country, name)
	if err != nil {
		return apperrors.New(apperrors.CodeStoreFailed, "add city", err)
	}
	return nil
}

// SearchCountries returns countries whose name contains q, prefix matches
// first. The choice value is the country code.
func (s *Store) SearchCountries(ctx context.Context, q string, limit int) ([]Choice, error) {
	return s.search(ctx,
		`SELECT code, name FROM countries
		WHERE name LIKE ?1 ESCAPE '\'
		ORDER BY CASE WHEN name LIKE ?2 ESCAPE '\' THEN 0 ELSE 1 END, name
		LIMIT ?3`,
		q, limit)
}

// SearchCities returns cities whose name contains q. A non-empty country
// code narrows the search to that country.
func (s *Store) SearchCities(ctx context.Context, q, country string, limit int) ([]Choice, error) {
	return s.search(ctx,
		`SELECT name, name FROM cities
		WHERE name LIKE ?1 ESCAPE '\' AND (?4 = '' OR country = ?4)
		ORDER BY CASE WHEN name LIKE ?2 ESCAPE '\' THEN 0 ELSE 1 END, name
		LIMIT ?3`,
		q, limit, strings.TrimSpace(country))
}

// search binds ?1 (contains pattern), ?2 (prefix pattern), ?3 (limit) and
// then extra.
func (s *Store) search(ctx context.Context, query, q string, limit int, extra ...any) ([]Choice, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	term := escapeLike(strings.TrimSpace(q))
	args := append([]any{"%" + term + "%", term + "%", limit}, extra...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStoreFailed, "search choices", err)
	}
	defer rows.Close()

	var out []Choice
	for rows.Next() {
		var c Choice
		if err := rows.Scan(&c.Value, &c.Label); err != nil {
			return nil, apperrors.New(apperrors.CodeStoreFailed, "scan choice", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.New(apperrors.CodeStoreFailed, "iterate choices", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
