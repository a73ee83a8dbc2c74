package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	_ "modernc.org/sqlite"

	"voxmesh/internal/world"
)

// Store persists columns in a SQLite database, one zstd-compressed row per
// column origin.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the store at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty store path").WithType(ErrTypeDB)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.New("could not create store directory").
			WithType(ErrTypeDB).
			WithTag("path", path).
			Wrap(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New("could not open store").
			WithType(ErrTypeDB).
			WithTag("path", path).
			Wrap(err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, errors.New("could not initialize store").
			WithType(ErrTypeDB).
			WithTag("path", path).
			Wrap(err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS columns (
			x INTEGER NOT NULL,
			z INTEGER NOT NULL,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (x, z)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores col at the column origin (x, z), replacing any previous data.
func (s *Store) Put(ctx context.Context, x, z int, col *world.BlockColumn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO columns (x, z, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (x, z) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		x, z, EncodeColumn(col), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.New("could not put column").
			WithType(ErrTypeDB).
			WithTag("x", x).
			WithTag("z", z).
			Wrap(err)
	}
	return nil
}

// Get loads the column at origin (x, z).
func (s *Store) Get(ctx context.Context, x, z int, shapes world.ShapeSource) (*world.BlockColumn, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM columns WHERE x = ? AND z = ?`, x, z).Scan(&data)
	if isNoRows(err) {
		return nil, errors.New("column not found").
			WithType(ErrTypeNotFound).
			WithTag("x", x).
			WithTag("z", z)
	}
	if err != nil {
		return nil, errors.New("could not get column").
			WithType(ErrTypeDB).
			WithTag("x", x).
			WithTag("z", z).
			Wrap(err)
	}

	col, err := DecodeColumn(data, shapes)
	if err != nil {
		return nil, errors.New("could not decode column").
			WithType(ErrTypeCorrupt).
			WithTag("x", x).
			WithTag("z", z).
			Wrap(err)
	}
	return col, nil
}

// isNoRows reports whether err is, or wraps, sql.ErrNoRows.
func isNoRows(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}

// List returns the origins of all stored columns ordered by x then z.
func (s *Store) List(ctx context.Context) ([]world.ColumnCoord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT x, z FROM columns ORDER BY x, z`)
	if err != nil {
		return nil, errors.New("could not list columns").WithType(ErrTypeDB).Wrap(err)
	}
	defer rows.Close()

	var coords []world.ColumnCoord
	for rows.Next() {
		var c world.ColumnCoord
		if err := rows.Scan(&c.X, &c.Z); err != nil {
			return nil, errors.New("could not scan column").WithType(ErrTypeDB).Wrap(err)
		}
		coords = append(coords, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("could not list columns").WithType(ErrTypeDB).Wrap(err)
	}
	return coords, nil
}

// Delete removes the column at origin (x, z). It returns false when no
// column was stored there.
func (s *Store) Delete(ctx context.Context, x, z int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM columns WHERE x = ? AND z = ?`, x, z)
	if err != nil {
		return false, errors.New("could not delete column").
			WithType(ErrTypeDB).
			WithTag("x", x).
			WithTag("z", z).
			Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.New("could not delete column").WithType(ErrTypeDB).Wrap(err)
	}
	return n > 0, nil
}

// LoadInto adds every stored column to w and returns how many were loaded.
func (s *Store) LoadInto(ctx context.Context, w *world.World, shapes world.ShapeSource) (int, error) {
	coords, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range coords {
		col, err := s.Get(ctx, c.X, c.Z, shapes)
		if err != nil {
			return 0, err
		}
		w.AddColumn(c.X, c.Z, col)
	}
	return len(coords), nil
}
