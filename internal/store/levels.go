package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hollowmoor/hollowmoor/server/internal/dungeon"
	"github.com/hollowmoor/hollowmoor/server/internal/wild"
)

// ErrLevelNotFound is returned when a level lookup fails.
var ErrLevelNotFound = errors.New("level not found")

// ErrLevelExists is returned when a level with the same checksum is
// already stored.
var ErrLevelExists = errors.New("level already stored")

// Level kinds as stored in the levels table.
const (
	KindDungeon    = "dungeon"
	KindWilderness = "wilderness"
)

// LevelRecord is one stored level.
type LevelRecord struct {
	ID        int64
	Kind      string
	Seed      int64
	Width     int
	Height    int
	Depth     int
	Rating    int
	Checksum  string
	CreatedAt time.Time
}

// SaveDungeon stores a generated dungeon level and returns its id.
func (s *Store) SaveDungeon(d *dungeon.DungeonLevel, seed int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.insertReturningID(tx,
		`INSERT INTO levels (kind, seed, width, height, depth, rating, checksum)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		KindDungeon, seed, d.Width, d.Height, d.Depth, d.Rating, d.Grid.ChecksumHex(),
	)
	if err != nil {
		if s.dialect.IsDuplicateKeyError(err) {
			return 0, ErrLevelExists
		}
		return 0, fmt.Errorf("failed to save dungeon: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// SaveWilderness stores a generated wilderness map and its sites.
func (s *Store) SaveWilderness(m *wild.Map, seed int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.insertReturningID(tx,
		`INSERT INTO levels (kind, seed, width, height, checksum)
		 VALUES (?, ?, ?, ?, ?)`,
		KindWilderness, seed, m.Width, m.Height, m.Grid.ChecksumHex(),
	)
	if err != nil {
		if s.dialect.IsDuplicateKeyError(err) {
			return 0, ErrLevelExists
		}
		return 0, fmt.Errorf("failed to save wilderness: %w", err)
	}

	insertPlace := s.qb.Build(
		`INSERT INTO places (level_id, key, kind, x, y, size, seed, population, monster_hint)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, p := range m.Places {
		if _, err := tx.Exec(insertPlace,
			id, p.Key, p.Kind.String(), p.X, p.Y, p.Size, p.Seed,
			p.Population, p.MonsterHint); err != nil {
			return 0, fmt.Errorf("failed to save place %q: %w", p.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// GetLevel retrieves one stored level by id.
func (s *Store) GetLevel(id int64) (*LevelRecord, error) {
	row := s.db.QueryRow(s.qb.Build(
		`SELECT id, kind, seed, width, height, depth, rating, checksum, created_at
		 FROM levels WHERE id = ?`), id)
	return scanLevel(row)
}

// GetLevelByChecksum retrieves a stored level by its grid checksum.
func (s *Store) GetLevelByChecksum(checksum string) (*LevelRecord, error) {
	row := s.db.QueryRow(s.qb.Build(
		`SELECT id, kind, seed, width, height, depth, rating, checksum, created_at
		 FROM levels WHERE checksum = ?`), checksum)
	return scanLevel(row)
}

func scanLevel(row *sql.Row) (*LevelRecord, error) {
	var rec LevelRecord
	err := row.Scan(&rec.ID, &rec.Kind, &rec.Seed, &rec.Width, &rec.Height,
		&rec.Depth, &rec.Rating, &rec.Checksum, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to load level: %w", err)
	}
	return &rec, nil
}

// ListLevels returns all stored levels of one kind, newest first.
// An empty kind lists everything.
func (s *Store) ListLevels(kind string) ([]LevelRecord, error) {
	query := `SELECT id, kind, seed, width, height, depth, rating, checksum, created_at
		 FROM levels`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(s.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var rec LevelRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Seed, &rec.Width, &rec.Height,
			&rec.Depth, &rec.Rating, &rec.Checksum, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetPlaces returns the sites stored for a wilderness level.
func (s *Store) GetPlaces(levelID int64) ([]wild.Place, error) {
	rows, err := s.db.Query(s.qb.Build(
		`SELECT key, kind, x, y, size, seed, population, monster_hint
		 FROM places WHERE level_id = ? ORDER BY id`), levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}
	defer rows.Close()

	var places []wild.Place
	for rows.Next() {
		var p wild.Place
		var kind string
		if err := rows.Scan(&p.Key, &kind, &p.X, &p.Y, &p.Size, &p.Seed,
			&p.Population, &p.MonsterHint); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		p.Kind = parsePlaceKind(kind)
		places = append(places, p)
	}
	return places, rows.Err()
}

// DeleteLevel removes a stored level; places cascade.
func (s *Store) DeleteLevel(id int64) error {
	result, err := s.db.Exec(s.qb.Build(`DELETE FROM levels WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete level: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete level: %w", err)
	}
	if affected == 0 {
		return ErrLevelNotFound
	}
	return nil
}

func parsePlaceKind(s string) wild.PlaceKind {
	switch s {
	case "town":
		return wild.PlaceTown
	case "dungeon":
		return wild.PlaceDungeon
	default:
		return wild.PlaceQuest
	}
}
