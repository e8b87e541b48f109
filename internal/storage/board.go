package storage

import (
	"fmt"
	"time"

	"boards/internal/domain"
)

// BoardStore implements domain.BoardStore using SQLite.
type BoardStore struct {
	db *DB
}

func NewBoardStore(db *DB) *BoardStore {
	return &BoardStore{db: db}
}

func (s *BoardStore) CreateBoard(b *domain.Board) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := s.db.conn.Exec(
		`INSERT INTO boards (id, name, manifest, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Manifest, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (s *BoardStore) GetBoard(id string) (*domain.Board, error) {
	b := &domain.Board{}
	err := s.db.conn.QueryRow(
		`SELECT id, name, manifest, created_at, updated_at FROM boards WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &b.Manifest, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

func (s *BoardStore) ListBoards() ([]domain.Board, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, name, manifest, created_at, updated_at FROM boards ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.Manifest, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *BoardStore) UpdateBoard(b *domain.Board) error {
	b.UpdatedAt = time.Now()
	_, err := s.db.conn.Exec(
		`UPDATE boards SET name = ?, manifest = ?, updated_at = ? WHERE id = ?`,
		b.Name, b.Manifest, b.UpdatedAt, b.ID,
	)
	return err
}

func (s *BoardStore) DeleteBoard(id string) error {
	_, err := s.db.conn.Exec(`DELETE FROM boards WHERE id = ?`, id)
	return err
}
