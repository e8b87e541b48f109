package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"boards/internal/domain"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// RemoteConfig describes a shared board library hosted on Postgres or MySQL.
type RemoteConfig struct {
	Driver   string `json:"driver"` // "postgres" | "mysql"
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode"` // postgres only
}

// DSN builds the driver-specific connection string.
func (c RemoteConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		port := c.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			c.Username, c.Password, c.Host, port, c.Database)
	default:
		port := c.Port
		if port == 0 {
			port = 5432
		}
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, port, c.Username, c.Password, c.Database, sslMode)
	}
}

// RemoteStore implements domain.BoardStore against a shared Postgres or MySQL
// library, so several editors can publish boards to one place.
type RemoteStore struct {
	conn   *sql.DB
	driver string
}

// OpenRemote connects to a remote library and ensures the boards table exists.
func OpenRemote(cfg RemoteConfig) (*RemoteStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "postgres"
	}
	return OpenRemoteDSN(driver, cfg.DSN())
}

// OpenRemoteDSN connects with a prebuilt connection string. driver must be
// "postgres" or "mysql".
func OpenRemoteDSN(driver, dsn string) (*RemoteStore, error) {
	if driver != "postgres" && driver != "mysql" {
		return nil, fmt.Errorf("unsupported remote driver %q", driver)
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	s := &RemoteStore{conn: conn, driver: driver}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate remote library: %w", err)
	}
	return s, nil
}

func (s *RemoteStore) Close() error {
	return s.conn.Close()
}

func (s *RemoteStore) migrate() error {
	manifestType := "TEXT"
	if s.driver == "mysql" {
		manifestType = "MEDIUMTEXT"
	}
	_, err := s.conn.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS boards (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		manifest %s NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`, manifestType))
	return err
}

// rebind rewrites ?-placeholders to the driver's syntax. MySQL keeps ?;
// Postgres numbers them $1, $2, ...
func (s *RemoteStore) rebind(query string) string {
	if s.driver == "mysql" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *RemoteStore) CreateBoard(b *domain.Board) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := s.conn.Exec(
		s.rebind(`INSERT INTO boards (id, name, manifest, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		b.ID, b.Name, b.Manifest, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (s *RemoteStore) GetBoard(id string) (*domain.Board, error) {
	b := &domain.Board{}
	err := s.conn.QueryRow(
		s.rebind(`SELECT id, name, manifest, created_at, updated_at FROM boards WHERE id = ?`), id,
	).Scan(&b.ID, &b.Name, &b.Manifest, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

func (s *RemoteStore) ListBoards() ([]domain.Board, error) {
	rows, err := s.conn.Query(
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

func (s *RemoteStore) UpdateBoard(b *domain.Board) error {
	b.UpdatedAt = time.Now()
	_, err := s.conn.Exec(
		s.rebind(`UPDATE boards SET name = ?, manifest = ?, updated_at = ? WHERE id = ?`),
		b.Name, b.Manifest, b.UpdatedAt, b.ID,
	)
	return err
}

func (s *RemoteStore) DeleteBoard(id string) error {
	_, err := s.conn.Exec(s.rebind(`DELETE FROM boards WHERE id = ?`), id)
	return err
}
