package oledgen

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores decoded frames keyed by the SHA-1 of the source file, the
// decoder that produced them and the decoding parameters, so unchanged frames
// are not decoded again.
type Cache struct {
	db *sql.DB
}

// NewCache opens, creating if necessary, the sqlite cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS decoded_frame (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, decoder TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, invert INTEGER NOT NULL, bitmap BLOB NOT NULL, UNIQUE (sha1, decoder, width, height, invert))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Find returns the cached bitmap, or nil if there isn't one.
func (c *Cache) Find(sha1, decoder string, width, height int, invert bool) ([]byte, error) {
	var b []byte
	switch err := c.db.QueryRow("SELECT bitmap FROM decoded_frame WHERE sha1 = ? AND decoder = ? AND width = ? AND height = ? AND invert = ?", sha1, decoder, width, height, invert).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

// Add stores a decoded bitmap, replacing any existing entry.
func (c *Cache) Add(sha1, decoder string, width, height int, invert bool, bitmap []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO decoded_frame (sha1, decoder, width, height, invert, bitmap) VALUES (?, ?, ?, ?, ?, ?)", sha1, decoder, width, height, invert, bitmap); err != nil {
		return err
	}
	return nil
}

// Purge removes every cached frame.
func (c *Cache) Purge() (int64, error) {
	result, err := c.db.Exec("DELETE FROM decoded_frame")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
