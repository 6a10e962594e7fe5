// Package librarydb provides an optional SQL-backed catalog that sits
// alongside the plain-text library index (internal/libraryio): the text
// index remains the source of truth for fingerprint matching, while this
// catalog lets callers query track metadata (and drop tracks) through a
// real database instead of rewriting the whole index file. Generalized
// from the teacher's Database interface, backed by whichever of
// github.com/go-sql-driver/mysql or github.com/lib/pq the configured
// backend names.
package librarydb

import (
	"database/sql"
	"fmt"

	config "github.com/media-luna/eureka/configs"
	"github.com/media-luna/eureka/internal/errs"
)

// Track is one catalog row.
type Track struct {
	ID            int
	Filename      string
	Artist        string
	TrackTitle    string
	AlbumTitle    string
	NumSignatures int
}

// Catalog is the interface every SQL backend satisfies.
type Catalog interface {
	Setup() error
	Close() error
	InsertTrack(t Track) (int, error)
	DeleteTrack(id int) error
	GetTrack(id int) (Track, error)
	ListTracks() ([]Track, error)
	Cleanup() error
}

// New builds a Catalog for the backend named in cfg. Supported types are
// "mysql" and "postgres"; an empty/unset type means no catalog is used
// at all and New returns (nil, nil).
func New(cfg config.DatabaseConfig) (Catalog, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "mysql":
		return newMySQLCatalog(cfg)
	case "postgres", "postgresql":
		return newPostgresCatalog(cfg)
	default:
		return nil, errs.New(errs.KindInputUnsupported, fmt.Sprintf("unsupported database type %q", cfg.Type))
	}
}

func setupSchema(db *sql.DB, createTableSQL string) error {
	if _, err := db.Exec(createTableSQL); err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "creating tracks table")
	}
	return nil
}
