package librarydb

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	config "github.com/media-luna/eureka/configs"
	"github.com/media-luna/eureka/internal/errs"
)

const postgresCreateTable = `
CREATE TABLE IF NOT EXISTS tracks (
	id SERIAL PRIMARY KEY,
	filename TEXT NOT NULL,
	artist TEXT,
	track_title TEXT,
	album_title TEXT,
	num_signatures INTEGER NOT NULL
)`

type postgresCatalog struct {
	db *sql.DB
}

func newPostgresCatalog(cfg config.DatabaseConfig) (Catalog, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errs.Wrap(err, errs.KindResourceExhausted, "opening postgres connection")
	}
	return &postgresCatalog{db: db}, nil
}

func (c *postgresCatalog) Setup() error {
	return setupSchema(c.db, postgresCreateTable)
}

func (c *postgresCatalog) Close() error {
	return c.db.Close()
}

func (c *postgresCatalog) InsertTrack(t Track) (int, error) {
	var id int
	err := c.db.QueryRow(
		"INSERT INTO tracks (filename, artist, track_title, album_title, num_signatures) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		t.Filename, t.Artist, t.TrackTitle, t.AlbumTitle, t.NumSignatures,
	).Scan(&id)
	if err != nil {
		return 0, errs.Wrap(err, errs.KindResourceExhausted, "inserting track")
	}
	return id, nil
}

func (c *postgresCatalog) DeleteTrack(id int) error {
	_, err := c.db.Exec("DELETE FROM tracks WHERE id = $1", id)
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "deleting track")
	}
	return nil
}

func (c *postgresCatalog) GetTrack(id int) (Track, error) {
	var t Track
	row := c.db.QueryRow("SELECT id, filename, artist, track_title, album_title, num_signatures FROM tracks WHERE id = $1", id)
	if err := row.Scan(&t.ID, &t.Filename, &t.Artist, &t.TrackTitle, &t.AlbumTitle, &t.NumSignatures); err != nil {
		if err == sql.ErrNoRows {
			return Track{}, errs.New(errs.KindNoMatch, "no track with that id")
		}
		return Track{}, errs.Wrap(err, errs.KindResourceExhausted, "querying track")
	}
	return t, nil
}

func (c *postgresCatalog) ListTracks() ([]Track, error) {
	rows, err := c.db.Query("SELECT id, filename, artist, track_title, album_title, num_signatures FROM tracks")
	if err != nil {
		return nil, errs.Wrap(err, errs.KindResourceExhausted, "listing tracks")
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.ID, &t.Filename, &t.Artist, &t.TrackTitle, &t.AlbumTitle, &t.NumSignatures); err != nil {
			return nil, errs.Wrap(err, errs.KindResourceExhausted, "scanning track row")
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (c *postgresCatalog) Cleanup() error {
	_, err := c.db.Exec("DELETE FROM tracks WHERE num_signatures = 0")
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "cleaning up empty tracks")
	}
	return nil
}
