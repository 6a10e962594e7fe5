package librarydb

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	config "github.com/media-luna/eureka/configs"
	"github.com/media-luna/eureka/internal/errs"
)

const mysqlCreateTable = `
CREATE TABLE IF NOT EXISTS tracks (
	id INT AUTO_INCREMENT PRIMARY KEY,
	filename VARCHAR(1024) NOT NULL,
	artist VARCHAR(1024),
	track_title VARCHAR(1024),
	album_title VARCHAR(1024),
	num_signatures INT NOT NULL
)`

type mysqlCatalog struct {
	db *sql.DB
}

func newMySQLCatalog(cfg config.DatabaseConfig) (Catalog, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errs.Wrap(err, errs.KindResourceExhausted, "opening mysql connection")
	}
	return &mysqlCatalog{db: db}, nil
}

func (c *mysqlCatalog) Setup() error {
	return setupSchema(c.db, mysqlCreateTable)
}

func (c *mysqlCatalog) Close() error {
	return c.db.Close()
}

func (c *mysqlCatalog) InsertTrack(t Track) (int, error) {
	res, err := c.db.Exec(
		"INSERT INTO tracks (filename, artist, track_title, album_title, num_signatures) VALUES (?, ?, ?, ?, ?)",
		t.Filename, t.Artist, t.TrackTitle, t.AlbumTitle, t.NumSignatures,
	)
	if err != nil {
		return 0, errs.Wrap(err, errs.KindResourceExhausted, "inserting track")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Wrap(err, errs.KindResourceExhausted, "reading inserted track id")
	}
	return int(id), nil
}

func (c *mysqlCatalog) DeleteTrack(id int) error {
	_, err := c.db.Exec("DELETE FROM tracks WHERE id = ?", id)
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "deleting track")
	}
	return nil
}

func (c *mysqlCatalog) GetTrack(id int) (Track, error) {
	var t Track
	row := c.db.QueryRow("SELECT id, filename, artist, track_title, album_title, num_signatures FROM tracks WHERE id = ?", id)
	if err := row.Scan(&t.ID, &t.Filename, &t.Artist, &t.TrackTitle, &t.AlbumTitle, &t.NumSignatures); err != nil {
		if err == sql.ErrNoRows {
			return Track{}, errs.New(errs.KindNoMatch, "no track with that id")
		}
		return Track{}, errs.Wrap(err, errs.KindResourceExhausted, "querying track")
	}
	return t, nil
}

func (c *mysqlCatalog) ListTracks() ([]Track, error) {
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

func (c *mysqlCatalog) Cleanup() error {
	_, err := c.db.Exec("DELETE FROM tracks WHERE num_signatures = 0")
	if err != nil {
		return errs.Wrap(err, errs.KindResourceExhausted, "cleaning up empty tracks")
	}
	return nil
}
