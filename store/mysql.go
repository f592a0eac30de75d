package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/NYTimes/sqliface"
	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/ajson"
)

// MySQL is a Store backed by a single MySQL table.
// Users must import a mysql driver in their main to use this.
type MySQL struct {
	db    *sql.DB
	table string
}

// NewMySQL returns a Store using the given table.
func NewMySQL(db *sql.DB, table string) *MySQL {
	return &MySQL{db: db, table: table}
}

// CreateTable creates the records table if it does not exist yet. With
// uniqueKey1 set, the table gets a unique index on key1 so MySQL rejects
// duplicate inserts.
func (s *MySQL) CreateTable(ctx context.Context, uniqueKey1 bool) error {
	index := "INDEX key1_idx (key1)"
	if uniqueKey1 {
		index = "UNIQUE INDEX key1_idx (key1)"
	}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
				key1 VARCHAR(255) NOT NULL,
				key2 VARCHAR(255) NOT NULL DEFAULT '',
				PRIMARY KEY (id),
				%s
			)`, s.quotedTable(), index)
	_, err := s.db.ExecContext(ctx, query)
	return errors.Wrap(err, "unable to create records table")
}

// FindByKey1 returns the oldest row with the given key1.
func (s *MySQL) FindByKey1(ctx context.Context, key1 string) (*ajson.Record, error) {
	query := fmt.Sprintf(`SELECT
				id,
				key1,
				key2
			FROM %s
			WHERE key1 = ?
			ORDER BY id ASC
			LIMIT 1`, s.quotedTable())
	rows, err := s.db.QueryContext(ctx, query, key1)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query records")
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to iterate records")
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

// Insert adds a row and sets the record ID to the generated row ID.
func (s *MySQL) Insert(ctx context.Context, rec *ajson.Record) error {
	query := fmt.Sprintf(`INSERT INTO %s (key1, key2) VALUES (?, ?)`, s.quotedTable())
	res, err := s.db.ExecContext(ctx, query, rec.Key1, rec.Key2)
	if err != nil {
		return errors.Wrap(err, "unable to insert record")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "unable to get inserted record ID")
	}
	rec.ID = strconv.FormatInt(id, 10)
	return nil
}

// Close closes the underlying DB.
func (s *MySQL) Close() error {
	return s.db.Close()
}

func (s *MySQL) quotedTable() string {
	return "`" + s.table + "`"
}

func scanRecords(rows sqliface.Rows) ([]*ajson.Record, error) {
	// initializing so we return an empty slice in case of 0
	recs := []*ajson.Record{}
	for rows.Next() {
		var (
			id         uint64
			key1, key2 string
		)
		if err := rows.Scan(&id, &key1, &key2); err != nil {
			return nil, err
		}
		rec := ajson.Shape(map[string]interface{}{
			ajson.Key1Field: key1,
			ajson.Key2Field: key2,
		})
		rec.ID = strconv.FormatUint(id, 10)
		recs = append(recs, &rec)
	}
	return recs, nil
}
