// Package store archives StateMod time series in sqlite so repeated
// analysis runs do not have to re-parse multi-megabyte fixed-width
// files.
package store

import (
	"database/sql"
	"fmt"

	"github.com/lox/statemod/internal/ts"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Dataset is one archived dataset load.
type Dataset struct {
	ID           int64
	BaseName     string
	ResponseFile string
	Dir          string
}

func (s *Store) UpsertDataset(d Dataset) (int64, error) {
	_, err := s.db.Exec(`
		INSERT INTO datasets (base_name, response_file, dir)
		VALUES (?, ?, ?)
		ON CONFLICT(base_name, response_file) DO UPDATE SET
			dir = excluded.dir,
			loaded_at = CURRENT_TIMESTAMP
	`, d.BaseName, d.ResponseFile, d.Dir)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRow(`SELECT id FROM datasets WHERE base_name = ? AND response_file = ?`,
		d.BaseName, d.ResponseFile).Scan(&id)
	return id, err
}

func (s *Store) ListDatasets() ([]Dataset, error) {
	rows, err := s.db.Query(`SELECT id, base_name, response_file, dir FROM datasets ORDER BY loaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.BaseName, &d.ResponseFile, &d.Dir); err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// InsertSeries archives one time series with its values. An existing
// series with the same identity within the dataset is replaced.
func (s *Store) InsertSeries(datasetID int64, t *ts.TimeSeries) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var old sql.NullInt64
	err = tx.QueryRow(`SELECT id FROM series WHERE dataset_id = ? AND station_id = ? AND data_type = ? AND interval = ?`,
		datasetID, t.ID, t.DataType, t.Interval.String()).Scan(&old)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if old.Valid {
		if _, err := tx.Exec(`DELETE FROM series_values WHERE series_id = ?`, old.Int64); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM series WHERE id = ?`, old.Int64); err != nil {
			return err
		}
	}

	res, err := tx.Exec(`
		INSERT INTO series (dataset_id, station_id, description, data_type, units, interval,
			start_year, start_month, start_day, end_year, end_month, end_day, input_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, datasetID, t.ID, t.Description, t.DataType, t.Units, t.Interval.String(),
		t.Start.Year, t.Start.Month, t.Start.Day, t.End.Year, t.End.Month, t.End.Day, t.InputName)
	if err != nil {
		return err
	}
	seriesID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if t.HasData() {
		stmt, err := tx.Prepare(`INSERT INTO series_values (series_id, year, month, day, value) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for d := t.Start; !d.After(t.End); d = next(d, t.Interval) {
			v := t.Value(d)
			if ts.IsMissing(v) {
				continue
			}
			if _, err := stmt.Exec(seriesID, d.Year, d.Month, d.Day, v); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func next(d ts.Date, interval ts.Interval) ts.Date {
	if interval == ts.IntervalDay {
		return d.AddDays(1)
	}
	return d.AddMonths(1)
}

// GetSeries rebuilds an archived time series, including its values.
// Returns nil when not found.
func (s *Store) GetSeries(datasetID int64, stationID, dataType string, interval ts.Interval) (*ts.TimeSeries, error) {
	row := s.db.QueryRow(`
		SELECT id, station_id, description, data_type, units,
			start_year, start_month, start_day, end_year, end_month, end_day, input_file
		FROM series
		WHERE dataset_id = ? AND station_id = ? AND data_type = ? AND interval = ?
	`, datasetID, stationID, dataType, interval.String())

	var seriesID int64
	t := ts.New(interval)
	err := row.Scan(&seriesID, &t.ID, &t.Description, &t.DataType, &t.Units,
		&t.Start.Year, &t.Start.Month, &t.Start.Day, &t.End.Year, &t.End.Month, &t.End.Day, &t.InputName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := t.AllocateDataSpace(); err != nil {
		return nil, fmt.Errorf("allocate series %s: %w", t.ID, err)
	}

	rows, err := s.db.Query(`SELECT year, month, day, value FROM series_values WHERE series_id = ?`, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d ts.Date
		var v float64
		if err := rows.Scan(&d.Year, &d.Month, &d.Day, &v); err != nil {
			return nil, err
		}
		t.SetValue(d, v)
	}
	return t, rows.Err()
}

// ListSeries returns the archived series metadata for a dataset,
// without values.
func (s *Store) ListSeries(datasetID int64) ([]*ts.TimeSeries, error) {
	rows, err := s.db.Query(`
		SELECT station_id, description, data_type, units, interval,
			start_year, start_month, start_day, end_year, end_month, end_day, input_file
		FROM series
		WHERE dataset_id = ?
		ORDER BY station_id, data_type
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*ts.TimeSeries
	for rows.Next() {
		t := &ts.TimeSeries{}
		var interval string
		if err := rows.Scan(&t.ID, &t.Description, &t.DataType, &t.Units, &interval,
			&t.Start.Year, &t.Start.Month, &t.Start.Day, &t.End.Year, &t.End.Month, &t.End.Day, &t.InputName); err != nil {
			return nil, err
		}
		switch interval {
		case "Day":
			t.Interval = ts.IntervalDay
		case "Month":
			t.Interval = ts.IntervalMonth
		case "Year":
			t.Interval = ts.IntervalYear
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// FetchRecord is one logged remote download.
type FetchRecord struct {
	ID         int64
	Host       string
	RemotePath string
	LocalPath  string
	Bytes      int64
}

func (s *Store) LogFetch(r FetchRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO fetch_log (host, remote_path, local_path, bytes)
		VALUES (?, ?, ?, ?)
	`, r.Host, r.RemotePath, r.LocalPath, r.Bytes)
	return err
}

func (s *Store) RecentFetches(limit int) ([]FetchRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, host, remote_path, local_path, bytes
		FROM fetch_log
		ORDER BY fetched_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []FetchRecord
	for rows.Next() {
		var r FetchRecord
		if err := rows.Scan(&r.ID, &r.Host, &r.RemotePath, &r.LocalPath, &r.Bytes); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
