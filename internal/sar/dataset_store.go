package sar

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// schemaVersion is recorded in PRAGMA user_version. The on-disk contract:
//
//	datasets(dataset_id TEXT PK, mode TEXT, params_json TEXT,
//	         directory BLOB, created_at_ns INTEGER)
//	matrices(dataset_id TEXT, seq INTEGER, name TEXT,
//	         rows INTEGER, cols INTEGER, data BLOB)
//
// Matrix payloads and the directory blob share one encoding: little-endian
// IEEE-754 float64 (real, imag) pairs, row-major, 16 bytes per element. The
// directory holds one complex(rows, cols) value per matrix after the head,
// in insertion order. Readers must reject files whose user_version differs.
const schemaVersion = 1

const datasetSchema = `
	CREATE TABLE IF NOT EXISTS datasets (
		dataset_id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		params_json TEXT NOT NULL,
		directory BLOB NOT NULL,
		created_at_ns INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS matrices (
		dataset_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		rows INTEGER NOT NULL,
		cols INTEGER NOT NULL,
		data BLOB NOT NULL,
		PRIMARY KEY (dataset_id, seq),
		FOREIGN KEY (dataset_id) REFERENCES datasets(dataset_id)
	);
`

// DatasetStore persists named-buffer stores to a SQLite file.
type DatasetStore struct {
	db *sql.DB
}

// OpenDataset opens or creates a dataset file, creating the schema on first
// use and rejecting files written under a different schema version.
func OpenDataset(path string) (*DatasetStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	switch version {
	case 0:
		if _, err := db.Exec(datasetSchema); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			db.Close()
			return nil, fmt.Errorf("set schema version: %w", err)
		}
	case schemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("dataset schema version %d, want %d", version, schemaVersion)
	}

	return &DatasetStore{db: db}, nil
}

// Close closes the underlying database.
func (d *DatasetStore) Close() error { return d.db.Close() }

// SaveDataset writes every matrix in insertion order along with the run
// parameters and the head directory. BuildDirectory must have run first.
// Returns the generated dataset id.
func (d *DatasetStore) SaveDataset(s *Store, p *Params) (string, error) {
	head := s.Head()
	if head.Data == nil {
		return "", fmt.Errorf("save dataset: directory not built")
	}
	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("save dataset: marshal params: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return "", fmt.Errorf("save dataset: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	_, err = tx.Exec(
		"INSERT INTO datasets (dataset_id, mode, params_json, directory, created_at_ns) VALUES (?, ?, ?, ?, ?)",
		id, string(p.Mode), string(paramsJSON), encodeComplex(head.Data), time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert dataset: %w", err)
	}

	for seq, m := range s.Matrices()[1:] {
		_, err = tx.Exec(
			"INSERT INTO matrices (dataset_id, seq, name, rows, cols, data) VALUES (?, ?, ?, ?, ?, ?)",
			id, seq, m.Name, m.Rows, m.Cols, encodeComplex(m.Data),
		)
		if err != nil {
			return "", fmt.Errorf("insert matrix %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save dataset: %w", err)
	}
	return id, nil
}

// LoadDataset rebuilds the store and run parameters for the given dataset.
// Malformed content is a recoverable error: the partial store is released
// and never returned.
func (d *DatasetStore) LoadDataset(id string) (*Store, *Params, error) {
	var mode, paramsJSON string
	var dirBlob []byte
	err := d.db.QueryRow(
		"SELECT mode, params_json, directory FROM datasets WHERE dataset_id = ?", id,
	).Scan(&mode, &paramsJSON, &dirBlob)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("dataset not found: %s", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}

	var p Params
	if err := json.Unmarshal([]byte(paramsJSON), &p); err != nil {
		return nil, nil, fmt.Errorf("load dataset: params: %w", err)
	}

	rows, err := d.db.Query(
		"SELECT name, rows, cols, data FROM matrices WHERE dataset_id = ? ORDER BY seq", id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	defer rows.Close()

	s := NewStore()
	count := 0
	for rows.Next() {
		var name string
		var nr, nc int
		var blob []byte
		if err := rows.Scan(&name, &nr, &nc, &blob); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("load dataset: %w", err)
		}
		data, err := decodeComplex(blob)
		if err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("load matrix %q: %w", name, err)
		}
		m, err := s.Append(name)
		if err != nil {
			return nil, nil, err
		}
		if err := m.SetData(nr, nc, data); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("load dataset: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}

	dir, err := decodeComplex(dirBlob)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("load dataset: directory: %w", err)
	}
	if len(dir) != count {
		s.Close()
		return nil, nil, fmt.Errorf("load dataset: directory lists %d matrices, file holds %d", len(dir), count)
	}
	return s, &p, nil
}

// LatestDatasetID returns the id of the most recently saved dataset.
func (d *DatasetStore) LatestDatasetID() (string, error) {
	var id string
	err := d.db.QueryRow("SELECT dataset_id FROM datasets ORDER BY created_at_ns DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("dataset file holds no datasets")
	}
	if err != nil {
		return "", fmt.Errorf("latest dataset: %w", err)
	}
	return id, nil
}

func encodeComplex(data []complex128) []byte {
	buf := make([]byte, 16*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[16*i:], math.Float64bits(real(v)))
		binary.LittleEndian.PutUint64(buf[16*i+8:], math.Float64bits(imag(v)))
	}
	return buf
}

func decodeComplex(b []byte) ([]complex128, error) {
	if len(b)%16 != 0 {
		return nil, fmt.Errorf("truncated payload: %d bytes", len(b))
	}
	data := make([]complex128, len(b)/16)
	for i := range data {
		re := math.Float64frombits(binary.LittleEndian.Uint64(b[16*i:]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(b[16*i+8:]))
		data[i] = complex(re, im)
	}
	return data, nil
}
