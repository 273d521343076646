// Package store persists rendered reports in SQLite. It is the storage
// collaborator of the rendering core: it never alters markup, and every load
// recomputes the content fingerprint so out-of-band modification of a stored
// row is detected rather than silently served.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"filingdesk/internal/render"
	"filingdesk/internal/report"
)

// ErrIntegrityMismatch is returned when a stored checksum disagrees with the
// fingerprint recomputed from the stored markup. Callers must surface this;
// it is never repaired in place.
var ErrIntegrityMismatch = errors.New("stored checksum does not match recomputed fingerprint")

// ErrNotFound is returned when no report exists under the requested id.
var ErrNotFound = errors.New("report not found")

// ReportStore holds rendered reports in a local SQLite database.
type ReportStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *zap.Logger
}

// StoredReport is one persisted row, including the identifying payload
// fields used by list output. Document is the structured payload+content
// pair the markup was rendered from, so an export of a stored report runs
// from the same structured data as the original render.
type StoredReport struct {
	ID         string
	EntityName string
	FilingType string
	Document   *report.Document
	Markup     string
	Checksum   string
	CreatedAt  time.Time
}

// Open initializes the SQLite database at the given path.
func Open(path string, logger *zap.Logger) (*ReportStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &ReportStore{db: db, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *ReportStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		entity_name TEXT NOT NULL,
		filing_type TEXT NOT NULL,
		document TEXT NOT NULL,
		html_content TEXT NOT NULL,
		checksum TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_reports_entity ON reports(entity_name);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *ReportStore) Close() error { return s.db.Close() }

// Save persists a rendered report and returns its id. The fingerprint is
// recomputed from the markup before insert; a Rendered whose checksum no
// longer matches its markup is rejected rather than stored.
func (s *ReportStore) Save(doc *report.Document, rendered report.Rendered) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !render.Verify(rendered.Markup, rendered.Checksum) {
		return "", fmt.Errorf("refusing to save: %w", ErrIntegrityMismatch)
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	id := rendered.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := rendered.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(
		`INSERT INTO reports (id, entity_name, filing_type, document, html_content, checksum, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, doc.Payload.EntityName, doc.Payload.FilingType, string(docJSON),
		rendered.Markup, rendered.Checksum, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	s.logger.Debug("report saved",
		zap.String("id", id),
		zap.String("checksum", rendered.Checksum))
	return id, nil
}

// Load retrieves a stored report and verifies its integrity: the fingerprint
// of the loaded markup must equal the stored checksum.
func (s *ReportStore) Load(id string) (*StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, entity_name, filing_type, document, html_content, checksum, created_at
		 FROM reports WHERE id = ?`, id)
	var r StoredReport
	var docJSON string
	if err := row.Scan(&r.ID, &r.EntityName, &r.FilingType, &docJSON, &r.Markup, &r.Checksum, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	var doc report.Document
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}
	r.Document = &doc

	if !render.Verify(r.Markup, r.Checksum) {
		s.logger.Error("integrity check failed",
			zap.String("id", r.ID),
			zap.String("stored", r.Checksum),
			zap.String("recomputed", render.Fingerprint(r.Markup)))
		return nil, fmt.Errorf("report %s: %w", id, ErrIntegrityMismatch)
	}
	return &r, nil
}

// Latest returns the most recently stored report.
func (s *ReportStore) Latest() (*StoredReport, error) {
	s.mu.RLock()
	id, err := s.latestID()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return s.Load(id)
}

func (s *ReportStore) latestID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM reports ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest report: %w", err)
	}
	return id, nil
}

// List returns summaries of all stored reports, newest first. Markup is not
// loaded; use Load for the full row and the integrity check.
func (s *ReportStore) List() ([]StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, entity_name, filing_type, checksum, created_at
		 FROM reports ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var out []StoredReport
	for rows.Next() {
		var r StoredReport
		if err := rows.Scan(&r.ID, &r.EntityName, &r.FilingType, &r.Checksum, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes a stored report.
func (s *ReportStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
