// Package sqlite provides SQLite database writing for UMC feature tables
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ChrisMcGann/FeatureFinder/pkg/umc"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02 15:04:05"
	// Date format for MaintenanceTable
	maintenanceDateFormat = "2006 01 02"

	schemaVersion = 1
)

// Run identifies one clustered dataset in the database.
type Run struct {
	ID          string // Run identifier, unique per dataset run
	SourceFile  string
	IndexOffset int
	Elapsed     time.Duration
}

// Writer writes clustering results of one or more runs to a SQLite database.
// It is safe for concurrent use; each run is written in its own transaction.
type Writer struct {
	mu         sync.Mutex
	db         *sql.DB
	outputPath string
	runs       int
	features   int
	closed     bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// go-sqlite3 connections do not share an in-memory database
	db.SetMaxOpenConns(1)

	w := &Writer{
		db:         db,
		outputPath: outputPath,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS HeaderTable (
		RunId TEXT PRIMARY KEY,
		SourceFile TEXT,
		CreationDate TEXT,
		Version INTEGER NOT NULL DEFAULT 0,
		PeakCount INTEGER,
		ClusterCount INTEGER,
		FeatureCount INTEGER,
		ElapsedSeconds DOUBLE
	);

	CREATE TABLE IF NOT EXISTS FeatureTable (
		RunId TEXT REFERENCES HeaderTable(RunId),
		FeatureIndex INTEGER,
		MonoisotopicMass DOUBLE,
		AverageMonoMass DOUBLE,
		MinMonoMass DOUBLE,
		MaxMonoMass DOUBLE,
		ScanStart INTEGER,
		ScanEnd INTEGER,
		Scan INTEGER,
		NET DOUBLE,
		MemberCount INTEGER,
		MaxAbundance DOUBLE,
		Abundance DOUBLE,
		ClassRepMZ DOUBLE,
		ClassRepCharge INTEGER,
		PRIMARY KEY (RunId, FeatureIndex)
	);

	CREATE TABLE IF NOT EXISTS FeaturePeakMap (
		RunId TEXT REFERENCES HeaderTable(RunId),
		FeatureIndex INTEGER,
		PeakIndex INTEGER
	);

	CREATE TABLE IF NOT EXISTS MaintenanceTable (
		CreationDate TEXT,
		NoofRuns INTEGER,
		NoofFeatures INTEGER,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// WriteResult writes the header, features and feature-to-peak map of one run.
func (w *Writer) WriteResult(run Run, res *umc.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("database %s already finalized", w.outputPath)
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := writeRun(tx, run, res); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}

	w.runs++
	w.features += len(res.UMCs)
	return nil
}

func writeRun(tx *sql.Tx, run Run, res *umc.Result) error {
	_, err := tx.Exec(`
		INSERT INTO HeaderTable (RunId, SourceFile, CreationDate, Version, PeakCount, ClusterCount, FeatureCount, ElapsedSeconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourceFile, time.Now().Format(headerDateFormat), schemaVersion,
		res.Store.Len(), res.ClustersBeforeFilter, len(res.UMCs), run.Elapsed.Seconds())
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	featureStmt, err := tx.Prepare(`
		INSERT INTO FeatureTable (
			RunId, FeatureIndex, MonoisotopicMass, AverageMonoMass, MinMonoMass, MaxMonoMass,
			ScanStart, ScanEnd, Scan, NET, MemberCount, MaxAbundance, Abundance,
			ClassRepMZ, ClassRepCharge
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare feature statement: %w", err)
	}
	defer featureStmt.Close()

	for _, u := range res.UMCs {
		_, err := featureStmt.Exec(
			run.ID,
			u.Index+run.IndexOffset,
			u.MedianMonoMass,
			u.AverageMonoMass,
			u.MinMonoMass,
			u.MaxMonoMass,
			u.ScanStart,
			u.ScanStop,
			u.ScanMaxAbundance,
			u.NET,
			u.MemberCount,
			u.MaxAbundance,
			u.SumAbundance,
			u.ClassRepMZ,
			u.ClassRepCharge,
		)
		if err != nil {
			return fmt.Errorf("failed to insert feature %d: %w", u.Index, err)
		}
	}

	mapStmt, err := tx.Prepare(`INSERT INTO FeaturePeakMap (RunId, FeatureIndex, PeakIndex) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare map statement: %w", err)
	}
	defer mapStmt.Close()

	for c, id := range res.Index.All() {
		if _, err := mapStmt.Exec(run.ID, c+run.IndexOffset, res.Store.At(id).LineNumber); err != nil {
			return fmt.Errorf("failed to insert peak %d of feature %d: %w", id, c, err)
		}
	}
	return nil
}

// Finalize writes the maintenance table and closes the database
func (w *Writer) Finalize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.db.Exec(`
		INSERT INTO MaintenanceTable (CreationDate, NoofRuns, NoofFeatures, Description)
		VALUES (?, ?, ?, ?)
	`, time.Now().Format(maintenanceDateFormat), w.runs, w.features, "FeatureFinder")
	if err != nil {
		w.db.Close()
		return fmt.Errorf("failed to insert maintenance: %w", err)
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
