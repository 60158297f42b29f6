// Package db keeps saved circuit documents in a SQLite file.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a core.CircuitStore backed by one table. The full document
// is stored as JSON next to the columns List filters on.
type SQLiteStore struct {
	Path string

	db *sql.DB
	mu sync.RWMutex
}

// Setup opens the database. Path, if unset, comes from Conf.StorePath and
// then from the [store] setting.
func (s *SQLiteStore) Setup(c *core.Conf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Path == "" {
		s.Path = c.StorePath
	}
	if s.Path == "" {
		s.Path = core.GetGlobalSetting().Store.Path
	}
	if s.Path == "" {
		return errors.New("sqlite store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return errors.Wrapf(err, "create dir of %s", s.Path)
	}
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to open %s/reason:%s", s.Path, err))
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return errors.Wrap(err, "create schema")
	}
	s.db = db
	zap.L().Debug(fmt.Sprintf("[SQLiteStore] opened %s", s.Path))
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc *core.CircuitDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return errors.New("sqlite store is not set up")
	}
	b, err := doc.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal circuit %s", doc.ID)
	}
	_, err = s.db.ExecContext(ctx, upsertCircuit,
		doc.ID,
		doc.Name,
		doc.OwnerID,
		doc.Language,
		doc.QubitCount,
		time.Time(doc.CreatedAt).UTC().Format(time.RFC3339Nano),
		string(b),
	)
	if err != nil {
		return errors.Wrapf(err, "save circuit %s", doc.ID)
	}
	zap.L().Debug(fmt.Sprintf("[SQLiteStore] saved %s", doc.ID))
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*core.CircuitDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("sqlite store is not set up")
	}
	var document string
	err := s.db.QueryRowContext(ctx, selectCircuit, id).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		err = errors.Wrapf(common.ErrNotFound, "circuit %s", id)
		zap.L().Info("[SQLiteStore]", zap.Error(err))
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get circuit %s", id)
	}
	return core.UnmarshalCircuitDocument([]byte(document))
}

// List returns the documents of ownerID, newest first. An empty ownerID
// lists every document.
func (s *SQLiteStore) List(ctx context.Context, ownerID string) ([]*core.CircuitDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("sqlite store is not set up")
	}
	var (
		rows *sql.Rows
		err  error
	)
	if ownerID == "" {
		rows, err = s.db.QueryContext(ctx, selectAllCircuits)
	} else {
		rows, err = s.db.QueryContext(ctx, selectOwnerCircuits, ownerID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list circuits")
	}
	defer rows.Close()

	docs := []*core.CircuitDocument{}
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, errors.Wrap(err, "scan circuit")
		}
		doc, err := core.UnmarshalCircuitDocument([]byte(document))
		if err != nil {
			zap.L().Warn(fmt.Sprintf("[SQLiteStore] skipped unreadable row/reason:%s", err))
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list circuits")
	}
	core.SortNewestFirst(docs)
	return docs, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return errors.New("sqlite store is not set up")
	}
	res, err := s.db.ExecContext(ctx, deleteCircuit, id)
	if err != nil {
		return errors.Wrapf(err, "delete circuit %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "delete circuit %s", id)
	}
	if n == 0 {
		err = errors.Wrapf(common.ErrNotFound, "circuit %s", id)
		zap.L().Info("[SQLiteStore]", zap.Error(err))
		return err
	}
	zap.L().Info(fmt.Sprintf("[SQLiteStore] deleted %s", id))
	return nil
}

// Close is idempotent.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
