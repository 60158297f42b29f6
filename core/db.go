package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"go.uber.org/zap"
)

// MemoryStore keeps documents for the lifetime of the process.
type MemoryStore struct {
	dbMap map[string]*CircuitDocument
	mu    sync.RWMutex
}

func (d *MemoryStore) Setup(c *Conf) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dbMap = make(map[string]*CircuitDocument)
	return nil
}

func (d *MemoryStore) Save(_ context.Context, doc *CircuitDocument) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dbMap[doc.ID] = doc.Clone()
	zap.L().Debug(fmt.Sprintf("[MemoryStore] saved %s", doc.ID))
	return nil
}

func (d *MemoryStore) Get(_ context.Context, id string) (*CircuitDocument, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if val, ok := d.dbMap[id]; ok {
		return val.Clone(), nil
	}
	err := errors.Wrapf(common.ErrNotFound, "circuit %s", id)
	zap.L().Info("[MemoryStore]", zap.Error(err))
	return nil, err
}

// List returns the documents of ownerID, newest first. An empty ownerID
// lists every document.
func (d *MemoryStore) List(_ context.Context, ownerID string) ([]*CircuitDocument, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	docs := make([]*CircuitDocument, 0, len(d.dbMap))
	for _, doc := range d.dbMap {
		if ownerID == "" || doc.OwnerID == ownerID {
			docs = append(docs, doc.Clone())
		}
	}
	SortNewestFirst(docs)
	return docs, nil
}

func (d *MemoryStore) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.dbMap[id]; ok {
		delete(d.dbMap, id)
		zap.L().Info(fmt.Sprintf("[MemoryStore] deleted %s", id))
		return nil
	}
	err := errors.Wrapf(common.ErrNotFound, "circuit %s", id)
	zap.L().Info("[MemoryStore]", zap.Error(err))
	return err
}

func (d *MemoryStore) Close() error {
	return nil
}

func SortNewestFirst(docs []*CircuitDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		ti, tj := time.Time(docs[i].CreatedAt), time.Time(docs[j].CreatedAt)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return docs[i].ID < docs[j].ID
	})
}
