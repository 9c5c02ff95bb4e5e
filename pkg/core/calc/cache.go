package calc

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"statement_insight/pkg/models"
)

// MemoCache memoizes Analyze keyed on the input table's content and the
// numeric mode. At most one table is live per session, so a single slot is
// enough; a new key simply evicts the previous result.
type MemoCache struct {
	mu     sync.Mutex
	key    [32]byte
	table  *models.AnalysisTable
	filled bool
}

// NewMemoCache returns an empty cache.
func NewMemoCache() *MemoCache {
	return &MemoCache{}
}

func contentKey(rows []models.StatementRow, mode NumericMode) [32]byte {
	h := sha256.New()
	var modeBuf [8]byte
	binary.LittleEndian.PutUint64(modeBuf[:], uint64(mode))
	h.Write(modeBuf[:])
	for _, r := range rows {
		h.Write([]byte(r.Indicator))
		h.Write([]byte{0})
		h.Write([]byte(r.Prior))
		h.Write([]byte{0})
		h.Write([]byte(r.Current))
		h.Write([]byte{0x1e})
	}
	var key [32]byte
	h.Sum(key[:0])
	return key
}

// Analyze returns the cached table when the input content is unchanged,
// otherwise computes and stores a fresh one. Errors are never cached.
func (c *MemoCache) Analyze(rows []models.StatementRow, opts Options) (*models.AnalysisTable, bool, error) {
	key := contentKey(rows, opts.Mode)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filled && c.key == key {
		return c.table, true, nil
	}

	table, err := Analyze(rows, opts)
	if err != nil {
		return nil, false, err
	}
	c.key = key
	c.table = table
	c.filled = true
	return table, false, nil
}
