package storage

import (
	"errors"
	"sort"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/logger"
)

// snapshot is the content of a document before it was replaced
type snapshot struct {
	key    string
	data   []byte
	exists bool
}

// WriteAll replaces every document in docs or none of them. Providers that
// implement BatchWriter do this natively. For the rest, documents are written
// one by one in key order and, if a write fails, the documents already
// replaced are restored from their previous contents.
func WriteAll(p Provider, docs map[string][]byte) error {
	if len(docs) == 0 {
		return nil
	}
	if bw, ok := p.(BatchWriter); ok {
		return apperrors.Storage("write", "", bw.PutBatch(docs))
	}

	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var written []snapshot
	for _, key := range keys {
		old, err := p.Get(key)
		if err != nil && !errors.Is(err, ErrNoDocument) {
			rollback(p, written)
			return apperrors.Storage("read", key, err)
		}
		prev := snapshot{key: key, data: old, exists: err == nil}

		if err := p.Put(key, docs[key]); err != nil {
			rollback(p, written)
			return apperrors.Storage("write", key, err)
		}
		written = append(written, prev)
	}
	return nil
}

// rollback restores written in reverse order. Failures are logged; the
// original write error is what the caller sees.
func rollback(p Provider, written []snapshot) {
	for i := len(written) - 1; i >= 0; i-- {
		prev := written[i]
		var err error
		if prev.exists {
			err = p.Put(prev.key, prev.data)
		} else {
			err = p.Delete(prev.key)
		}
		if err != nil {
			logger.Error("Failed to roll back document", "key", prev.key, "error", err)
		}
	}
}
