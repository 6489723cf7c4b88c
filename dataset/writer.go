package dataset

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DefaultBatchSize is the number of records committed per transaction.
const DefaultBatchSize = 1000

// Writer assigns sequential decimal keys to records and commits them to the
// store in batches of batchSize. It is not safe for concurrent use.
type Writer struct {
	store     Store
	batchSize int
	log       logrus.FieldLogger

	batch  []Entry
	index  uint64
	closed bool
}

func NewWriter(store Store, batchSize int, log logrus.FieldLogger) (*Writer, error) {
	if store == nil {
		return nil, errors.New("new writer: nil store")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("new writer: batch size must be positive, got %d", batchSize)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Writer{
		store:     store,
		batchSize: batchSize,
		log:       log,
		batch:     make([]Entry, 0, batchSize),
	}, nil
}

// Index is the key the next written record will get.
func (w *Writer) Index() uint64 { return w.index }

func (w *Writer) Write(ctx context.Context, p InstanceProvider) error {
	if w.closed {
		return ErrClosed
	}

	s, err := NewSample(p)
	if err != nil {
		return fmt.Errorf("write instance %d: %w", w.index, err)
	}

	w.batch = append(w.batch, Entry{
		Key:   strconv.FormatUint(w.index, 10),
		Value: s.Datum().Marshal(),
	})
	w.index++

	if len(w.batch) == w.batchSize {
		return w.commit(ctx)
	}
	return nil
}

func (w *Writer) WriteMany(ctx context.Context, ps []InstanceProvider) error {
	for _, p := range ps {
		if err := w.Write(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close commits any partial batch and releases the store.
func (w *Writer) Close(ctx context.Context) error {
	if w.closed {
		return nil
	}

	var commitErr error
	if len(w.batch) > 0 {
		commitErr = w.commit(ctx)
	}
	w.closed = true
	w.batch = nil

	if err := w.store.Close(); err != nil {
		return errors.Join(commitErr, fmt.Errorf("close store: %w", err))
	}
	return commitErr
}

// Read returns the raw record stored under key.
func (w *Writer) Read(ctx context.Context, key string) ([]byte, error) {
	if w.closed {
		return nil, ErrClosed
	}

	b, err := w.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return b, nil
}

func (w *Writer) commit(ctx context.Context) error {
	first := w.batch[0].Key
	if err := w.store.WriteBatch(ctx, w.batch, true); err != nil {
		return fmt.Errorf("commit batch starting at %s: %w", first, err)
	}
	w.log.WithFields(logrus.Fields{
		"first": first,
		"count": len(w.batch),
	}).Debug("batch committed")

	w.batch = make([]Entry, 0, w.batchSize)
	return nil
}
