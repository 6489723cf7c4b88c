package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"punctuator/dataset"
)

type LevelDB struct {
	db *leveldb.DB
}

var _ dataset.Store = (*LevelDB)(nil)

// OpenLevelDB opens or creates the database directory at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb %s: %w", path, err)
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) WriteBatch(ctx context.Context, entries []dataset.Entry, sync bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := new(leveldb.Batch)
	for _, e := range entries {
		b.Put([]byte(e.Key), e.Value)
	}
	if err := l.db.Write(b, &opt.WriteOptions{Sync: sync}); err != nil {
		return fmt.Errorf("writing leveldb batch: %w", err)
	}
	return nil
}

func (l *LevelDB) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, dataset.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("leveldb get %q: %w", key, err)
	}
	return v, nil
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}
