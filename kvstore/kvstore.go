// Package kvstore holds the durable key-value backends the dataset writer
// commits record batches to.
package kvstore

import (
	"fmt"

	"punctuator/dataset"
)

const (
	BackendLevelDB = "leveldb"
	BackendSQLite  = "sqlite"
)

// Open opens path with the named backend.
func Open(backend, path string) (dataset.Store, error) {
	switch backend {
	case BackendLevelDB, "":
		return OpenLevelDB(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("open store: unknown backend %q", backend)
	}
}
