package storage

import (
	"sync"

	"github.com/cockroachdb/pebble"
	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
)

// OpenPebbleDB opens the database shared by the pebble-backed stores. Pebble
// holds an exclusive lock on dbPath for as long as the database is open.
func OpenPebbleDB(log *ipfsLog.ZapEventLogger, dbPath string) (*pebble.DB, error) {
	db, err := pebble.Open(dbPath,
		&pebble.Options{
			Logger: log,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pebble database")
	}
	log.Infoln("Pebble database opened successfully:", dbPath)
	return db, nil
}

// PebbleStore keeps its document as one value of a pebble database.
type PebbleStore struct {
	db  *pebble.DB
	key []byte
	log *ipfsLog.ZapEventLogger
	mu  sync.Mutex
}

// NewPebbleStore returns a store keeping its document under key in db.
func NewPebbleStore(log *ipfsLog.ZapEventLogger, db *pebble.DB, key string) *PebbleStore {
	return &PebbleStore{
		db:  db,
		key: []byte(key),
		log: log,
	}
}

// Name returns the key of the document.
func (ps *PebbleStore) Name() string {
	return string(ps.key)
}

// Load reads the document. A missing key yields ErrNotExist.
func (ps *PebbleStore) Load() ([]byte, error) {
	value, closer, err := ps.db.Get(ps.key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			ps.log.Debugln("Document not in pebble database:", ps.Name())
			return nil, ErrNotExist
		}
		return nil, errors.Wrapf(err, "error retrieving %s", ps.Name())
	}
	defer closer.Close()

	// value is only valid until closer is closed
	data := append([]byte(nil), value...)
	ps.log.Debugf("Loaded %d bytes from %s", len(data), ps.Name())
	return data, nil
}

// Save writes the document with a synced write.
func (ps *PebbleStore) Save(data []byte) error {
	if err := ps.db.Set(ps.key, data, pebble.Sync); err != nil {
		return errors.Wrapf(err, "error saving %s to the database", ps.Name())
	}
	ps.log.Debugln("Document saved to pebble database:", ps.Name())
	return nil
}

// Lock serializes cycles within the process. Other processes are kept out
// by the database lock taken in OpenPebbleDB.
func (ps *PebbleStore) Lock() (func(), error) {
	ps.mu.Lock()
	return ps.mu.Unlock, nil
}
