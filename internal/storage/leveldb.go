package storage

import (
	"sync"

	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// OpenLevelDB opens the database shared by the leveldb-backed stores.
func OpenLevelDB(log *ipfsLog.ZapEventLogger, dbPath string) (*leveldb.DB, error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open leveldb database")
	}
	log.Infoln("LevelDB database opened successfully:", dbPath)
	return db, nil
}

// LevelDBStore keeps its document as one value of a leveldb database.
type LevelDBStore struct {
	db  *leveldb.DB
	key []byte
	log *ipfsLog.ZapEventLogger
	mu  sync.Mutex
}

// NewLevelDBStore returns a store keeping its document under key in db.
func NewLevelDBStore(log *ipfsLog.ZapEventLogger, db *leveldb.DB, key string) *LevelDBStore {
	return &LevelDBStore{
		db:  db,
		key: []byte(key),
		log: log,
	}
}

// Name returns the key of the document.
func (ls *LevelDBStore) Name() string {
	return string(ls.key)
}

// Load reads the document. A missing key yields ErrNotExist.
func (ls *LevelDBStore) Load() ([]byte, error) {
	data, err := ls.db.Get(ls.key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			ls.log.Debugln("Document not in leveldb database:", ls.Name())
			return nil, ErrNotExist
		}
		return nil, errors.Wrapf(err, "error retrieving %s", ls.Name())
	}

	ls.log.Debugf("Loaded %d bytes from %s", len(data), ls.Name())
	return data, nil
}

// Save writes the document with a synced write.
func (ls *LevelDBStore) Save(data []byte) error {
	if err := ls.db.Put(ls.key, data, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrapf(err, "error saving %s to the database", ls.Name())
	}
	ls.log.Debugln("Document saved to leveldb database:", ls.Name())
	return nil
}

// Lock serializes cycles within the process. Other processes are kept out
// by the database lock taken in OpenLevelDB.
func (ls *LevelDBStore) Lock() (func(), error) {
	ls.mu.Lock()
	return ls.mu.Unlock, nil
}
