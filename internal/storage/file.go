package storage

import (
	"os"
	"path/filepath"
	"sync"

	fslock "github.com/ipfs/go-fs-lock"
	ipfsLog "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
)

const lockFileExt = ".lock"

// FileStore keeps its document in a flat file.
type FileStore struct {
	path string
	perm os.FileMode
	log  *ipfsLog.ZapEventLogger
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file is
// created with perm on the first Save.
func NewFileStore(log *ipfsLog.ZapEventLogger, path string, perm os.FileMode) *FileStore {
	return &FileStore{
		path: filepath.Clean(path),
		perm: perm,
		log:  log,
	}
}

// Name returns the base name of the backing file.
func (fs *FileStore) Name() string {
	return filepath.Base(fs.path)
}

// Load reads the whole file. A missing file yields ErrNotExist.
func (fs *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			fs.log.Debugln("File does not exist yet:", fs.path)
			return nil, ErrNotExist
		}
		fs.log.Errorln("Error reading file", fs.path, err)
		return nil, errors.Wrapf(err, "error reading %s", fs.path)
	}

	fs.log.Debugf("Loaded %d bytes from %s", len(data), fs.path)
	return data, nil
}

// Save replaces the file contents with data.
func (fs *FileStore) Save(data []byte) error {
	fs.log.Debugln("Saving document to file:", fs.path)
	if err := os.WriteFile(fs.path, data, fs.perm); err != nil {
		fs.log.Errorln("Error writing file", fs.path, err)
		return errors.Wrapf(err, "error writing %s", fs.path)
	}
	return nil
}

// Lock takes the in-process mutex, then an OS lock on <path>.lock. A lock held
// by another process or another store on the same file fails immediately
// with ErrLocked. The OS drops the lock when the holding process exits.
func (fs *FileStore) Lock() (func(), error) {
	fs.mu.Lock()

	lockName := fs.Name() + lockFileExt
	lockPath := filepath.Join(filepath.Dir(fs.path), lockName)

	closer, err := fslock.Lock(filepath.Dir(fs.path), lockName)
	if err != nil {
		fs.mu.Unlock()
		var locked fslock.LockedError
		if errors.As(err, &locked) {
			fs.log.Warnln("Document is locked:", lockPath, locked)
			return nil, errors.WithMessagef(ErrLocked, "%s", lockPath)
		}
		fs.log.Errorln("Error taking lock", lockPath, err)
		return nil, errors.Wrapf(err, "error taking lock %s", lockPath)
	}

	fs.log.Debugln("Lock acquired:", lockPath)
	return func() {
		defer fs.mu.Unlock()
		if err := closer.Close(); err != nil {
			fs.log.Errorln("Error releasing lock", lockPath, err)
			return
		}
		fs.log.Debugln("Lock released:", lockPath)
	}, nil
}
