// Package cache stores the accepted MFCC segments of already processed recordings so that
// re-running an extraction over an unchanged dataset skips decoding and feature computation.
//
// Entries are keyed by the recording's path, size and modification time plus a fingerprint
// of every extraction parameter that influences the features. Values are msgpack-encoded.
package cache

import (
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// Segment is one accepted segment of a recording.
type Segment struct {
	Index  int         `msgpack:"i"`
	Frames [][]float64 `msgpack:"f"`
}

// Store is the interface for a per-recording segment cache.
type Store interface {
	// Get returns the cached segments for key and whether the key was present.
	Get(key string) ([]Segment, bool, error)

	// Put stores the segments for key, replacing any previous entry.
	Put(key string, segments []Segment) error

	// Close releases any resources held by the store.
	Close() error
}

const keyPrefix = "seg:"

// Key derives the cache key of a recording.
func Key(path string, size int64, modTime time.Time, fingerprint string) string {
	h := xxhash.New()
	h.WriteString(path)
	h.Write([]byte{0})
	h.WriteString(strconv.FormatInt(size, 10))
	h.Write([]byte{0})
	h.WriteString(strconv.FormatInt(modTime.UnixNano(), 10))
	h.Write([]byte{0})
	h.WriteString(fingerprint)
	return keyPrefix + strconv.FormatUint(h.Sum64(), 16)
}

// Badger is a Store backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir holds the BadgerDB data files. Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB without disk persistence.
	InMemory bool

	// Logger receives badger's own log lines. If nil, badger logging is silenced.
	Logger badger.Logger
}

// NewBadger opens a BadgerDB-backed Store.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("cache: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(quietLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(key string) ([]Segment, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var segments []Segment
	if err := msgpack.Unmarshal(val, &segments); err != nil {
		return nil, false, err
	}
	return segments, true, nil
}

func (b *Badger) Put(key string, segments []Segment) error {
	if segments == nil {
		segments = []Segment{}
	}
	val, err := msgpack.Marshal(segments)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
}

func (b *Badger) Close() error {
	return b.db.Close()
}

type quietLogger struct{}

func (quietLogger) Errorf(string, ...interface{})   {}
func (quietLogger) Warningf(string, ...interface{}) {}
func (quietLogger) Infof(string, ...interface{})    {}
func (quietLogger) Debugf(string, ...interface{})   {}

var _ Store = (*Badger)(nil)
