package node

import (
	"encoding/binary"
	tmdb "github.com/tendermint/tm-db"
	"sync"
	"time"
)

const (
	keyChainID     = "ci"
	keyHeight      = "bh"
	keyAppHash     = "ah"
	keyLastTime    = "lt"
	keyStateFormat = "sf"
)

// MetaDB keeps what the app needs to resume: chain id, the last committed height, its app hash and its time.
type MetaDB struct {
	db tmdb.DB

	mtx   sync.RWMutex
	cache map[string][]byte
}

func openMetaDB(name, backend, dir string) (*MetaDB, error) {
	db, err := tmdb.NewDB(name, tmdb.BackendType(backend), dir)
	if err != nil {
		return nil, err
	}

	return &MetaDB{
		db:    db,
		cache: make(map[string][]byte),
	}, nil
}

func (stdb *MetaDB) Close() error {
	stdb.mtx.Lock()
	defer stdb.mtx.Unlock()

	stdb.cache = map[string][]byte{}
	return stdb.db.Close()
}

func (stdb *MetaDB) ChainID() string {
	v := stdb.get(keyChainID)
	if v == nil {
		return ""
	}
	return string(v)
}

func (stdb *MetaDB) PutChainID(chainId string) error {
	return stdb.put(keyChainID, []byte(chainId))
}

func (stdb *MetaDB) LastHeight() int64 {
	v := stdb.get(keyHeight)
	if v == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(v))
}

func (stdb *MetaDB) PutLastHeight(h int64) error {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, uint64(h))
	return stdb.put(keyHeight, v)
}

func (stdb *MetaDB) LastAppHash() []byte {
	return stdb.get(keyAppHash)
}

func (stdb *MetaDB) PutLastAppHash(v []byte) error {
	return stdb.put(keyAppHash, v)
}

func (stdb *MetaDB) LastTime() time.Time {
	v := stdb.get(keyLastTime)
	if v == nil {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(v))).UTC()
}

func (stdb *MetaDB) PutLastTime(t time.Time) error {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, uint64(t.UnixNano()))
	return stdb.put(keyLastTime, v)
}

// StateFormat returns 0 when nothing is committed yet.
func (stdb *MetaDB) StateFormat() uint64 {
	v := stdb.get(keyStateFormat)
	if v == nil {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

func (stdb *MetaDB) PutStateFormat(f uint64) error {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, f)
	return stdb.put(keyStateFormat, v)
}

func (stdb *MetaDB) putCache(k string, v []byte) {
	stdb.mtx.Lock()
	defer stdb.mtx.Unlock()

	stdb.cache[k] = v
}

func (stdb *MetaDB) getCache(k string) []byte {
	stdb.mtx.RLock()
	defer stdb.mtx.RUnlock()

	v := stdb.cache[k]
	return v
}

func (stdb *MetaDB) get(k string) []byte {
	if v := stdb.getCache(k); v != nil {
		return v
	}

	if v, err := stdb.db.Get([]byte(k)); err == nil && v != nil {
		stdb.putCache(k, v)
		return v
	}

	return nil
}

func (stdb *MetaDB) put(k string, v []byte) error {
	if err := stdb.db.SetSync([]byte(k), v); err != nil {
		return err
	}
	stdb.putCache(k, v)
	return nil
}
