package selection

import (
	"time"

	"go.etcd.io/bbolt"
)

const bucketSelections = "selections"

// BoltStore keeps selections in a single bbolt bucket.
type BoltStore struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSelections))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Get(key string) (Set, error) {
	var s Set
	err := b.db.View(func(tx *bbolt.Tx) error {
		// Get's result is only valid inside the transaction.
		var err error
		s, err = decode(key, tx.Bucket([]byte(bucketSelections)).Get([]byte(key)))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *BoltStore) Put(key string, s Set) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSelections))
		if s.Len() == 0 {
			return bucket.Delete([]byte(key))
		}
		data, err := encode(s)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), data)
	})
}

func (b *BoltStore) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSelections)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
