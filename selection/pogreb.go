package selection

import (
	"sort"

	"github.com/akrylysov/pogreb"
)

// PogrebStore keeps selections in a pogreb database directory.
type PogrebStore struct {
	DB *pogreb.DB
}

func OpenPogreb(path string) (*PogrebStore, error) {
	db, err := pogreb.Open(path, nil)
	if err != nil {
		return nil, err
	}
	return &PogrebStore{DB: db}, nil
}

func (p *PogrebStore) Get(key string) (Set, error) {
	data, err := p.DB.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	return decode(key, data)
}

func (p *PogrebStore) Put(key string, s Set) error {
	if s.Len() == 0 {
		return p.DB.Delete([]byte(key))
	}
	data, err := encode(s)
	if err != nil {
		return err
	}
	return p.DB.Put([]byte(key), data)
}

func (p *PogrebStore) Keys() ([]string, error) {
	var keys []string
	it := p.DB.Items()
	for {
		key, _, err := it.Next()
		if err == pogreb.ErrIterationDone {
			break
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, string(key))
	}
	sort.Strings(keys)
	return keys, nil
}

func (p *PogrebStore) Close() error {
	return p.DB.Close()
}
