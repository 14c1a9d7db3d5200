// Package selection persists the optional mods chosen for each preset.
//
// A Set is keyed by mod link and encodes to JSON as {"<link>": true}.
// Stores map a preset identifier to its Set. An absent key reads as an
// empty Set.
package selection

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrStoreClosed    = errors.New("selection store closed")
	ErrUnknownDriver  = errors.New("unknown selection store driver")
	ErrMalformedValue = errors.New("malformed selection value")
)

// Set is the set of selected optional mod links of one preset.
type Set map[string]bool

func (s Set) Has(link string) bool {
	return s[link]
}

func (s Set) Add(link string) {
	s[link] = true
}

func (s Set) Remove(link string) {
	delete(s, link)
}

// Toggle adds link when on is true and removes it otherwise.
func (s Set) Toggle(link string, on bool) {
	if on {
		s.Add(link)
	} else {
		s.Remove(link)
	}
}

// Len counts selected links.
func (s Set) Len() int {
	n := 0
	for _, ok := range s {
		if ok {
			n++
		}
	}
	return n
}

// Links returns the selected links in lexical order.
func (s Set) Links() []string {
	links := make([]string, 0, len(s))
	for l, ok := range s {
		if ok {
			links = append(links, l)
		}
	}
	sort.Strings(links)
	return links
}

// Clone returns a copy that can be handed out as a snapshot.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for l, ok := range s {
		if ok {
			c[l] = true
		}
	}
	return c
}

// Store maps preset identifiers to selections.
type Store interface {
	Get(key string) (Set, error)
	Put(key string, s Set) error
	// Keys lists identifiers with a non-empty selection.
	Keys() ([]string, error)
	Close() error
}

func decode(key string, data []byte) (Set, error) {
	s := Set{}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%q: %w: %v", key, ErrMalformedValue, err)
	}
	return s, nil
}

func encode(s Set) ([]byte, error) {
	return json.Marshal(s.Clone())
}

const (
	DriverMemory = "memory"
	DriverPogreb = "pogreb"
	DriverBolt   = "bolt"
)

// Open opens a store for driver at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemStore(), nil
	case DriverPogreb:
		return OpenPogreb(path)
	case DriverBolt:
		return OpenBolt(path)
	}
	return nil, fmt.Errorf("%q: %w", driver, ErrUnknownDriver)
}

// Update reads the selection under key, applies fn and writes it back.
// Stores are not synchronized across processes; the last writer wins.
func Update(st Store, key string, fn func(Set)) (Set, error) {
	s, err := st.Get(key)
	if err != nil {
		return nil, err
	}
	fn(s)
	if err := st.Put(key, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Purge removes every selection from st.
func Purge(st Store) error {
	keys, err := st.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := st.Put(key, Set{}); err != nil {
			return err
		}
	}
	return nil
}
