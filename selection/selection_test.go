package selection_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-sync/fnf-presets/selection"
)

func TestSet(t *testing.T) {
	s := selection.Set{}
	s.Add("L2")
	s.Add("L1")
	s.Toggle("L3", true)
	s.Toggle("L2", false)

	assert.True(t, s.Has("L1"))
	assert.False(t, s.Has("L2"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"L1", "L3"}, s.Links())

	c := s.Clone()
	c.Remove("L1")
	assert.True(t, s.Has("L1"))
}

func TestSet_JSON(t *testing.T) {
	s := selection.Set{}
	s.Add("https://steamcommunity.com/sharedfiles/filedetails/?id=463939057")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"https://steamcommunity.com/sharedfiles/filedetails/?id=463939057": true}`, string(data))
}

func openStores(t *testing.T) map[string]selection.Store {
	dir := t.TempDir()
	stores := make(map[string]selection.Store)
	for driver, path := range map[string]string{
		selection.DriverMemory: "",
		selection.DriverPogreb: filepath.Join(dir, "selections.pogreb"),
		selection.DriverBolt:   filepath.Join(dir, "selections.db"),
	} {
		st, err := selection.Open(driver, path)
		require.NoError(t, err, driver)
		stores[driver] = st
	}
	return stores
}

func TestStores(t *testing.T) {
	for driver, st := range openStores(t) {
		t.Run(driver, func(t *testing.T) {
			defer func() {
				assert.NoError(t, st.Close())
			}()

			s, err := st.Get("missing.html")
			require.NoError(t, err)
			assert.Equal(t, 0, s.Len())

			require.NoError(t, st.Put("a.html", selection.Set{"L2": true, "L3": true}))
			s, err = st.Get("a.html")
			require.NoError(t, err)
			assert.Equal(t, []string{"L2", "L3"}, s.Links())

			s, err = selection.Update(st, "a.html", func(s selection.Set) {
				s.Remove("L3")
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"L2"}, s.Links())

			s, err = st.Get("a.html")
			require.NoError(t, err)
			assert.Equal(t, []string{"L2"}, s.Links())

			require.NoError(t, st.Put("a.html", selection.Set{}))
			s, err = st.Get("a.html")
			require.NoError(t, err)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestPogrebStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selections.pogreb")

	st, err := selection.OpenPogreb(path)
	require.NoError(t, err)
	require.NoError(t, st.Put("a.html", selection.Set{"L2": true}))
	require.NoError(t, st.Close())

	st, err = selection.OpenPogreb(path)
	require.NoError(t, err)
	defer st.Close()
	s, err := st.Get("a.html")
	require.NoError(t, err)
	assert.True(t, s.Has("L2"))
}

func TestBoltStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selections.db")

	st, err := selection.OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, st.Put("a.html", selection.Set{"L2": true}))
	require.NoError(t, st.Close())

	st, err = selection.OpenBolt(path)
	require.NoError(t, err)
	defer st.Close()
	s, err := st.Get("a.html")
	require.NoError(t, err)
	assert.True(t, s.Has("L2"))
}

func TestMemStore_Closed(t *testing.T) {
	st := selection.NewMemStore()
	require.NoError(t, st.Close())

	_, err := st.Get("a.html")
	assert.ErrorIs(t, err, selection.ErrStoreClosed)
	assert.ErrorIs(t, st.Put("a.html", selection.Set{"L1": true}), selection.ErrStoreClosed)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := selection.Open("redis", "")
	assert.ErrorIs(t, err, selection.ErrUnknownDriver)
}

func TestPurge(t *testing.T) {
	for driver, st := range openStores(t) {
		t.Run(driver, func(t *testing.T) {
			defer func() {
				assert.NoError(t, st.Close())
			}()

			require.NoError(t, st.Put("b.html", selection.Set{"L1": true}))
			require.NoError(t, st.Put("a.html", selection.Set{"L2": true}))
			keys, err := st.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"a.html", "b.html"}, keys)

			require.NoError(t, selection.Purge(st))
			keys, err = st.Keys()
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}
