package dir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-sync/fnf-presets/builder"
	"github.com/a-sync/fnf-presets/builder/dir"
	"github.com/a-sync/fnf-presets/preset"
)

func TestDirBuilder(t *testing.T) {
	out := t.TempDir()
	b := dir.NewDirBuilder(out)

	p := &preset.Preset{
		Identifier:  "fnf_main.html",
		DisplayName: "FNF Main",
		Mods: preset.Mods{
			DLC:      []preset.ModEntry{{Name: "Contact", Link: "https://store.steampowered.com/app/1021790"}},
			Required: []preset.ModEntry{{Name: "CBA", Link: "L1"}},
		},
	}
	require.NoError(t, b.Add(p, nil))
	assert.ErrorIs(t, b.Add(p, nil), builder.ErrDuplicateName)
	require.NoError(t, b.Close())

	assert.Equal(t, filepath.Join(out, "fnf_main.html"), b.Path(p))
	data, err := os.ReadFile(b.Path(p))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<meta name="arma:PresetName" content="FNF Main" />`)
	assert.Contains(t, string(data), `data-type="DlcContainer"`)
}
