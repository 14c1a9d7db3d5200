package preset

import "fmt"

// Find returns the preset with the given identifier.
func Find(ps []Preset, id string) (*Preset, error) {
	for i := range ps {
		if ps[i].Identifier == id {
			return &ps[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", id, ErrPresetNotFound)
}
