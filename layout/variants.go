package layout

import (
	"fmt"

	"github.com/wippyai/gameres/errors"
)

// Variants selects among per-generation descriptors of the same role,
// keyed by a game enum.
type Variants[G comparable] struct {
	byGame map[G]*Descriptor
	name   string
}

// NewVariants returns an empty variant table for the named role.
func NewVariants[G comparable](name string) *Variants[G] {
	return &Variants[G]{name: name, byGame: make(map[G]*Descriptor)}
}

// Add binds game to d. It is meant for package init.
func (v *Variants[G]) Add(game G, d *Descriptor) *Variants[G] {
	v.byGame[game] = d
	return v
}

// Select returns the descriptor for game.
func (v *Variants[G]) Select(game G) (*Descriptor, error) {
	d, ok := v.byGame[game]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLayout, v.name+" variant", fmt.Sprint(game))
	}
	return d, nil
}

// Name returns the role name.
func (v *Variants[G]) Name() string { return v.name }
