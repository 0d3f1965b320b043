// Package variant binds renderable choices to option categories. A Selector
// subscribes to an option.Registry and picks the candidate whose tag matches
// the category's current value.
package variant

import (
	"github.com/pkg/errors"
)

// ErrUntagged is the panic value, wrapped, of Tag on a variant not built
// with Tagged. It marks a wiring bug that must not be recovered.
var ErrUntagged = errors.New("variant: untagged")

// Variant is one renderable choice tagged with the option value it stands
// for. Build it with Tagged; the zero Variant carries no tag.
type Variant[T any] struct {
	tag     string
	Payload T
}

// Tagged wraps payload as the variant for option value tag.
func Tagged[T any](tag string, payload T) Variant[T] {
	return Variant[T]{tag: tag, Payload: payload}
}

// Tag returns the option value v represents. It panics when v was not built
// with Tagged: an untagged variant is a composition bug.
func (v Variant[T]) Tag() string {
	if v.tag == "" {
		panic(errors.Wrapf(ErrUntagged, "%T", v))
	}
	return v.tag
}

// Tags extracts the tag of every candidate, in order.
func Tags[T any](cands []Variant[T]) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Tag()
	}
	return out
}
