package variant

import "avatar/internal/option"

// Selector resolves one category of a registry to one of its candidates.
//
// A Selector must be mounted before Resolve returns anything, and unmounted
// when the part it belongs to stops being rendered.
type Selector[T any] struct {
	reg   *option.Registry
	key   option.Key
	def   string
	cands []Variant[T]

	mounted  bool
	listener option.ListenerID
	current  string
	hasValue bool
}

// New builds a selector for key whose default is the value def.
func New[T any](reg *option.Registry, key option.Key, def string, cands ...Variant[T]) *Selector[T] {
	return &Selector[T]{reg: reg, key: key, def: def, cands: cands}
}

// NewWithDefault builds a selector whose default is the tag of def. It
// panics when def is untagged.
func NewWithDefault[T any](reg *option.Registry, key option.Key, def Variant[T], cands ...Variant[T]) *Selector[T] {
	return New(reg, key, def.Tag(), cands...)
}

// Key returns the category this selector is bound to.
func (s *Selector[T]) Key() option.Key { return s.key }

// Mounted reports whether the selector is currently bound to its registry.
func (s *Selector[T]) Mounted() bool { return s.mounted }

// Mount subscribes to the registry, records the binding, registers the
// candidate tags and the default, and reads the current value.
func (s *Selector[T]) Mount() {
	if s.mounted {
		return
	}
	s.mounted = true
	s.listener = s.reg.AddStateListener(s.read)
	s.reg.Enter(s.key)
	s.register()
	if s.reg.Has(s.key) {
		s.reg.SetDefault(s.key, s.def)
	}
	s.read()
}

// Unmount drops the subscription and the binding. Calling it on an
// unmounted selector does nothing.
func (s *Selector[T]) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	s.reg.RemoveStateListener(s.listener)
	s.reg.Exit(s.key)
}

// SetCandidates replaces the candidate list, re-registering tags when mounted.
func (s *Selector[T]) SetCandidates(cands ...Variant[T]) {
	s.cands = cands
	if s.mounted {
		s.register()
		s.read()
	}
}

// Resolve returns the first candidate whose tag equals the current value.
// No value yet, or a value no candidate carries, resolves to nothing.
func (s *Selector[T]) Resolve() (Variant[T], bool) {
	if !s.mounted || !s.hasValue {
		return Variant[T]{}, false
	}
	for _, c := range s.cands {
		if c.Tag() == s.current {
			return c, true
		}
	}
	return Variant[T]{}, false
}

func (s *Selector[T]) register() {
	tags := Tags(s.cands)
	s.reg.RegisterCandidates(s.key, tags)
}

func (s *Selector[T]) read() {
	s.current, s.hasValue = s.reg.Value(s.key)
}
