package option

// State is the mutable bookkeeping kept for one category.
type State struct {
	Key        Key
	Valid      []string
	Default    string
	HasDefault bool
	Refs       int
}

// ValueListener is notified with the key and value of every SetValue.
type ValueListener func(k Key, v string)

// ListenerID is the handle returned by AddValueListener and AddStateListener.
type ListenerID uint64

// Registry maps every category of one avatar to its current value and
// broadcasts changes to subscribers. Operations on keys outside the catalog
// it was built from are silently ignored.
//
// A Registry is not safe for concurrent use; its owner serializes access.
type Registry struct {
	states map[Key]*State
	values Values

	nextID  ListenerID
	valueLs map[ListenerID]ValueListener
	stateLs map[ListenerID]func()
}

// NewRegistry builds a registry for the default Catalog.
func NewRegistry() *Registry {
	return NewRegistryFor(Catalog)
}

// NewRegistryFor builds a registry whose known keys are those of cats.
func NewRegistryFor(cats []Category) *Registry {
	r := &Registry{
		states:  make(map[Key]*State, len(cats)),
		values:  Values{},
		valueLs: map[ListenerID]ValueListener{},
		stateLs: map[ListenerID]func(){},
	}
	for _, c := range cats {
		r.states[c.Key] = &State{Key: c.Key}
	}
	return r
}

// Has reports whether k is a known category.
func (r *Registry) Has(k Key) bool {
	_, ok := r.states[k]
	return ok
}

// Enter records one more live binding for k.
func (r *Registry) Enter(k Key) {
	if st, ok := r.states[k]; ok {
		st.Refs++
	}
}

// Exit releases one binding for k. The count never drops below zero.
func (r *Registry) Exit(k Key) {
	if st, ok := r.states[k]; ok && st.Refs > 0 {
		st.Refs--
	}
}

// RegisterCandidates replaces the valid value set of k with tags, unless
// tags contains a duplicate, in which case the previous set is kept.
func (r *Registry) RegisterCandidates(k Key, tags []string) {
	st, ok := r.states[k]
	if !ok || hasDuplicates(tags) {
		return
	}
	st.Valid = append([]string(nil), tags...)
}

// SetDefault sets the fallback value of k, replacing any earlier one.
func (r *Registry) SetDefault(k Key, v string) {
	if st, ok := r.states[k]; ok {
		st.Default = v
		st.HasDefault = true
	}
}

// SetValue stores v for k and notifies value listeners, then state listeners.
func (r *Registry) SetValue(k Key, v string) {
	if !r.Has(k) {
		return
	}
	r.values[k] = v
	for _, fn := range r.valueSnapshot() {
		fn(k, v)
	}
	r.notifyState()
}

// SetAll replaces every current value at once. Only state listeners are
// notified; value listeners see nothing.
func (r *Registry) SetAll(vals Values) {
	next := Values{}
	for k, v := range vals {
		if r.Has(k) {
			next[k] = v
		}
	}
	r.values = next
	r.notifyState()
}

// Value resolves k: the explicit value if set, else the default.
func (r *Registry) Value(k Key) (string, bool) {
	if v, ok := r.values[k]; ok {
		return v, true
	}
	if st, ok := r.states[k]; ok && st.HasDefault {
		return st.Default, true
	}
	return "", false
}

// State returns a copy of the bookkeeping for k.
func (r *Registry) State(k Key) (State, bool) {
	st, ok := r.states[k]
	if !ok {
		return State{}, false
	}
	out := *st
	out.Valid = append([]string(nil), st.Valid...)
	return out, true
}

// Values returns a copy of the explicitly set values.
func (r *Registry) Values() Values {
	return r.values.Clone()
}

func (r *Registry) AddValueListener(fn ValueListener) ListenerID {
	r.nextID++
	r.valueLs[r.nextID] = fn
	return r.nextID
}

func (r *Registry) RemoveValueListener(id ListenerID) {
	delete(r.valueLs, id)
}

func (r *Registry) AddStateListener(fn func()) ListenerID {
	r.nextID++
	r.stateLs[r.nextID] = fn
	return r.nextID
}

func (r *Registry) RemoveStateListener(id ListenerID) {
	delete(r.stateLs, id)
}

// Listeners may add or remove subscriptions while being notified, so every
// broadcast iterates over a copy.
func (r *Registry) valueSnapshot() []ValueListener {
	out := make([]ValueListener, 0, len(r.valueLs))
	for _, fn := range r.valueLs {
		out = append(out, fn)
	}
	return out
}

func (r *Registry) notifyState() {
	ls := make([]func(), 0, len(r.stateLs))
	for _, fn := range r.stateLs {
		ls = append(ls, fn)
	}
	for _, fn := range ls {
		fn()
	}
}

func hasDuplicates(tags []string) bool {
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			return true
		}
		seen[t] = true
	}
	return false
}
