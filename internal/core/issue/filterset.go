package issue

// FilterSet is an immutable set of active issue filters.
// With and Without return new sets; the receiver is never modified.
type FilterSet struct {
	ids map[ID]struct{}
}

// NewFilterSet builds a set from the given ids.
func NewFilterSet(ids ...ID) FilterSet {
	s := FilterSet{ids: make(map[ID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is active.
func (s FilterSet) Has(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of active filters.
func (s FilterSet) Len() int { return len(s.ids) }

// With returns a copy of the set including id.
func (s FilterSet) With(id ID) FilterSet {
	next := s.copy()
	next.ids[id] = struct{}{}
	return next
}

// Without returns a copy of the set excluding id.
func (s FilterSet) Without(id ID) FilterSet {
	next := s.copy()
	delete(next.ids, id)
	return next
}

// Set returns the set with id enabled or disabled.
func (s FilterSet) Set(id ID, enabled bool) FilterSet {
	if enabled {
		return s.With(id)
	}
	return s.Without(id)
}

// IDs lists the active ids in catalog order.
func (s FilterSet) IDs() []ID {
	var out []ID
	for _, r := range catalog {
		if s.Has(r.ID) {
			out = append(out, r.ID)
		}
	}
	return out
}

// Equal reports whether both sets hold the same ids.
func (s FilterSet) Equal(o FilterSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for id := range s.ids {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

func (s FilterSet) copy() FilterSet {
	next := FilterSet{ids: make(map[ID]struct{}, len(s.ids)+1)}
	for id := range s.ids {
		next.ids[id] = struct{}{}
	}
	return next
}
