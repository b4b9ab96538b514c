package analyze

// scope tracks which variables have certainly been assigned on every path
// reaching the current statement. There is no nesting of scopes in our
// language, so branches work on copies which are intersected at the join.
type scope struct {
	vars map[string]struct{}
}

func newScope() *scope {
	return &scope{vars: map[string]struct{}{}}
}

func (s *scope) add(name string) {
	s.vars[name] = struct{}{}
}

func (s *scope) has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

func (s *scope) copy() *scope {
	ret := newScope()
	for name := range s.vars {
		ret.add(name)
	}
	return ret
}

// intersect keeps only the variables assigned in both s and other.
func (s *scope) intersect(other *scope) *scope {
	ret := newScope()
	for name := range s.vars {
		if other.has(name) {
			ret.add(name)
		}
	}
	return ret
}
