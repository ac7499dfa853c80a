package naming

import "fmt"

// NameResolver hands out node names that are unique within one material.
// The first claim of a name gets it unchanged; later claims get "_2", "_3"
// and so on. It is meant for sequential use while one group is planned.
type NameResolver struct {
	taken    map[string]bool
	counters map[string]int // requested name → next suffix
}

// NewNameResolver creates a ready-to-use resolver.
func NewNameResolver() *NameResolver {
	return &NameResolver{
		taken:    make(map[string]bool),
		counters: make(map[string]int),
	}
}

// Resolve returns name, or the first free suffixed variant of it.
func (r *NameResolver) Resolve(name string) string {
	if !r.taken[name] {
		r.taken[name] = true
		return name
	}

	counter := r.counters[name]
	if counter == 0 {
		counter = 2
	}
	for {
		candidate := fmt.Sprintf("%s_%d", name, counter)
		if !r.taken[candidate] {
			r.counters[name] = counter + 1
			r.taken[candidate] = true
			return candidate
		}
		counter++
	}
}
