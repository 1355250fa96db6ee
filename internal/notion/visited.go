package notion

// Visited tracks block and page identifiers already expanded within one root
// fetch. It is the sole guard against infinite recursion through synced-block
// references and other back-edges. Not safe for concurrent use; the fetch
// walk is strictly sequential.
type Visited struct {
	ids map[string]struct{}
}

func NewVisited() *Visited {
	return &Visited{ids: make(map[string]struct{})}
}

func (v *Visited) Seen(id string) bool {
	_, ok := v.ids[id]
	return ok
}

func (v *Visited) Add(id string) {
	v.ids[id] = struct{}{}
}

func (v *Visited) Len() int {
	return len(v.ids)
}
