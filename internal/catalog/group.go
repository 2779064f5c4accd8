package catalog

// ManufacturerGroup is one manufacturer and its records in catalog order.
type ManufacturerGroup[T Record] struct {
	Manufacturer string `json:"manufacturer"`
	Records      []T    `json:"records"`
}

// Grouping maps manufacturers to records while remembering the order in which
// manufacturers first appeared.
type Grouping[T Record] struct {
	Groups []ManufacturerGroup[T]
	index  map[string]int
}

// Group projects records into a manufacturer grouping. Keys compare by exact string
// equality. The input slice is not modified.
func Group[T Record](records []T) Grouping[T] {
	g := Grouping[T]{
		Groups: make([]ManufacturerGroup[T], 0),
		index:  make(map[string]int),
	}
	for _, r := range records {
		i, ok := g.index[r.Make()]
		if !ok {
			i = len(g.Groups)
			g.index[r.Make()] = i
			g.Groups = append(g.Groups, ManufacturerGroup[T]{Manufacturer: r.Make()})
		}
		g.Groups[i].Records = append(g.Groups[i].Records, r)
	}
	return g
}

func (g Grouping[T]) Len() int {
	return len(g.Groups)
}

// Manufacturers lists the keys in first-appearance order.
func (g Grouping[T]) Manufacturers() []string {
	out := make([]string, 0, len(g.Groups))
	for _, grp := range g.Groups {
		out = append(out, grp.Manufacturer)
	}
	return out
}

// Records returns the records for a manufacturer, or nil.
func (g Grouping[T]) Records(manufacturer string) []T {
	i, ok := g.index[manufacturer]
	if !ok {
		return nil
	}
	return g.Groups[i].Records
}

// Map flattens the grouping into a plain map.
func (g Grouping[T]) Map() map[string][]T {
	out := make(map[string][]T, len(g.Groups))
	for _, grp := range g.Groups {
		out[grp.Manufacturer] = grp.Records
	}
	return out
}
