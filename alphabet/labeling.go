package alphabet

// PredicateLabels is a simple concrete labelling store: for each
// location, the set of predicate names that hold there.
type PredicateLabels struct {
	byLocation map[Location]map[string]bool
}

// NewPredicateLabels constructs an empty labelling store.
func NewPredicateLabels() *PredicateLabels {
	return &PredicateLabels{byLocation: make(map[Location]map[string]bool)}
}

// Set records that predicate holds (or does not) at loc.
func (p *PredicateLabels) Set(loc Location, predicate string, value bool) {
	m, ok := p.byLocation[loc]
	if !ok {
		m = make(map[string]bool)
		p.byLocation[loc] = m
	}
	m[predicate] = value
}

// Get returns whether predicate holds at loc (false if never set).
func (p *PredicateLabels) Get(loc Location, predicate string) bool {
	return p.byLocation[loc][predicate]
}

// BoolLabelFunc adapts a PredicateLabels store into a LabelFunc[bool],
// ignoring the graph argument — the simplest concrete labelling
// function for the qualitative carrier.
func (p *PredicateLabels) BoolLabelFunc() LabelFunc[bool] {
	return func(_ Graph, loc Location, predicate string) bool {
		return p.Get(loc, predicate)
	}
}
