package domain

// CompareResult is the outcome of comparing two hands.
type CompareResult int8

const (
	// Illegal means the two hands cannot be compared.
	Illegal CompareResult = iota - 2
	Less
	Equal
	Greater
)

func (r CompareResult) String() string {
	switch r {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return "illegal"
}

// Compare orders a against b.
// Bombs and the nuke compare across types; everything else needs an identical
// type and card count.
func Compare(a, b Hand) CompareResult {
	if a.IsNone() || b.IsNone() {
		return Illegal
	}

	if a.Type != b.Type {
		switch {
		case a.Type == TypeNuke:
			return Greater
		case b.Type == TypeNuke:
			return Less
		case a.Type == TypeBomb:
			return Greater
		case b.Type == TypeBomb:
			return Less
		}
		return Illegal
	}

	if len(a.Cards) != len(b.Cards) {
		return Illegal
	}

	switch ra, rb := a.Rank(), b.Rank(); {
	case ra > rb:
		return Greater
	case ra < rb:
		return Less
	}
	return Equal
}

// Beats reports whether h may legally be played over prev.
func (h Hand) Beats(prev Hand) bool {
	return Compare(h, prev) == Greater
}

// CanBeat classifies both card sets and reports whether next beats prev.
func CanBeat(prev, next Cards) bool {
	return Classify(next).Beats(Classify(prev))
}
