package quantity

const (
	GramsPerKilogram = 1000
	// A litre is booked as 1000 g for this inventory.
	GramsPerLitre = 1000
)

// ToGramEquivalent folds the gram, kilogram and litre amounts into one pool.
func ToGramEquivalent(gram, kg, litre float64) float64 {
	return gram + kg*GramsPerKilogram + litre*GramsPerLitre
}

// FromGramEquivalent returns the kilogram (and litre) view of a gram pool.
func FromGramEquivalent(gram float64) float64 {
	return gram / GramsPerKilogram
}
