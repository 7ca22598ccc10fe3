package flower

// Variant is a sellable configuration of a Flower. Its ID is only unique
// within the owning flower.
type Variant struct {
	ID                int
	Name              string
	ExpectedBloomLife int // days
	Colour            string
	Available         bool
	Price             float64
}

// VariantDetails holds the caller-supplied fields of a variant.
type VariantDetails struct {
	Name              string
	ExpectedBloomLife int
	Colour            string
	Available         bool
	Price             float64
}

// Flower represents a catalogue entry. Variants are owned by the flower and
// are only reachable through its methods.
type Flower struct {
	ID            int
	Name          string
	InSeason      bool
	AverageHeight float64
	Meaning       string

	variants      []Variant
	nextVariantID int
}

// FlowerDetails holds the caller-supplied fields of a flower.
type FlowerDetails struct {
	Name          string
	InSeason      bool
	AverageHeight float64
	Meaning       string
}

// VariantMatch is a variant found by a cross-flower query, together with
// the flower that owns it.
type VariantMatch struct {
	FlowerID   int
	FlowerName string
	Variant    Variant
}

func (v *Variant) apply(d VariantDetails) {
	v.Name = d.Name
	v.ExpectedBloomLife = d.ExpectedBloomLife
	v.Colour = d.Colour
	v.Available = d.Available
	v.Price = d.Price
}

func (f *Flower) apply(d FlowerDetails) {
	f.Name = d.Name
	f.InSeason = d.InSeason
	f.AverageHeight = d.AverageHeight
	f.Meaning = d.Meaning
}
