package flower

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrVariantNotFound is returned when a flower has no variant with the given id.
var ErrVariantNotFound = errors.New("variant not found")

// ErrMissingDetails is returned when an update is attempted without details.
var ErrMissingDetails = errors.New("details are required")

// NewFlower creates a standalone flower with id 0 and no variants.
func NewFlower(d FlowerDetails) *Flower {
	f := &Flower{}
	f.apply(d)
	return f
}

// AddVariant stamps the next local variant id onto d and stores it.
func (f *Flower) AddVariant(d VariantDetails) Variant {
	v := Variant{ID: f.nextVariantID}
	v.apply(d)
	f.nextVariantID++
	f.variants = append(f.variants, v)
	return v
}

// CountVariants returns the number of variants on the flower.
func (f *Flower) CountVariants() int {
	return len(f.variants)
}

// Variants returns a copy of the flower's variants in insertion order.
func (f *Flower) Variants() []Variant {
	out := make([]Variant, len(f.variants))
	copy(out, f.variants)
	return out
}

// FindVariant looks up a variant of this flower by id.
func (f *Flower) FindVariant(id int) (Variant, bool) {
	if i := f.variantIndex(id); i >= 0 {
		return f.variants[i], true
	}
	return Variant{}, false
}

// DeleteVariant removes the variant with the given id.
func (f *Flower) DeleteVariant(id int) error {
	n := len(f.variants)
	f.variants = slices.DeleteFunc(f.variants, func(v Variant) bool { return v.ID == id })
	if len(f.variants) == n {
		return ErrVariantNotFound
	}
	return nil
}

// UpdateVariant overwrites the mutable fields of a variant in place. The
// variant keeps its id.
func (f *Flower) UpdateVariant(id int, d *VariantDetails) error {
	if d == nil {
		return ErrMissingDetails
	}
	i := f.variantIndex(id)
	if i < 0 {
		return ErrVariantNotFound
	}
	f.variants[i].apply(*d)
	return nil
}

// SetVariantAvailability marks a variant as available or unavailable.
func (f *Flower) SetVariantAvailability(id int, available bool) error {
	i := f.variantIndex(id)
	if i < 0 {
		return ErrVariantNotFound
	}
	f.variants[i].Available = available
	return nil
}

// ListVariants renders every variant of the flower.
func (f *Flower) ListVariants() Report {
	r := Report{Sentinel: NoVariantsAdded}
	for _, v := range f.variants {
		r.Blocks = append(r.Blocks, v.Render())
	}
	return r
}

// Render returns the canonical text form of the flower, including its variants.
func (f *Flower) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s\n", f.ID, f.Name)
	fmt.Fprintf(&b, "   In Season (%s)\n", yesNo(f.InSeason))
	fmt.Fprintf(&b, "   Average Height (%.2fm)\n", f.AverageHeight)
	fmt.Fprintf(&b, "   Meaning (%s)\n", f.Meaning)
	if len(f.variants) == 0 {
		b.WriteString("   Variants: none")
		return b.String()
	}
	b.WriteString("   Variants:")
	for _, v := range f.variants {
		b.WriteString("\n")
		b.WriteString(indent(v.Render(), "\t"))
	}
	return b.String()
}

// Render returns the canonical text form of the variant.
func (v Variant) Render() string {
	return fmt.Sprintf("ID: %d\n   Name: %s\n   Expected Bloom Life (%d days)\n   Colour (%s)\n   Available (%s)\n   Price (€%.2f)",
		v.ID, v.Name, v.ExpectedBloomLife, v.Colour, yesNo(v.Available), v.Price)
}

func (f *Flower) variantIndex(id int) int {
	for i := range f.variants {
		if f.variants[i].ID == id {
			return i
		}
	}
	return -1
}

// clone returns a deep copy that shares no memory with f.
func (f *Flower) clone() Flower {
	c := *f
	c.variants = f.Variants()
	return c
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
