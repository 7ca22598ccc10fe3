package flower

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

// ErrFlowerNotFound is returned when no flower has the given id.
var ErrFlowerNotFound = errors.New("flower not found")

// Repository holds the flower catalogue in memory. Flower ids are assigned
// from a counter that is never rewound, so ids are not reused after a delete.
//
// A single lock guards the flowers and their variants. Every read returns a
// deep copy, so callers cannot mutate catalogue state without going through
// the repository.
type Repository struct {
	mu      sync.RWMutex
	flowers []*Flower
	nextID  int
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Add stamps the next flower id onto d, stores it, and returns the stored flower.
func (r *Repository) Add(d FlowerDetails) Flower {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := NewFlower(d)
	f.ID = r.nextID
	r.nextID++
	r.flowers = append(r.flowers, f)
	return f.clone()
}

// Delete removes every flower whose id matches.
func (r *Repository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.flowers)
	r.flowers = slices.DeleteFunc(r.flowers, func(f *Flower) bool { return f.ID == id })
	if len(r.flowers) == n {
		return ErrFlowerNotFound
	}
	return nil
}

// Update overwrites name, season flag, height and meaning of a flower and
// returns the updated flower. The flower's id and variants are left untouched.
func (r *Repository) Update(id int, d *FlowerDetails) (Flower, error) {
	if d == nil {
		return Flower{}, ErrMissingDetails
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(id)
	if f == nil {
		return Flower{}, ErrFlowerNotFound
	}
	f.apply(*d)
	return f.clone(), nil
}

// SetInSeason marks a flower as in or out of season and returns the updated flower.
func (r *Repository) SetInSeason(id int, inSeason bool) (Flower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(id)
	if f == nil {
		return Flower{}, ErrFlowerNotFound
	}
	f.InSeason = inSeason
	return f.clone(), nil
}

// Find returns a copy of the flower with the given id.
func (r *Repository) Find(id int) (Flower, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f := r.lookup(id)
	if f == nil {
		return Flower{}, false
	}
	return f.clone(), true
}

// Count returns the number of stored flowers.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flowers)
}

// CountBlooming returns the number of flowers currently in season.
func (r *Repository) CountBlooming() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, f := range r.flowers {
		if f.InSeason {
			n++
		}
	}
	return n
}

// List returns every flower in insertion order.
func (r *Repository) List() []Flower {
	return r.filter(func(*Flower) bool { return true })
}

// ListBlooming returns the flowers that are in season.
func (r *Repository) ListBlooming() []Flower {
	return r.filter(func(f *Flower) bool { return f.InSeason })
}

// SearchByName returns flowers whose name contains search, ignoring case.
func (r *Repository) SearchByName(search string) []Flower {
	return r.filter(func(f *Flower) bool { return containsFold(f.Name, search) })
}

// ListAllReport renders every flower.
func (r *Repository) ListAllReport() Report {
	return flowerReport(r.List(), NoFlowersStored)
}

// ListBloomingReport renders the flowers that are in season.
func (r *Repository) ListBloomingReport() Report {
	return flowerReport(r.ListBlooming(), NoBloomingFlowersStored)
}

// SearchByNameReport renders the flowers whose name contains search.
func (r *Repository) SearchByNameReport(search string) Report {
	if r.Count() == 0 {
		return Report{Sentinel: NoFlowersStored}
	}
	return flowerReport(r.SearchByName(search), noFlowersFound(search))
}

// AddVariant adds a variant to the flower with the given id.
func (r *Repository) AddVariant(flowerID int, d VariantDetails) (Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(flowerID)
	if f == nil {
		return Variant{}, ErrFlowerNotFound
	}
	return f.AddVariant(d), nil
}

// FindVariant looks up a variant within a single flower.
func (r *Repository) FindVariant(flowerID, variantID int) (Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f := r.lookup(flowerID)
	if f == nil {
		return Variant{}, ErrFlowerNotFound
	}
	v, ok := f.FindVariant(variantID)
	if !ok {
		return Variant{}, ErrVariantNotFound
	}
	return v, nil
}

// UpdateVariant overwrites a variant's fields within a single flower and
// returns the updated variant.
func (r *Repository) UpdateVariant(flowerID, variantID int, d *VariantDetails) (Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(flowerID)
	if f == nil {
		return Variant{}, ErrFlowerNotFound
	}
	if err := f.UpdateVariant(variantID, d); err != nil {
		return Variant{}, err
	}
	v, _ := f.FindVariant(variantID)
	return v, nil
}

// DeleteVariant removes a variant from a single flower.
func (r *Repository) DeleteVariant(flowerID, variantID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(flowerID)
	if f == nil {
		return ErrFlowerNotFound
	}
	return f.DeleteVariant(variantID)
}

// SetVariantAvailability marks a variant of a flower as available or not and
// returns the updated variant.
func (r *Repository) SetVariantAvailability(flowerID, variantID int, available bool) (Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(flowerID)
	if f == nil {
		return Variant{}, ErrFlowerNotFound
	}
	if err := f.SetVariantAvailability(variantID, available); err != nil {
		return Variant{}, err
	}
	v, _ := f.FindVariant(variantID)
	return v, nil
}

// ListVariants renders the variants of a single flower.
func (r *Repository) ListVariants(flowerID int) (Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f := r.lookup(flowerID)
	if f == nil {
		return Report{}, ErrFlowerNotFound
	}
	return f.ListVariants(), nil
}

// SearchVariants returns the variants, across all flowers, whose name
// contains search, ignoring case.
func (r *Repository) SearchVariants(search string) []VariantMatch {
	return r.matchVariants(func(v Variant) bool { return containsFold(v.Name, search) })
}

// AvailableVariants returns every available variant across all flowers.
func (r *Repository) AvailableVariants() []VariantMatch {
	return r.matchVariants(func(v Variant) bool { return v.Available })
}

// CountAvailableVariants returns the number of available variants across all flowers.
func (r *Repository) CountAvailableVariants() int {
	return len(r.AvailableVariants())
}

// SearchVariantsReport renders the variants whose name contains search.
func (r *Repository) SearchVariantsReport(search string) Report {
	if r.Count() == 0 {
		return Report{Sentinel: NoFlowersStored}
	}
	return variantReport(r.SearchVariants(search), noVariantsFound(search))
}

// AvailableVariantsReport renders every available variant.
func (r *Repository) AvailableVariantsReport() Report {
	if r.Count() == 0 {
		return Report{Sentinel: NoFlowersStored}
	}
	return variantReport(r.AvailableVariants(), NoAvailableVariants)
}

// lookup must be called with r.mu held.
func (r *Repository) lookup(id int) *Flower {
	for _, f := range r.flowers {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (r *Repository) filter(keep func(*Flower) bool) []Flower {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Flower{}
	for _, f := range r.flowers {
		if keep(f) {
			out = append(out, f.clone())
		}
	}
	return out
}

func (r *Repository) matchVariants(keep func(Variant) bool) []VariantMatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []VariantMatch{}
	for _, f := range r.flowers {
		for _, v := range f.variants {
			if keep(v) {
				out = append(out, VariantMatch{FlowerID: f.ID, FlowerName: f.Name, Variant: v})
			}
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
