// Package seed loads a starting catalogue from a YAML file into a
// flower.Repository. Nothing is ever written back.
package seed

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/petalstack/florist/internal/flower"
)

// Catalogue is the document layout of a seed file.
type Catalogue struct {
	Flowers []Flower `json:"flowers"`
}

// Flower is one flower entry in a seed file.
type Flower struct {
	Name          string    `json:"name"`
	InSeason      bool      `json:"inSeason"`
	AverageHeight float64   `json:"averageHeight"`
	Meaning       string    `json:"meaning"`
	Variants      []Variant `json:"variants,omitempty"`
}

// Variant is one variant entry in a seed file.
type Variant struct {
	Name              string  `json:"name"`
	ExpectedBloomLife int     `json:"expectedBloomLife"`
	Colour            string  `json:"colour"`
	Available         bool    `json:"available"`
	Price             float64 `json:"price"`
}

// Result summarises what a seed run added.
type Result struct {
	Flowers  int
	Variants int
}

// Parse decodes a seed document. Unknown fields are rejected so that typos
// in hand-written files surface early; values are taken as written.
func Parse(data []byte) (*Catalogue, error) {
	var cat Catalogue
	if err := yaml.UnmarshalStrict(data, &cat); err != nil {
		return nil, fmt.Errorf("decoding seed catalogue: %w", err)
	}
	return &cat, nil
}

// Apply adds every flower and variant of cat to repo, in document order.
func Apply(repo *flower.Repository, cat *Catalogue) (Result, error) {
	var res Result
	for _, f := range cat.Flowers {
		added := repo.Add(flower.FlowerDetails{
			Name:          f.Name,
			InSeason:      f.InSeason,
			AverageHeight: f.AverageHeight,
			Meaning:       f.Meaning,
		})
		res.Flowers++

		for _, v := range f.Variants {
			_, err := repo.AddVariant(added.ID, flower.VariantDetails{
				Name:              v.Name,
				ExpectedBloomLife: v.ExpectedBloomLife,
				Colour:            v.Colour,
				Available:         v.Available,
				Price:             v.Price,
			})
			if err != nil {
				return res, fmt.Errorf("adding variant %q to flower %d: %w", v.Name, added.ID, err)
			}
			res.Variants++
		}
	}
	return res, nil
}

// LoadFile reads the seed file at path and applies it to repo.
func LoadFile(repo *flower.Repository, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading seed file: %w", err)
	}

	cat, err := Parse(data)
	if err != nil {
		return Result{}, err
	}

	return Apply(repo, cat)
}
