// Package console implements the interactive text menu over a flower catalogue.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/petalstack/florist/internal/flower"
)

const rule = "════════════════════════════════════════════════════════"

const mainMenu = rule + `
               FLOWER TRACKER APP
` + rule + `
                    FLOWER MENU:
1)      Add a flower
2)      List flowers
3)      Update a flower
4)      Delete a flower
5)      Change flowers blooming status
` + rule + `
                   VARIANT MENU:
6)      Add variant to a flower
7)      Update variant contents on a flower
8)      Delete variant from a flower
9)      Change variant availability status
` + rule + `
              REPORT MENU FOR FLOWERS:
10)     Search for all flowers (by flower name)
11)     List the variants of a flower
12)     Catalogue totals
` + rule + `
              REPORT MENU FOR VARIANTS:
15)     Search for all variants (by variant name)
16)     List all available variants in stock
` + rule + `
0)      Exit
` + rule + `
==>> `

// Console drives the catalogue from a line-oriented input.
type Console struct {
	repo   *flower.Repository
	p      *prompter
	out    io.Writer
	logger *slog.Logger
}

// New creates a Console reading answers from in and writing to out.
func New(repo *flower.Repository, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{repo: repo, p: newPrompter(in, out), out: out, logger: logger}
}

// Run shows the main menu until the user exits, the input ends, or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.p.ctx = ctx
	defer func() { c.p.ctx = context.Background() }()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		option, err := c.p.readInt(mainMenu)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		// Cancellation can land between the answer and the action.
		if err := ctx.Err(); err != nil {
			return err
		}

		if option == 0 {
			c.banner("Exiting, Goodbye")
			return nil
		}

		c.logger.Debug("menu option selected", "option", option)
		if err := c.dispatch(option); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (c *Console) dispatch(option int) error {
	switch option {
	case 1:
		return c.addFlower()
	case 2:
		return c.listFlowers()
	case 3:
		return c.updateFlower()
	case 4:
		return c.deleteFlower()
	case 5:
		return c.toggleSeason()
	case 6:
		return c.addVariant()
	case 7:
		return c.updateVariant()
	case 8:
		return c.deleteVariant()
	case 9:
		return c.toggleAvailability()
	case 10:
		return c.searchFlowers()
	case 11:
		return c.listFlowerVariants()
	case 12:
		c.totals()
		return nil
	case 15:
		return c.searchVariants()
	case 16:
		c.listAvailableVariants()
		return nil
	default:
		c.banner(fmt.Sprintf("Invalid menu option entered: %d", option))
		return nil
	}
}

func (c *Console) addFlower() error {
	d, err := c.readFlowerDetails()
	if err != nil {
		return err
	}
	f := c.repo.Add(d)
	c.logger.Info("flower added", "id", f.ID)
	c.banner("Add Successful")
	return nil
}

func (c *Console) listFlowers() error {
	if c.repo.Count() == 0 {
		c.banner("Option Invalid - " + flower.NoFlowersStored)
		return nil
	}

	option, err := c.p.readInt(rule + "\n1)      View all flowers\n2)      View currently blooming flowers\n" + rule + "\n==>> ")
	if err != nil {
		return err
	}
	switch option {
	case 1:
		c.println(c.repo.ListAllReport().String())
	case 2:
		c.println(c.repo.ListBloomingReport().String())
	default:
		c.banner(fmt.Sprintf("Invalid option entered: %d", option))
	}
	return nil
}

func (c *Console) updateFlower() error {
	f, ok, err := c.chooseFlower()
	if err != nil || !ok {
		return err
	}
	d, err := c.readFlowerDetails()
	if err != nil {
		return err
	}
	if _, err := c.repo.Update(f.ID, &d); err != nil {
		c.logger.Error("failed to update flower", "error", err, "id", f.ID)
		c.banner("Update Unsuccessful")
		return nil
	}
	c.banner("Update Successful")
	return nil
}

func (c *Console) deleteFlower() error {
	if c.repo.Count() == 0 {
		c.banner("Option Invalid - " + flower.NoFlowersStored)
		return nil
	}
	c.println(c.repo.ListAllReport().String())
	id, err := c.p.readInt("Enter the id of the flower to delete: ")
	if err != nil {
		return err
	}
	if err := c.repo.Delete(id); err != nil {
		c.banner("Delete Unsuccessful")
		return nil
	}
	c.logger.Info("flower deleted", "id", id)
	c.banner("Delete Successful")
	return nil
}

func (c *Console) toggleSeason() error {
	f, ok, err := c.chooseFlower()
	if err != nil || !ok {
		return err
	}

	from, to := "in season", "out of season"
	if !f.InSeason {
		from, to = to, from
	}
	answer, err := c.p.readChar(fmt.Sprintf("The flower is currently %s... do you want to mark it as %s? (Y for yes): ", from, to))
	if err != nil {
		return err
	}

	switch {
	case isYes(answer):
		if _, err := c.repo.SetInSeason(f.ID, !f.InSeason); err != nil {
			c.logger.Error("failed to change season", "error", err, "id", f.ID)
			return nil
		}
		c.banner("You have changed this flowers status to " + to)
	case isNo(answer):
		c.banner("You have not changed this flowers status")
	default:
		c.banner("Invalid Option")
	}
	return nil
}

func (c *Console) addVariant() error {
	f, ok, err := c.chooseFlower()
	if err != nil || !ok {
		return err
	}
	d, err := c.readVariantDetails()
	if err != nil {
		return err
	}
	v, err := c.repo.AddVariant(f.ID, d)
	if err != nil {
		c.banner("Add NOT Successful")
		return nil
	}
	c.logger.Info("variant added", "flowerId", f.ID, "variantId", v.ID)
	c.banner("Add Successful!")
	return nil
}

func (c *Console) updateVariant() error {
	f, v, ok, err := c.chooseVariant()
	if err != nil || !ok {
		return err
	}
	d, err := c.readVariantDetails()
	if err != nil {
		return err
	}
	if _, err := c.repo.UpdateVariant(f.ID, v.ID, &d); err != nil {
		c.banner("Variant contents NOT updated")
		return nil
	}
	c.banner("Variant contents updated")
	return nil
}

func (c *Console) deleteVariant() error {
	f, v, ok, err := c.chooseVariant()
	if err != nil || !ok {
		return err
	}
	if err := c.repo.DeleteVariant(f.ID, v.ID); err != nil {
		c.banner("Delete NOT Successful")
		return nil
	}
	c.banner("Deleted Successfully!")
	return nil
}

func (c *Console) toggleAvailability() error {
	f, v, ok, err := c.chooseVariant()
	if err != nil || !ok {
		return err
	}

	from, to := "available", "unavailable"
	if !v.Available {
		from, to = to, from
	}
	answer, err := c.p.readChar(fmt.Sprintf("The Variant is currently %s... do you want to mark it as %s? (Y for yes): ", from, to))
	if err != nil {
		return err
	}

	switch {
	case isYes(answer):
		if _, err := c.repo.SetVariantAvailability(f.ID, v.ID, !v.Available); err != nil {
			c.logger.Error("failed to change availability", "error", err, "flowerId", f.ID, "variantId", v.ID)
			return nil
		}
		c.banner("You have changed this variants status to " + to)
	case isNo(answer):
		c.banner("This variants status has not changed")
	default:
		c.banner("Invalid option")
	}
	return nil
}

func (c *Console) searchFlowers() error {
	search, err := c.p.readLine("Enter the Flower name to search by: ")
	if err != nil {
		return err
	}
	c.println(c.repo.SearchByNameReport(search).String())
	return nil
}

func (c *Console) listFlowerVariants() error {
	f, ok, err := c.chooseFlower()
	if err != nil || !ok {
		return err
	}
	report, err := c.repo.ListVariants(f.ID)
	if err != nil {
		c.banner("Flower id is not valid")
		return nil
	}
	c.println(report.String())
	return nil
}

func (c *Console) totals() {
	fmt.Fprintf(c.out, "Total Flowers: %d\nTotal Blooming Flowers: %d\nTotal Available Variants: %d\n",
		c.repo.Count(), c.repo.CountBlooming(), c.repo.CountAvailableVariants())
}

func (c *Console) searchVariants() error {
	search, err := c.p.readLine("Enter the Variant Name to search by: ")
	if err != nil {
		return err
	}
	c.println(c.repo.SearchVariantsReport(search).String())
	return nil
}

func (c *Console) listAvailableVariants() {
	if n := c.repo.CountAvailableVariants(); n > 0 {
		fmt.Fprintf(c.out, "Total Available Variants: %d\n", n)
	}
	c.println(c.repo.AvailableVariantsReport().String())
}

// chooseFlower lists the catalogue and asks for a flower id. ok is false when
// there is nothing to choose or the id does not match a flower.
func (c *Console) chooseFlower() (flower.Flower, bool, error) {
	if c.repo.Count() == 0 {
		c.banner("Option Invalid - " + flower.NoFlowersStored)
		return flower.Flower{}, false, nil
	}
	c.println(c.repo.ListAllReport().String())

	id, err := c.p.readInt("\nEnter the id of the flower: ")
	if err != nil {
		return flower.Flower{}, false, err
	}
	f, ok := c.repo.Find(id)
	if !ok {
		c.banner("Flower id is not valid")
		return flower.Flower{}, false, nil
	}
	return f, true, nil
}

func (c *Console) chooseVariant() (flower.Flower, flower.Variant, bool, error) {
	f, ok, err := c.chooseFlower()
	if err != nil || !ok {
		return flower.Flower{}, flower.Variant{}, false, err
	}
	if f.CountVariants() == 0 {
		c.banner("No variants for chosen Flower")
		return flower.Flower{}, flower.Variant{}, false, nil
	}
	c.println(f.ListVariants().String())

	id, err := c.p.readInt("\nEnter the id of the variant: ")
	if err != nil {
		return flower.Flower{}, flower.Variant{}, false, err
	}
	v, ok := f.FindVariant(id)
	if !ok {
		c.banner("Invalid Variant Id")
		return flower.Flower{}, flower.Variant{}, false, nil
	}
	return f, v, true, nil
}

func (c *Console) readFlowerDetails() (flower.FlowerDetails, error) {
	var d flower.FlowerDetails
	var err error
	if d.Name, err = c.p.readLine("What is the name of the flower? : "); err != nil {
		return d, err
	}
	if d.InSeason, err = c.p.readBool("The Flower is in season (true or false) : "); err != nil {
		return d, err
	}
	if d.AverageHeight, err = c.p.readFloat("What is the height of the flower? (in meters) : "); err != nil {
		return d, err
	}
	if d.Meaning, err = c.p.readLine("What is the symbolic meaning of the flower? : "); err != nil {
		return d, err
	}
	return d, nil
}

func (c *Console) readVariantDetails() (flower.VariantDetails, error) {
	var d flower.VariantDetails
	var err error
	if d.Name, err = c.p.readLine("\t What is the Variants Name? : "); err != nil {
		return d, err
	}
	if d.ExpectedBloomLife, err = c.p.readInt("\t What is the expected Blooming Time? : "); err != nil {
		return d, err
	}
	if d.Colour, err = c.p.readLine("\t What is the Colour?: "); err != nil {
		return d, err
	}
	if d.Available, err = c.p.readBool("\t Is it available? (true or false) : "); err != nil {
		return d, err
	}
	if d.Price, err = c.p.readFloat("\t What is the Price? : "); err != nil {
		return d, err
	}
	return d, nil
}

func (c *Console) banner(msg string) {
	pad := (len([]rune(rule)) - len([]rune(msg))) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(c.out, "%s\n%s%s\n%s\n", rule, strings.Repeat(" ", pad), msg, rule)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
