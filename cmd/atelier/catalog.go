package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/atelier-agent/internal/app/recommend"
	"github.com/PabloGalante/atelier-agent/internal/catalog"
)

// discountTolerance is the allowed gap between the stated and computed
// package discount.
const discountTolerance = 0.02

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the course catalog",
	}
	cmd.PersistentFlags().StringVar(&path, "file", "", "Catalog YAML (default: ATELIER_CATALOG_PATH or the embedded catalog)")

	load := func() (*catalog.Catalog, error) {
		if path == "" {
			cfg, err := opts.loadConfig()
			if err != nil {
				return nil, err
			}
			path = cfg.CatalogPath
		}
		return catalog.Load(path)
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check references and package discounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}

			var errs []error
			for _, p := range c.Packages() {
				if !c.DiscountConsistent(p, discountTolerance) {
					want, _ := c.ExpectedDiscount(p)
					errs = append(errs, fmt.Errorf("package %s: discount %.2f, list prices imply %.2f", p.ID, p.Pricing.Discount, want))
				}
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d courses, %d journeys, %d packages\n",
				len(c.Courses()), len(c.Journeys()), len(c.Packages()))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print courses, journeys and packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COURSE\tLEVEL\tCATEGORY\tDURATION\tPRICE")
			for _, course := range c.Courses() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", course.ID, course.Level, course.Category, course.Duration,
					recommend.FormatPrice(course.Pricing.Amount, course.Pricing.Currency))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "JOURNEY\tDURATION\tCOURSES")
			for _, j := range c.Journeys() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", j.ID, j.Duration, len(j.CourseIDs))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "PACKAGE\tPRICE\tDISCOUNT")
			for _, p := range c.Packages() {
				fmt.Fprintf(w, "%s\t%s\t%.0f%%\n", p.ID,
					recommend.FormatPrice(p.Pricing.Amount, p.Pricing.Currency), p.Pricing.Discount*100)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(validate, list)
	return cmd
}
