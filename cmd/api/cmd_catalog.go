package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	infraRepo "storefront/internal/infra/repository"

	"github.com/spf13/cobra"
)

var catalogPath string

// catalogCmd prints the catalog the server would load
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the product catalog",
	Long: `Loads the catalog the same way "serve" does (CATALOG_PATH, or the built-in
catalog when unset) and prints one row per product.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogPath, "file", "", "catalog YAML file (defaults to CATALOG_PATH)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	path := catalogPath
	if path == "" {
		path = os.Getenv("CATALOG_PATH")
	}

	repo, err := infraRepo.NewProductRepositoryFromFile(path)
	if err != nil {
		return err
	}
	products, err := repo.List(contextOrBackground(cmd))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tORIGIN\tPRICE\tROASTS")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Origin, p.UnitPrice.StringFixed(2), strings.Join(p.RoastOptions, ", "))
	}
	return w.Flush()
}
