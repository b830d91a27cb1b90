package main

import (
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpattn/marvel/internal/characters"
	"github.com/rpattn/marvel/internal/domain"
)

var (
	listOrder   string
	listOrderBy string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the sorted character list",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := openRepository(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeRepo()

		loaded, err := repo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load characters: %w", err)
		}

		params := url.Values{}
		params.Set(domain.QueryParamOrder, listOrder)
		params.Set(domain.QueryParamOrderBy, listOrderBy)
		return printList(cmd.OutOrStdout(), characters.Render(loaded, domain.ParseCharacterSort(params)))
	},
}

func init() {
	listCmd.Flags().StringVar(&listOrder, "order", "asc", "sort direction (asc, desc)")
	listCmd.Flags().StringVar(&listOrderBy, "order-by", "name", "sort field (name, modified)")
}

func printList(w io.Writer, vm characters.ViewModel) error {
	fmt.Fprintf(w, "%s (orderBy=%s, order=%s)\n", vm.Title, vm.OrderBy, vm.Order)
	fmt.Fprintln(w, vm.CountText)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMODIFIED")
	for _, c := range vm.Characters {
		modified := "-"
		if !c.Modified.IsZero() {
			modified = c.Modified.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, modified)
	}
	return tw.Flush()
}
