package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plycat/pkg/catalog"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [source]",
		Short: "Fetch and decode the catalog, reporting what was found",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := resolveSource(args)
			if err != nil {
				return err
			}

			data, err := src.Load(context.Background())
			if err != nil {
				return err
			}

			include := true
			cat, err := catalog.Load(data, catalog.Options{
				Format:        src.Format(),
				IncludeHidden: &include,
			})
			if err != nil {
				return err
			}

			hidden := 0
			for _, p := range cat.Products {
				if !p.Visible() {
					hidden++
				}
			}

			fmt.Printf("source:  %s\n", src.Describe())
			fmt.Printf("columns: %d (%s)\n", len(cat.Table.Columns), strings.Join(cat.Table.Columns, ", "))
			fmt.Printf("rows:    %d (%d hidden)\n", len(cat.Table.Records), hidden)
			return nil
		},
	}
}
