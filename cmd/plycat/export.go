package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plycat/internal/config"
	"plycat/internal/source"
	"plycat/pkg/catalog"
	"plycat/pkg/catalog/parser"
)

func exportCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		includeAll bool
		as         string
	)

	cmd := &cobra.Command{
		Use:   "export [source]",
		Short: "Fetch and decode the catalog, writing JSON or CSV",
		Long: `export fetches the catalog source (the configured one, or a URL or
file path given as the argument), decodes it, and writes the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch as {
			case "json", "csv":
			default:
				return fmt.Errorf("invalid --as %q (must be json or csv)", as)
			}

			src, err := resolveSource(args)
			if err != nil {
				return err
			}

			data, err := src.Load(context.Background())
			if err != nil {
				return err
			}

			include := includeAll
			cat, err := catalog.Load(data, catalog.Options{
				Format:        src.Format(),
				IncludeHidden: &include,
			})
			if err != nil {
				return err
			}

			var out []byte
			if as == "csv" {
				out = []byte(parser.EncodeCSV(cat.Table))
			} else if pretty {
				out, err = json.MarshalIndent(cat.Products, "", "  ")
			} else {
				out, err = json.Marshal(cat.Products)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				return os.WriteFile(outputPath, out, 0644)
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&includeAll, "all", false, "Include rows hidden by the visible column")
	cmd.Flags().StringVar(&as, "as", "json", "Output format: json or csv")
	return cmd
}

// resolveSource builds a source from the positional argument when given,
// otherwise from the config file.
func resolveSource(args []string) (source.Source, error) {
	if len(args) == 0 {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return source.FromConfig(cfg, zap.NewNop())
	}

	arg := args[0]
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		cfg := config.Default()
		cfg.Source.URL = arg
		return source.FromConfig(cfg, zap.NewNop())
	}
	if _, err := os.Stat(arg); err != nil {
		return nil, fmt.Errorf("source not found: %s", arg)
	}
	return source.NewFileSource(arg, catalog.FormatAuto, zap.NewNop()), nil
}
