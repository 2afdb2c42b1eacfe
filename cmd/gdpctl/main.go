// Package main provides an offline CLI over a GDP-per-capita CSV.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gdpdash/internal/engine"
	"gdpdash/internal/models"
	"gdpdash/pkg/logger"
)

const defaultDataPath = "gdp_pcap.csv"

var (
	dataPath   string
	jsonOutput bool

	queryCountries []string
	queryFrom      int
	queryTo        int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gdpctl",
		Short:        "Inspect and query a GDP-per-capita dataset",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Set(zap.NewNop())
		},
	}

	path := os.Getenv("GDPDASH_DATA_PATH")
	if path == "" {
		path = defaultDataPath
	}
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", path, "path to the wide-format CSV")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(newEntitiesCmd())
	rootCmd.AddCommand(newBoundsCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newSummaryCmd())

	return rootCmd
}

func newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List countries in source order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := engine.LoadDataset(dataPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, models.EntityList{Countries: ds.Entities()})
			}
			for _, name := range ds.Entities() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newBoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Print the first and last year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := engine.LoadDataset(dataPath)
			if err != nil {
				return err
			}
			lo, hi := ds.PeriodBounds()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), models.PeriodBounds{Min: lo, Max: hi})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\n", lo, hi)
			return nil
		},
	}
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print points for the selected countries and years",
		Args:  cobra.NoArgs,
		RunE:  runQueryCmd,
	}
	cmd.Flags().StringArrayVar(&queryCountries, "country", nil, "country to include (repeatable; default all)")
	cmd.Flags().IntVar(&queryFrom, "from", 0, "first year (default: dataset minimum)")
	cmd.Flags().IntVar(&queryTo, "to", 0, "last year (default: dataset maximum)")
	return cmd
}

func runQueryCmd(cmd *cobra.Command, _ []string) error {
	ds, err := engine.LoadDataset(dataPath)
	if err != nil {
		return err
	}

	entities := engine.AllEntities()
	if cmd.Flags().Changed("country") {
		entities = engine.Entities(queryCountries...)
	}

	periods := engine.AllPeriods()
	fromSet, toSet := cmd.Flags().Changed("from"), cmd.Flags().Changed("to")
	if fromSet || toSet {
		lo, hi := ds.PeriodBounds()
		if fromSet {
			lo = queryFrom
		}
		if toSet {
			hi = queryTo
		}
		periods = engine.Between(lo, hi)
	}

	points := ds.Query(entities, periods)
	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, points)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTRY\tYEAR\tGDP PER CAPITA")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Entity, p.Period, humanize.Commaf(p.Value))
	}
	return tw.Flush()
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Describe the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := engine.LoadDataset(dataPath)
			if err != nil {
				return err
			}
			s := engine.Summary(ds)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s countries, %d-%d, %s points\n",
				humanize.Comma(int64(s.CountryCount)), s.MinYear, s.MaxYear, humanize.Comma(int64(s.Points)))
			return nil
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
