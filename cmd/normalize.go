package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jmehdipour/phone-canon/internal/metrics"
	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmehdipour/phone-canon/internal/service/contacts"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var (
		countryCode string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "normalize <number> [number...]",
		Short: "Print the canonical form of phone numbers (offline)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]contacts.Result, 0, len(args))
			for _, raw := range args {
				res, outcome, err := contacts.Canonicalize(raw, countryCode, "")
				metrics.NormalizationsTotal.WithLabelValues(model.SourceCLI.String(), outcome.String()).Inc()
				if err != nil {
					return fmt.Errorf("normalize %q: %w", raw, err)
				}
				results = append(results, res)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INPUT\tFULL\tLOCAL\tCODE\tREGION\tCOUNTRIES")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Input, r.FullNumber, r.LocalNumber, dash(r.CountryCode), dash(r.Region), dash(strings.Join(r.Countries, ", ")))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&countryCode, "country-code", "c", "", "country code applied to every number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
