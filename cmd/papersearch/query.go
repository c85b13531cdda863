package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"papersearch/internal/search"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query TEXT...",
		Short: "Run one search and print the results",
		Long: `Query sends TEXT to the backend once and prints the returned papers.
The lookback window and sources default to the configured values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := search.Query{
				Text:           strings.Join(args, " "),
				TimeWindowDays: a.cfg.WindowDays,
				Sources:        a.cfg.Sources,
			}
			if cmd.Flags().Changed("days") {
				q.TimeWindowDays, _ = cmd.Flags().GetInt("days")
			}
			if cmd.Flags().Changed("sources") {
				names, _ := cmd.Flags().GetStringSlice("sources")
				s, err := search.ParseSources(names)
				if err != nil {
					return err
				}
				q.Sources = s
			}
			if err := q.Validate(); err != nil {
				return err
			}

			papers, err := a.client().Search(cmd.Context(), q)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), papers)
			}
			writePapers(cmd.OutOrStdout(), papers)
			return nil
		},
	}

	cmd.Flags().Int("days", search.DefaultWindowDays, "lookback window in days (7-3650)")
	cmd.Flags().StringSlice("sources", nil, "source categories: arxiv, ai, systems")
	cmd.Flags().Bool("json", false, "output results as JSON")
	return cmd
}

func writeJSON(w io.Writer, papers []search.Paper) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Results []search.Paper `json:"results"`
	}{papers})
}

func writePapers(w io.Writer, papers []search.Paper) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	for i, p := range papers {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, strings.TrimSpace(p.Title))

		var meta []string
		if s := p.SourceName(); s != "" {
			meta = append(meta, s)
		}
		if d, ok := p.Date(); ok {
			meta = append(meta, d.Format("2006-01-02"))
		}
		if len(meta) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(meta, " • "))
		}
		if link := p.URL(); link != "" {
			fmt.Fprintf(w, "   %s\n", link)
		}
		if abstract := strings.TrimSpace(p.Abstract); abstract != "" {
			fmt.Fprintf(w, "   %s\n", strings.Join(strings.Fields(abstract), " "))
		}
	}
}
