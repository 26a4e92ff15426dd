package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"synscan/internal/lang"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages, their tags and label keywords",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		rows := languageRows()
		switch format {
		case "pretty":
			return renderLanguagesPretty(cmd.OutOrStdout(), rows)
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	languagesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type languageRow struct {
	Tag      string   `json:"tag"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords,omitempty"`
}

func languageRows() []languageRow {
	all := lang.All()
	rows := make([]languageRow, 0, len(all))
	for _, l := range all {
		rows = append(rows, languageRow{
			Tag:      l.String(),
			Label:    lang.DisplayLabel(l),
			Keywords: lang.LabelKeywords(l),
		})
	}
	return rows
}

func renderLanguagesPretty(out io.Writer, rows []languageRow) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tLABEL\tKEYWORDS")
	for _, r := range rows {
		keywords := strings.Join(r.Keywords, ", ")
		if keywords == "" {
			keywords = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Tag, r.Label, keywords)
	}
	return tw.Flush()
}
