package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"reel/internal/extract"
)

var extractorsCmd = &cobra.Command{
	Use:   "extractors",
	Short: "List the supported embed hosts in priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), extractorTable(newRegistry().Extractors()))
		return nil
	},
}

func extractorTable(extractors []extract.Extractor) string {
	rows := lo.Map(extractors, func(e extract.Extractor, i int) []string {
		ttl := "no cache"
		if e.TTL() > 0 {
			ttl = strconv.Itoa(e.TTL()) + "s"
		}
		return []string{strconv.Itoa(i + 1), e.ID(), e.Label(), ttl}
	})

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("#", "ID", "LABEL", "TTL").
		Rows(rows...).
		String()
}
