package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"beancatalog/app"
	"beancatalog/models"
	"beancatalog/query"
	"beancatalog/repository"
	"beancatalog/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fde68a"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52525b"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa"))
)

func newListCmd(g *globals) *cobra.Command {
	var (
		state    models.ViewState
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Example: `  # First page in upstream order
  beancatalog list

  # Sour flavors sorted by name, page 2
  beancatalog list --filter sour --sort name --page 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if state.SortBy != "" && !query.IsSortKey(state.SortBy) {
				return fmt.Errorf("unknown sort key %q (use %q, %q or %q)",
					state.SortBy, models.SortByName, models.SortByGroup, models.SortBySugarFree)
			}

			cache := app.NewCatalogCache(g.cfg, repository.NewMemorySnapshotRepository(), g.log)
			catalog, err := cache.FetchCatalog(cmd.Context())
			if err != nil {
				return err
			}

			result := query.SelectPage(catalog.Items, state.FilterBy, state.SortBy, state.Page, pageSize)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(result.DisplayItems))
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render(summaryLine(state, result, catalog.TotalCount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&state.FilterBy, "filter", "", "flavor group substring to filter by")
	cmd.Flags().StringVar(&state.SortBy, "sort", "", "sort key: name, flavor group or sugar-free status")
	cmd.Flags().IntVar(&state.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", query.DefaultPageSize, "beans per page")
	return cmd
}

func renderTable(beans []models.Bean) string {
	rows := make([][]string, 0, len(beans))
	for _, bean := range beans {
		rows = append(rows, []string{
			strconv.Itoa(bean.BeanID),
			bean.FlavorName,
			bean.PrimaryGroup(),
			dietaryLabels(bean),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("ID", "Flavor", "Group", "Dietary").
		Rows(rows...).
		String()
}

func dietaryLabels(bean models.Bean) string {
	var labels []string
	if bean.GlutenFree {
		labels = append(labels, "Gluten Free")
	}
	if bean.SugarFree {
		labels = append(labels, "Sugar Free")
	}
	if bean.Kosher {
		labels = append(labels, "Kosher")
	}
	if bean.Seasonal {
		labels = append(labels, "Seasonal")
	}
	return strings.Join(labels, ", ")
}

func summaryLine(state models.ViewState, result query.PageResult, upstreamTotal int) string {
	line := utils.ShowingSummary(result.StartIndex, result.EndIndex, result.TotalCount)
	if state.FilterBy != "" {
		line += utils.AvailableSuffix(upstreamTotal)
	}
	if result.TotalPages > 1 {
		line += utils.PageLabel(result.CurrentPage, result.TotalPages)
	}
	return line
}
