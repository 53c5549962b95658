package console

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rokuwake/internal/domain"
)

func (c *Console) ShowApps(catalog domain.AppCatalog) {
	fmt.Fprintln(c.out, "\nAvailable Apps:")
	fmt.Fprintln(c.out, RenderApps(catalog))
}

// RenderApps lays out the catalog as a table sorted by name.
func RenderApps(catalog domain.AppCatalog) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"App", "ID"})

	for _, name := range catalog.Names() {
		tw.AppendRow(table.Row{DisplayName(name), catalog[name]})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// DisplayName title-cases a lowercase catalog key for display.
func DisplayName(name string) string {
	return cases.Title(language.Und).String(name)
}
