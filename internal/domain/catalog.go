package domain

import (
	"sort"
	"strings"
)

// App is a single installed channel as reported by the device.
type App struct {
	ID      string
	Name    string
	Type    string
	Version string
}

// AppCatalog maps lowercase application names to application identifiers.
type AppCatalog map[string]string

func NewAppCatalog(apps []App) AppCatalog {
	catalog := make(AppCatalog, len(apps))
	for _, app := range apps {
		catalog[strings.ToLower(app.Name)] = app.ID
	}
	return catalog
}

// Lookup matches name case-insensitively, ignoring surrounding whitespace.
func (c AppCatalog) Lookup(name string) (string, bool) {
	id, ok := c[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Names returns the catalog keys in sorted order.
func (c AppCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
