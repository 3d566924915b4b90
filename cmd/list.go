package cmd

import (
	"sort"

	"mcphub/internal/config"
	"mcphub/internal/formatting"

	"github.com/spf13/cobra"
)

var (
	listAll          bool
	listOutputFormat string
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List configured servers",
		Long:    `Lists the servers in .mcphub.json. With --all the catalog of preconfigured servers is listed too.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatting.ParseFormat(listOutputFormat)
			if err != nil {
				return err
			}
			return withRegistry(func(r *config.Registry) error {
				rows, err := serverRows(r, listAll)
				if err != nil {
					return err
				}
				return formatting.NewFormatter(formatting.Options{
					Format: format,
					Out:    cmd.OutOrStdout(),
				}).FormatServers(rows)
			})
		},
	}

	cmd.Flags().BoolVarP(&listAll, "all", "a", false, "include servers from the catalog")
	cmd.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

// serverRows merges configured entries with catalog entries when all is set.
// Configured entries take precedence and every row is sorted by name.
func serverRows(r *config.Registry, all bool) ([]formatting.ServerRow, error) {
	configured, err := r.ListConfigured()
	if err != nil {
		return nil, err
	}

	rows := make(map[string]formatting.ServerRow)
	catalog := r.ListAvailable()

	for name, entry := range configured {
		pkg := entry.PackageName
		if pkg == "" {
			pkg = name
		}
		if base, ok := catalog.Lookup(pkg); ok {
			entry = base.Override(entry)
		}
		rows[name] = serverRow(name, entry.Resolve(pkg), true)
	}

	if all {
		for _, name := range catalog.Names() {
			if _, ok := rows[name]; ok {
				continue
			}
			entry, _ := catalog.Lookup(name)
			rows[name] = serverRow(name, entry.Resolve(name), false)
		}
	}

	names := make([]string, 0, len(rows))
	for name := range rows {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]formatting.ServerRow, 0, len(names))
	for _, name := range names {
		result = append(result, rows[name])
	}
	return result, nil
}

func serverRow(name string, c config.ServerConfig, configured bool) formatting.ServerRow {
	return formatting.ServerRow{
		Name:        name,
		PackageName: c.PackageName,
		Command:     c.Command,
		Args:        c.Args,
		Description: c.Description,
		Tags:        c.Tags,
		Configured:  configured,
	}
}
