package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/typeminer/typeminer/internal/filter"
)

// filtersCmd represents the filters command
var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the available entity filters",
	Long: `Filters lists every named filter that can appear in an extraction
chain, together with the entity scopes it applies to.`,
	Run: func(cmd *cobra.Command, args []string) {
		registry := filter.NewRegistry()
		for _, f := range registry.Filters() {
			scopes := make([]string, 0, len(f.Scopes()))
			for _, s := range f.Scopes() {
				scopes = append(scopes, s.String())
			}
			fmt.Printf("%-22s [%s]\n", f.Name(), strings.Join(scopes, ", "))
			fmt.Printf("    %s\n", f.Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
