// Copyright © 2025 The failtrace authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillsoft/failtrace/theme"
)

// rolesCmd represents the roles command
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Preview every theme role",
	Long: `Print each theme role name with its default decoration applied, as a
quick visual check of the closed role set.`,
	Run: func(cmd *cobra.Command, args []string) {
		th := theme.Default()
		if !useColor() {
			th = theme.NoColor()
		}
		for _, r := range theme.Roles() {
			fmt.Fprintf(os.Stdout, "%-16s %s\n", r, th.Apply(r, "sample text"))
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
