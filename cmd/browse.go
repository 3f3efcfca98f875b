package cmd

import "github.com/spf13/cobra"

var browseCmd = &cobra.Command{
	Use:         "browse",
	Short:       "Launch the article browser",
	Long:        "Open newsassist straight into the two-pane news feed, skipping the home screen.",
	Args:        exactArgs(0),
	Annotations: map[string]string{annotationInteractive: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, true)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
