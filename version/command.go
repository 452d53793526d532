package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommand creates a version command.
func NewCommand(info *Info) *cobra.Command {
	var (
		quiet   bool
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			if quiet {
				fmt.Println(info.Version)
				return nil
			}
			fmt.Println(info.String())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print version info as JSON")
	return cmd
}
