package commands

import (
	"encoding/json"
	"fmt"
	xver "github.com/rigochain/rigo-dao/cmd/version"
	"github.com/spf13/cobra"
)

var versionJSON bool

// VersionCmd ...
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !versionJSON {
			fmt.Fprintln(cmd.OutOrStdout(), xver.String())
			return nil
		}
		bz, err := json.MarshalIndent(xver.NewInfo(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bz))
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&versionJSON, "json", false, "print the version info as json")
}
