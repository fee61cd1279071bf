package main

import (
	"github.com/rigochain/rigo-dao/cmd/commands"
	"github.com/rigochain/rigo-dao/cmd/config"
	"github.com/rigochain/rigo-dao/libs"
	"github.com/tendermint/tendermint/libs/cli"
)

func main() {
	commands.RootCmd.AddCommand(
		commands.NewInitFilesCmd(),
		commands.NewRunScenarioCmd(),
		commands.VersionCmd,
	)

	executor := cli.PrepareBaseCmd(commands.RootCmd, "RIGODAO", libs.RootDir(config.DEFAULT_DIR_NAME))
	if err := executor.Execute(); err != nil {
		panic(err)
	}
}
