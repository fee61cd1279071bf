package commands

import (
	"encoding/json"
	"fmt"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/rigochain/rigo-dao/libs"
	"github.com/rigochain/rigo-dao/node"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"io"
)

var persistent = false

func NewRunScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario against a fresh engine and print the event log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunScenario(args[0], rootConfig, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(
		&persistent,
		"persistent",
		persistent,
		"keep the ledgers in the db directory instead of memory")
	return cmd
}

// RunScenario replays the scenario file. The genesis comes from the scenario accounts,
// or from the genesis file when the scenario has no account.
func RunScenario(file string, config *cfg.Config, out io.Writer) error {
	path, err := libs.ScenarioPath(file)
	if err != nil {
		return err
	}
	sc, xerr := node.LoadScenario(path)
	if xerr != nil {
		return xerr
	}

	appState, xerr := sc.GenesisAppState()
	if xerr != nil {
		return xerr
	}
	if len(sc.Accounts) == 0 {
		if appState, _, xerr = genesis.LoadGenesisAppState(config.GenesisFile()); xerr != nil {
			return xerr
		}
	}

	if !persistent {
		config.DBBackend = "memdb"
	}
	app, xerr := node.NewDAOApp(config, logger)
	if xerr != nil {
		return xerr
	}
	defer app.Stop()

	if _, xerr := app.InitChain(sc.ChainID, appState); xerr != nil {
		return xerr
	}

	results, xerr := sc.Run(app)
	for _, r := range results {
		fmt.Fprintln(out, r.String())
	}
	if xerr != nil {
		return xerr
	}

	fmt.Fprintln(out, "events:")
	for _, evt := range app.Events().All() {
		bz, err := json.Marshal(evt)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s %s\n", evt.Kind(), bz)
	}

	unexpected := lo.CountBy(results, func(r *node.StepResult) bool { return !r.Matched })
	if unexpected > 0 {
		return fmt.Errorf("%d of %d steps have unexpected results", unexpected, len(results))
	}
	return nil
}
