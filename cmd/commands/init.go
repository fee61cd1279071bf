package commands

import (
	"fmt"
	"github.com/holiman/uint256"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/rigochain/rigo-dao/types"
	"github.com/spf13/cobra"
	tmos "github.com/tendermint/tendermint/libs/os"
	"strings"
)

var (
	daoChainID = "rigo-dao-local"
	holders    = []string{"A=25000000", "B=40000000", "C=35000000"}
)

func NewInitFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the genesis of rigo-dao",
		RunE:  initFiles,
	}
	AddInitFlags(cmd)
	return cmd
}

func AddInitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&daoChainID,
		"chain_id",
		daoChainID,
		"the id of chain to generate")
	cmd.Flags().StringSliceVar(
		&holders,
		"holders",
		holders,
		"genesis holders as name=balance. "+
			"the address of a holder is derived from its name and "+
			"every holder delegates its voting power to itself")
}

func initFiles(cmd *cobra.Command, args []string) error {
	return InitFilesWith(daoChainID, holders, rootConfig)
}

func InitFilesWith(chainID string, holders []string, config *cfg.Config) error {
	genFile := config.GenesisFile()
	if tmos.FileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		return nil
	}

	appState, err := holdersToAppState(holders)
	if err != nil {
		return err
	}
	appState.GovParams = config.Gov
	if xerr := appState.Validate(); xerr != nil {
		return xerr
	}

	genDoc, err := genesis.NewGenesisDoc(chainID, appState)
	if err != nil {
		return err
	}
	if err := genDoc.SaveAs(genFile); err != nil {
		return err
	}
	logger.Info("Generated genesis file", "path", genFile, "holders", len(appState.AssetHolders))
	return nil
}

func holdersToAppState(holders []string) (*genesis.GenesisAppState, error) {
	appState := genesis.DefaultGenesisAppState()
	for _, h := range holders {
		parts := strings.SplitN(h, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("wrong holder: %q (expected name=balance)", h)
		}
		bal, err := uint256.FromDecimal(parts[1])
		if err != nil {
			return nil, fmt.Errorf("wrong balance of %v: %w", parts[0], err)
		}
		addr := types.NameToAddress(parts[0])
		appState.AssetHolders = append(appState.AssetHolders, &genesis.GenesisAssetHolder{Address: addr, Balance: bal})
		appState.Delegations = append(appState.Delegations, &genesis.GenesisDelegation{Delegator: addr, Delegatee: addr})
	}
	return appState, nil
}
