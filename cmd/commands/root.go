package commands

import (
	"fmt"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	tmcfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/libs/cli"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
	"os"
)

var (
	rootConfig = cfg.DefaultConfig()
	logger     = log.NewTMLogger(log.NewSyncWriter(os.Stdout))
)

func init() {
	registerFlagsRootCmd(RootCmd)
}

func registerFlagsRootCmd(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log_level", rootConfig.LogLevel, "log level")
	cmd.PersistentFlags().String("db_backend", rootConfig.DBBackend, "database backend: goleveldb | memdb")
	cmd.PersistentFlags().Bool("metrics_enabled", rootConfig.MetricsEnabled, "register governance metrics to the default prometheus registry")
}

// ParseConfig retrieves the default environment configuration,
// sets up the root and ensures that the root exists
func ParseConfig(cmd *cobra.Command) (*cfg.Config, error) {
	conf := cfg.DefaultConfig()
	if err := viper.Unmarshal(conf.Config); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, err
	}

	home := viper.GetString(cli.HomeFlag)
	if home == "" {
		return nil, fmt.Errorf("no home directory")
	}
	conf.SetRoot(home)

	if err := conf.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %v", err)
	}
	if err := conf.EnsureDirs(); err != nil {
		return nil, err
	}
	return conf, nil
}

// RootCmd is the root command of rigo-dao.
var RootCmd = &cobra.Command{
	Use:   "rigo-dao",
	Short: "governance engine with bounded proposals and delegated voting power",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Name() == VersionCmd.Name() {
			return nil
		}

		rootConfig, err = ParseConfig(cmd)
		if err != nil {
			return err
		}

		if rootConfig.LogFormat == tmcfg.LogFormatJSON {
			logger = log.NewTMJSONLogger(log.NewSyncWriter(os.Stdout))
		}

		logger, err = tmflags.ParseLogLevel(rootConfig.LogLevel, logger, tmcfg.DefaultLogLevel)
		if err != nil {
			return err
		}

		if viper.GetBool(cli.TraceFlag) {
			logger = log.NewTracingLogger(logger)
		}

		logger = logger.With("module", "main")
		return nil
	},
}
