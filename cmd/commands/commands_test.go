package commands

import (
	"bytes"
	"encoding/json"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	xver "github.com/rigochain/rigo-dao/cmd/version"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

const scenarioNoAccounts = `
chainId: cmd-test
start: 2023-03-01T00:00:00Z
steps:
  - action: propose
    from: A
    content: Item Sample 1
  - action: vote
    from: B
    content: Item Sample 1
    side: for
    amount: "40000000"
  - action: vote
    from: C
    content: Item Sample 1
    side: against
    amount: "20000000"
  - action: vote
    from: C
    content: Item Sample 1
    side: against
    amount: "1"
    expect: proposal already finished
`

func testConfig(t *testing.T) *cfg.Config {
	config := cfg.TestConfig()
	config.SetRoot(t.TempDir())
	require.NoError(t, config.EnsureDirs())
	return config
}

func TestInitFiles(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, InitFilesWith("init-test", []string{"A=25", "B=40", "C=35"}, config))

	appState, genDoc, xerr := genesis.LoadGenesisAppState(config.GenesisFile())
	require.NoError(t, xerr)
	require.Equal(t, "init-test", genDoc.ChainID)
	require.Len(t, appState.AssetHolders, 3)
	require.Len(t, appState.Delegations, 3)

	// an existing genesis is kept
	require.NoError(t, InitFilesWith("other", []string{"D=1"}, config))
	_, genDoc, xerr = genesis.LoadGenesisAppState(config.GenesisFile())
	require.NoError(t, xerr)
	require.Equal(t, "init-test", genDoc.ChainID)

	require.Error(t, InitFilesWith("wrong", []string{"A"}, testConfig(t)))
	require.Error(t, InitFilesWith("wrong", []string{"A=x"}, testConfig(t)))
}

func TestRunScenario(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, InitFilesWith("run-test", holders, config))

	file := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(file, []byte(scenarioNoAccounts), 0600))

	out := &bytes.Buffer{}
	require.NoError(t, RunScenario(file, config, out))
	require.Contains(t, out.String(), "proposal_created")
	require.Contains(t, out.String(), "vote_cast")
	require.Contains(t, out.String(), "proposal_finished")
}

func TestRunScenario_Unexpected(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, InitFilesWith("run-test", holders, config))

	file := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
steps:
  - action: propose
    from: Nobody
    content: Item Sample 1
`), 0600))

	out := &bytes.Buffer{}
	require.Error(t, RunScenario(file, config, out))
	require.Contains(t, out.String(), "(unexpected)")
}

func TestVersionCmd(t *testing.T) {
	buf := &bytes.Buffer{}
	VersionCmd.SetOut(buf)
	VersionCmd.SetArgs([]string{"--json"})
	defer func() {
		VersionCmd.SetOut(nil)
		VersionCmd.SetArgs(nil)
		versionJSON = false
	}()
	require.NoError(t, VersionCmd.Execute())

	info := &xver.Info{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), info))
	require.Equal(t, xver.Semver(), info.Version)
	require.Equal(t, xver.STATE_FORMAT, info.StateFormat)
}
