package node

import (
	"fmt"
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/ctrlers/gov/proposal"
	ctrlertypes "github.com/rigochain/rigo-dao/ctrlers/types"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/rigochain/rigo-dao/types"
	"github.com/rigochain/rigo-dao/types/crypto"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
	"time"
)

const (
	ACTION_PROPOSE  = "propose"
	ACTION_VOTE     = "vote"
	ACTION_TRANSFER = "transfer"
	ACTION_DELEGATE = "delegate"
	ACTION_ADVANCE  = "advance"
	ACTION_COMMIT   = "commit"
)

// Scenario is a script of governance actions replayed against a DAOApp.
// Accounts are referred by name; the address of a name is NameToAddress(name).
type Scenario struct {
	ChainID  string             `yaml:"chainId"`
	Start    time.Time          `yaml:"start"`
	Gov      *ScenarioGovParams `yaml:"gov,omitempty"`
	Accounts []*ScenarioAccount `yaml:"accounts"`
	Steps    []*ScenarioStep    `yaml:"steps"`
}

type ScenarioGovParams struct {
	VotingWindow       time.Duration `yaml:"votingWindow"`
	MaxActiveProposals int64         `yaml:"maxActiveProposals"`
	QuorumPercent      int64         `yaml:"quorumPercent"`
	MaxHistory         int64         `yaml:"maxHistory"`
}

// toGovParams takes the default for every field left out.
func (p *ScenarioGovParams) toGovParams() *ctrlertypes.GovParams {
	def := ctrlertypes.DefaultGovParams()
	window, maxActive, quorum, maxHistory := p.VotingWindow, p.MaxActiveProposals, p.QuorumPercent, p.MaxHistory
	if window == 0 {
		window = def.VotingWindow()
	}
	if maxActive == 0 {
		maxActive = int64(def.MaxActiveProposals())
	}
	if quorum == 0 {
		quorum = def.QuorumPercent()
	}
	if maxHistory == 0 {
		maxHistory = int64(def.MaxHistory())
	}
	return ctrlertypes.NewGovParams(window, maxActive, quorum, maxHistory)
}

type ScenarioAccount struct {
	Name     string `yaml:"name"`
	Balance  string `yaml:"balance"`
	Delegate string `yaml:"delegate,omitempty"`
}

type ScenarioStep struct {
	Action  string        `yaml:"action"`
	From    string        `yaml:"from,omitempty"`
	To      string        `yaml:"to,omitempty"`
	Content string        `yaml:"content,omitempty"`
	Side    string        `yaml:"side,omitempty"`
	Amount  string        `yaml:"amount,omitempty"`
	Advance time.Duration `yaml:"duration,omitempty"`
	// Expect is the expected error message prefix. Empty means success is expected.
	Expect string `yaml:"expect,omitempty"`
}

type StepResult struct {
	Index  int
	Action string
	Now    time.Time
	Err    xerrors.XError
	// Matched is false when the outcome differs from ScenarioStep.Expect.
	Matched bool
}

func (r *StepResult) String() string {
	outcome := "ok"
	if r.Err != nil {
		outcome = r.Err.Error()
	}
	mark := ""
	if !r.Matched {
		mark = " (unexpected)"
	}
	return fmt.Sprintf("#%d %s @%s: %s%s", r.Index, r.Action, r.Now.Format(time.RFC3339), outcome, mark)
}

func LoadScenario(file string) (*Scenario, xerrors.XError) {
	bz, err := os.ReadFile(file)
	if err != nil {
		return nil, xerrors.From(err)
	}
	return ParseScenario(bz)
}

func ParseScenario(bz []byte) (*Scenario, xerrors.XError) {
	sc := &Scenario{}
	if err := yaml.Unmarshal(bz, sc); err != nil {
		return nil, xerrors.From(err)
	}
	if sc.ChainID == "" {
		sc.ChainID = "rigo-dao-scenario"
	}
	if sc.Start.IsZero() {
		sc.Start = time.Unix(0, 0).UTC()
	}
	return sc, nil
}

// GenesisAppState builds the genesis of the scenario accounts.
func (sc *Scenario) GenesisAppState() (*genesis.GenesisAppState, xerrors.XError) {
	appState := genesis.DefaultGenesisAppState()
	if sc.Gov != nil {
		appState.GovParams = sc.Gov.toGovParams()
	}

	for _, acct := range sc.Accounts {
		bal, err := uint256.FromDecimal(acct.Balance)
		if err != nil {
			return nil, xerrors.ErrInitChain.Wrapf("balance of %v: %v", acct.Name, err)
		}
		appState.AssetHolders = append(appState.AssetHolders, &genesis.GenesisAssetHolder{
			Address: types.NameToAddress(acct.Name),
			Balance: bal,
		})
		if acct.Delegate != "" {
			appState.Delegations = append(appState.Delegations, &genesis.GenesisDelegation{
				Delegator: types.NameToAddress(acct.Name),
				Delegatee: types.NameToAddress(acct.Delegate),
			})
		}
	}
	return appState, nil
}

// Run replays the steps. A failed step does not stop the replay.
// The returned error is about the scenario itself, such as an unknown action.
func (sc *Scenario) Run(app *DAOApp) ([]*StepResult, xerrors.XError) {
	now := sc.Start
	results := make([]*StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		var xerr xerrors.XError

		switch strings.ToLower(step.Action) {
		case ACTION_PROPOSE:
			xerr = app.Gov().CreateProposal(crypto.ProposalID([]byte(step.Content)), types.NameToAddress(step.From), now)
		case ACTION_VOTE:
			side, ok := proposal.ParseVoteSide(step.Side)
			if !ok {
				return results, xerrors.NewOrdinary(fmt.Sprintf("step #%d: wrong vote side: %q", i, step.Side))
			}
			amt, err := parseAmount(step.Amount)
			if err != nil {
				return results, xerrors.NewOrdinary(fmt.Sprintf("step #%d: %v", i, err))
			}
			xerr = app.Gov().Vote(crypto.ProposalID([]byte(step.Content)), types.NameToAddress(step.From), side, amt, now)
		case ACTION_TRANSFER:
			amt, err := parseAmount(step.Amount)
			if err != nil {
				return results, xerrors.NewOrdinary(fmt.Sprintf("step #%d: %v", i, err))
			}
			xerr = app.Token().Transfer(types.NameToAddress(step.From), types.NameToAddress(step.To), amt)
		case ACTION_DELEGATE:
			xerr = app.Token().Delegate(types.NameToAddress(step.From), types.NameToAddress(step.To))
		case ACTION_ADVANCE:
			now = now.Add(step.Advance)
		case ACTION_COMMIT:
			_, _, xerr = app.Commit(now)
		default:
			return results, xerrors.NewOrdinary(fmt.Sprintf("step #%d: unknown action: %q", i, step.Action))
		}

		results = append(results, &StepResult{
			Index:   i,
			Action:  step.Action,
			Now:     now,
			Err:     xerr,
			Matched: matchExpect(step.Expect, xerr),
		})
	}
	return results, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return uint256.NewInt(0), nil
	}
	return uint256.FromDecimal(s)
}

func matchExpect(expect string, xerr xerrors.XError) bool {
	if expect == "" {
		return xerr == nil
	}
	return xerr != nil && strings.HasPrefix(xerr.Error(), expect)
}
