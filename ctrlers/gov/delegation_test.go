package gov

import (
	"github.com/holiman/uint256"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	"github.com/rigochain/rigo-dao/ctrlers/gov/proposal"
	"github.com/rigochain/rigo-dao/ctrlers/token"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/rigochain/rigo-dao/types"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"testing"
)

// newTokenAndGov returns a token ledger where A, B and C hold 25, 40 and 35 TGR and delegate to themselves.
func newTokenAndGov(t *testing.T) (*token.TokenCtrler, *GovCtrler) {
	tokenCtrler, xerr := token.NewTokenCtrler(cfg.TestConfig(), log.NewNopLogger())
	require.NoError(t, xerr)
	t.Cleanup(func() { _ = tokenCtrler.Close() })

	tgr := types.ToMTGR(1)
	appState := genesis.DefaultGenesisAppState()
	for _, h := range []struct {
		addr types.Address
		amt  uint64
	}{{voterA, 25}, {voterB, 40}, {voterC, 35}} {
		appState.AssetHolders = append(appState.AssetHolders, &genesis.GenesisAssetHolder{
			Address: h.addr,
			Balance: new(uint256.Int).Mul(tgr, uint256.NewInt(h.amt)),
		})
		appState.Delegations = append(appState.Delegations, &genesis.GenesisDelegation{Delegator: h.addr, Delegatee: h.addr})
	}
	require.NoError(t, tokenCtrler.InitLedger(appState))

	govCtrler, _ := newTestGovCtrler(t, tokenCtrler)
	require.NoError(t, govCtrler.InitLedger(appState))
	return tokenCtrler, govCtrler
}

func tgrOf(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(types.ToMTGR(1), uint256.NewInt(n))
}

func TestDelegation_MovesPower(t *testing.T) {
	tokenCtrler, govCtrler := newTokenAndGov(t)
	require.Equal(t, tgrOf(60), govCtrler.QuorumThreshold())

	require.NoError(t, tokenCtrler.Delegate(voterA, voterB))
	require.NoError(t, govCtrler.CreateProposal(propID(1), voterB, t0))

	// A has no power after delegating
	xerr := govCtrler.Vote(propID(1), voterA, proposal.VOTE_FOR, tgrOf(1), t0)
	require.ErrorIs(t, xerr, xerrors.ErrInsufficientVotingPower)
	require.ErrorIs(t, govCtrler.CreateProposal(propID(2), voterA, t0), xerrors.ErrUnknownVoter)

	// B votes with 25 + 40
	require.NoError(t, govCtrler.Vote(propID(1), voterB, proposal.VOTE_FOR, tgrOf(65), t0))
	state, xerr := govCtrler.ProposalState(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, proposal.PROPOSAL_ACCEPTED, state)
}

func TestDelegation_AfterCreation(t *testing.T) {
	tokenCtrler, govCtrler := newTokenAndGov(t)
	require.NoError(t, govCtrler.CreateProposal(propID(1), voterA, t0))

	require.NoError(t, govCtrler.Vote(propID(1), voterA, proposal.VOTE_AGAINST, tgrOf(20), t0))
	require.NoError(t, tokenCtrler.Delegate(voterA, voterC))

	// current power bounds the spend
	xerr := govCtrler.Vote(propID(1), voterA, proposal.VOTE_AGAINST, tgrOf(5), t0)
	require.ErrorIs(t, xerr, xerrors.ErrInsufficientVotingPower)

	require.NoError(t, govCtrler.Vote(propID(1), voterC, proposal.VOTE_AGAINST, tgrOf(39), t0))
	state, xerr := govCtrler.ProposalState(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, proposal.PROPOSAL_ACTIVE, state)

	require.NoError(t, govCtrler.Vote(propID(1), voterC, proposal.VOTE_FOR, tgrOf(1), t0))
	state, xerr = govCtrler.ProposalState(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, proposal.PROPOSAL_REJECTED, state)

	// tallies remain queryable
	vf, va, xerr := govCtrler.ProposalVotes(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, tgrOf(1), vf)
	require.Equal(t, tgrOf(59), va)
}

func TestDelegation_Transfer(t *testing.T) {
	tokenCtrler, govCtrler := newTokenAndGov(t)
	require.NoError(t, govCtrler.CreateProposal(propID(1), voterA, t0))

	require.NoError(t, tokenCtrler.Transfer(voterA, voterB, tgrOf(25)))
	require.ErrorIs(t, govCtrler.Vote(propID(1), voterA, proposal.VOTE_FOR, tgrOf(1), t0), xerrors.ErrInsufficientVotingPower)
	require.NoError(t, govCtrler.Vote(propID(1), voterB, proposal.VOTE_FOR, tgrOf(65), t0))
}
