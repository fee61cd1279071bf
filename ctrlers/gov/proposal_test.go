package gov

import (
	"github.com/rigochain/rigo-dao/ctrlers/gov/proposal"
	"github.com/rigochain/rigo-dao/types"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestCreateProposal(t *testing.T) {
	ctrler, evtLog := newTestGovCtrler(t, defaultPowerSource())

	require.NoError(t, ctrler.CreateProposal(propID(1), voterA, t0))
	require.Equal(t, 1, ctrler.ProposalsCount())

	state, xerr := ctrler.ProposalState(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, proposal.PROPOSAL_ACTIVE, state)

	deathTime, xerr := ctrler.DeathTime(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, t0.Add(3*day), deathTime)

	evts := evtLog.Query(propID(1), EVENT_PROPOSAL_CREATED)
	require.Len(t, evts, 1)
	require.Equal(t, t0.Add(3*day), evts[0].(*ProposalCreated).DeathTime)
}

func TestCreateProposal_Errors(t *testing.T) {
	ctrler, evtLog := newTestGovCtrler(t, defaultPowerSource())
	require.NoError(t, ctrler.CreateProposal(propID(1), voterA, t0))

	type Case struct {
		id      abytes.HexBytes
		creator types.Address
		err     xerrors.XError
	}

	cases := []*Case{
		{id: propID(2), creator: types.RandAddress(), err: xerrors.ErrUnknownVoter},
		{id: propID(1), creator: voterB, err: xerrors.ErrDuplicatedProposal},
		{id: abytes.RandHexBytes(20), creator: voterB, err: xerrors.ErrInvalidProposalID},
		{id: nil, creator: voterB, err: xerrors.ErrInvalidProposalID},
	}

	for i, c := range cases {
		xerr := ctrler.CreateProposal(c.id, c.creator, t0.Add(time.Hour))
		require.ErrorIs(t, xerr, c.err, "index", i)
	}

	// failures change nothing
	require.Equal(t, 1, ctrler.ProposalsCount())
	require.Equal(t, 1, evtLog.Len())
}

func TestCreateProposal_Capacity(t *testing.T) {
	ctrler, evtLog := newTestGovCtrler(t, defaultPowerSource())

	for i := 1; i <= 3; i++ {
		require.NoError(t, ctrler.CreateProposal(propID(i), voterA, t0))
	}
	require.Equal(t, 3, ctrler.ProposalsCount())

	// nothing is evictable at the death time minus 1s
	xerr := ctrler.CreateProposal(propID(4), voterA, t0.Add(3*day-time.Second))
	require.ErrorIs(t, xerr, xerrors.ErrCapacityExceeded)
	require.Equal(t, 3, ctrler.ProposalsCount())
	require.Equal(t, 3, evtLog.Len())
}

func TestCreateProposal_Eviction(t *testing.T) {
	ctrler, evtLog := newTestGovCtrler(t, defaultPowerSource())

	require.NoError(t, ctrler.CreateProposal(propID(1), voterA, t0))
	require.NoError(t, ctrler.CreateProposal(propID(2), voterA, t0.Add(day)))
	require.NoError(t, ctrler.CreateProposal(propID(3), voterA, t0.Add(2*day)))

	require.NoError(t, ctrler.CreateProposal(propID(4), voterA, t0.Add(3*day+time.Second)))
	require.Equal(t, 3, ctrler.ProposalsCount())

	state, xerr := ctrler.ProposalState(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, proposal.PROPOSAL_EXPIRED, state)

	for _, i := range []int{2, 3, 4} {
		state, xerr := ctrler.ProposalState(propID(i))
		require.NoError(t, xerr)
		require.Equal(t, proposal.PROPOSAL_ACTIVE, state)
	}

	// Finished{1, Expired} precedes Created{4}
	evts := evtLog.All()
	require.Len(t, evts, 5)
	finished, ok := evts[3].(*ProposalFinished)
	require.True(t, ok)
	require.Equal(t, propID(1), finished.ID)
	require.Equal(t, proposal.PROPOSAL_EXPIRED, finished.State)
	created, ok := evts[4].(*ProposalCreated)
	require.True(t, ok)
	require.Equal(t, propID(4), created.ID)

	all := ctrler.ReadAllProposals()
	require.Len(t, all, 3)
	require.Equal(t, propID(2), all[0].ID)
	require.Equal(t, propID(4), all[2].ID)
}

func TestCreateProposal_EvictionAtDeathTime(t *testing.T) {
	ctrler, evtLog := newTestGovCtrler(t, defaultPowerSource())
	for i := 1; i <= 3; i++ {
		require.NoError(t, ctrler.CreateProposal(propID(i), voterA, t0))
	}

	// evictable exactly at the death time, the first in creation order is chosen
	require.NoError(t, ctrler.CreateProposal(propID(4), voterA, t0.Add(3*day)))
	evts := evtLog.Query(nil, EVENT_PROPOSAL_FINISHED)
	require.Len(t, evts, 1)
	require.Equal(t, propID(1), evts[0].ProposalID())
}

func TestCreateProposal_RecreateFinished(t *testing.T) {
	ctrler, _ := newTestGovCtrler(t, defaultPowerSource())

	require.NoError(t, ctrler.CreateProposal(propID(1), voterA, t0))
	require.NoError(t, ctrler.Vote(propID(1), voterB, proposal.VOTE_FOR, uint256Of(40), t0))
	require.NoError(t, ctrler.Vote(propID(1), voterC, proposal.VOTE_FOR, uint256Of(20), t0))

	state, xerr := ctrler.ProposalState(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, proposal.PROPOSAL_ACCEPTED, state)
	require.Equal(t, 0, ctrler.ProposalsCount())
	require.Equal(t, 1, ctrler.HistoryCount())

	// the id is free again
	require.NoError(t, ctrler.CreateProposal(propID(1), voterA, t0.Add(day)))
	state, xerr = ctrler.ProposalState(propID(1))
	require.NoError(t, xerr)
	require.Equal(t, proposal.PROPOSAL_ACTIVE, state)
	require.Equal(t, 0, ctrler.HistoryCount())

	vf, va, xerr := ctrler.ProposalVotes(propID(1))
	require.NoError(t, xerr)
	require.True(t, vf.IsZero())
	require.True(t, va.IsZero())
}
