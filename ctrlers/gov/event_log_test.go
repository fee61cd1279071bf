package gov

import (
	"github.com/rigochain/rigo-dao/ctrlers/gov/proposal"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestEventLog_Query(t *testing.T) {
	ctrler, evtLog := newTestGovCtrler(t, defaultPowerSource())
	require.NoError(t, ctrler.CreateProposal(propID(1), voterA, t0))
	require.NoError(t, ctrler.CreateProposal(propID(2), voterA, t0))
	require.NoError(t, ctrler.Vote(propID(1), voterB, proposal.VOTE_FOR, uint256Of(40), t0))
	require.NoError(t, ctrler.Vote(propID(1), voterC, proposal.VOTE_FOR, uint256Of(30), t0))

	require.Equal(t, 5, evtLog.Len())
	require.Len(t, evtLog.Query(nil), 5)
	require.Len(t, evtLog.Query(propID(1)), 4)
	require.Len(t, evtLog.Query(propID(2)), 1)
	require.Len(t, evtLog.Query(nil, EVENT_PROPOSAL_CREATED), 2)
	require.Len(t, evtLog.Query(propID(1), EVENT_VOTE_CAST, EVENT_PROPOSAL_FINISHED), 3)

	votes := evtLog.Query(propID(1), EVENT_VOTE_CAST)
	vc := votes[1].(*VoteCast)
	require.Equal(t, voterC, vc.Voter)
	require.Equal(t, uint64(30), vc.Size.Uint64())
	require.Equal(t, proposal.VOTE_FOR, vc.Side)

	// VoteCast precedes ProposalFinished
	all := evtLog.All()
	require.Equal(t, EVENT_VOTE_CAST, all[3].Kind())
	require.Equal(t, EVENT_PROPOSAL_FINISHED, all[4].Kind())
}

func TestEventLog_ABCIEvents(t *testing.T) {
	ctrler, evtLog := newTestGovCtrler(t, defaultPowerSource())
	require.NoError(t, ctrler.CreateProposal(propID(1), voterA, t0))
	require.NoError(t, ctrler.Vote(propID(1), voterB, proposal.VOTE_AGAINST, uint256Of(40), t0))
	require.NoError(t, ctrler.Vote(propID(1), voterC, proposal.VOTE_AGAINST, uint256Of(35), t0))

	evts := evtLog.ABCIEvents()
	require.Len(t, evts, 4)

	require.Equal(t, "proposal", evts[0].Type)
	require.Equal(t, []byte("created"), evts[0].Attributes[0].Key)
	require.Equal(t, []byte(propID(1).String()), evts[0].Attributes[0].Value)

	require.Equal(t, "vote", evts[1].Type)
	require.Equal(t, []byte(voterB.String()), evts[1].Attributes[1].Value)
	require.Equal(t, []byte("40"), evts[1].Attributes[2].Value)
	require.Equal(t, []byte("against"), evts[1].Attributes[3].Value)

	require.Equal(t, "proposal", evts[3].Type)
	require.Equal(t, []byte("finished"), evts[3].Attributes[0].Key)
	require.Equal(t, []byte("rejected"), evts[3].Attributes[1].Value)
}
