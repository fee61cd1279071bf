package gov

import (
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/ctrlers/gov/proposal"
	ctrlertypes "github.com/rigochain/rigo-dao/ctrlers/types"
	"github.com/rigochain/rigo-dao/types"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"time"
)

// ProposalsCount returns the number of proposals in the active set.
func (ctrler *GovCtrler) ProposalsCount() int {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	return len(ctrler.activeProps)
}

func (ctrler *GovCtrler) ProposalState(id abytes.HexBytes) (proposal.ProposalState, xerrors.XError) {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	prop, xerr := ctrler.find(id)
	if xerr != nil {
		return 0, xerr
	}
	return prop.GetState(), nil
}

func (ctrler *GovCtrler) DeathTime(id abytes.HexBytes) (time.Time, xerrors.XError) {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	prop, xerr := ctrler.find(id)
	if xerr != nil {
		return time.Time{}, xerr
	}
	return prop.GetDeathTime(), nil
}

// ProposalVotes returns the tallies of `for` and `against`.
func (ctrler *GovCtrler) ProposalVotes(id abytes.HexBytes) (*uint256.Int, *uint256.Int, xerrors.XError) {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	prop, xerr := ctrler.find(id)
	if xerr != nil {
		return nil, nil, xerr
	}
	vf, va := prop.GetVotes()
	return vf, va, nil
}

func (ctrler *GovCtrler) SpentOf(id abytes.HexBytes, voter types.Address) (*uint256.Int, xerrors.XError) {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	prop, xerr := ctrler.find(id)
	if xerr != nil {
		return nil, xerr
	}
	return prop.SpentOf(voter), nil
}

func (ctrler *GovCtrler) ReadProposal(id abytes.HexBytes) (*proposal.GovProposal, xerrors.XError) {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	prop, xerr := ctrler.find(id)
	if xerr != nil {
		return nil, xerr
	}
	return prop.Clone(), nil
}

// ReadAllProposals returns copies of the active proposals in creation order.
func (ctrler *GovCtrler) ReadAllProposals() []*proposal.GovProposal {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	ret := make([]*proposal.GovProposal, len(ctrler.activeProps))
	for i, prop := range ctrler.activeProps {
		ret[i] = prop.Clone()
	}
	return ret
}

func (ctrler *GovCtrler) QuorumThreshold() *uint256.Int {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	return ctrler.quorum.Clone()
}

func (ctrler *GovCtrler) Params() *ctrlertypes.GovParams {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	return ctrler.params
}

func (ctrler *GovCtrler) HistoryCount() int {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	return len(ctrler.frozenKeys)
}
