package types

import (
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/types"
	"github.com/rigochain/rigo-dao/types/xerrors"
)

type ILedgerHandler interface {
	InitLedger(interface{}) xerrors.XError
	Commit() ([]byte, int64, xerrors.XError)
	Close() xerrors.XError
}

// IVotingPowerSource is read by the governance controller.
// PowerOf returns the current (delegated) voting power of an account and
// TotalSupply the amount of voting power that can ever exist.
type IVotingPowerSource interface {
	PowerOf(types.Address) *uint256.Int
	TotalSupply() *uint256.Int
}

type IGovHandler interface {
	ProposalsCount() int
	QuorumThreshold() *uint256.Int
}
