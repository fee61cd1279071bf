package types

import (
	"fmt"
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/ledger"
	"github.com/rigochain/rigo-dao/types/xerrors"
	tmjson "github.com/tendermint/tendermint/libs/json"
	"sync"
	"time"
)

type GovParams struct {
	version            int64
	votingWindow       int64 // seconds
	maxActiveProposals int64
	quorumPercent      int64
	maxHistory         int64

	mtx sync.RWMutex
}

func DefaultGovParams() *GovParams {
	return &GovParams{
		version:            1,
		votingWindow:       60 * 60 * 24 * 3, // 3 days
		maxActiveProposals: 3,
		quorumPercent:      60, // 60%
		maxHistory:         64,
	}
}

func NewGovParams(votingWindow time.Duration, maxActiveProposals, quorumPercent, maxHistory int64) *GovParams {
	return &GovParams{
		version:            1,
		votingWindow:       int64(votingWindow / time.Second),
		maxActiveProposals: maxActiveProposals,
		quorumPercent:      quorumPercent,
		maxHistory:         maxHistory,
	}
}

func DecodeGovParams(bz []byte) (*GovParams, xerrors.XError) {
	ret := &GovParams{}
	if xerr := ret.Decode(bz); xerr != nil {
		return nil, xerr
	}
	return ret, nil
}

// Key is fixed; a ledger holds at most one GovParams.
func (r *GovParams) Key() ledger.LedgerKey {
	return ledger.LedgerKey{}
}

func (r *GovParams) Decode(bz []byte) xerrors.XError {
	if err := tmjson.Unmarshal(bz, r); err != nil {
		return xerrors.From(err)
	}
	return nil
}

func (r *GovParams) Encode() ([]byte, xerrors.XError) {
	if bz, err := tmjson.Marshal(r); err != nil {
		return nil, xerrors.From(err)
	} else {
		return bz, nil
	}
}

type govParamsJSON struct {
	Version            int64 `json:"version"`
	VotingWindow       int64 `json:"votingWindow"`
	MaxActiveProposals int64 `json:"maxActiveProposals"`
	QuorumPercent      int64 `json:"quorumPercent"`
	MaxHistory         int64 `json:"maxHistory"`
}

func (r *GovParams) MarshalJSON() ([]byte, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return tmjson.Marshal(&govParamsJSON{
		Version:            r.version,
		VotingWindow:       r.votingWindow,
		MaxActiveProposals: r.maxActiveProposals,
		QuorumPercent:      r.quorumPercent,
		MaxHistory:         r.maxHistory,
	})
}

func (r *GovParams) UnmarshalJSON(bz []byte) error {
	tm := &govParamsJSON{}
	if err := tmjson.Unmarshal(bz, tm); err != nil {
		return err
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.version = tm.Version
	r.votingWindow = tm.VotingWindow
	r.maxActiveProposals = tm.MaxActiveProposals
	r.quorumPercent = tm.QuorumPercent
	r.maxHistory = tm.MaxHistory
	return nil
}

var _ ledger.ILedgerItem = (*GovParams)(nil)

func (r *GovParams) Validate() xerrors.XError {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if r.votingWindow <= 0 {
		return xerrors.ErrInvalidGovParams.Wrapf("votingWindow must be positive: %v", r.votingWindow)
	}
	if r.maxActiveProposals <= 0 {
		return xerrors.ErrInvalidGovParams.Wrapf("maxActiveProposals must be positive: %v", r.maxActiveProposals)
	}
	if r.quorumPercent <= 0 || r.quorumPercent > 100 {
		return xerrors.ErrInvalidGovParams.Wrapf("quorumPercent must be in (0, 100]: %v", r.quorumPercent)
	}
	// a finished proposal must stay queryable at least until the next one finishes.
	if r.maxHistory < 1 {
		return xerrors.ErrInvalidGovParams.Wrapf("maxHistory must be positive: %v", r.maxHistory)
	}
	return nil
}

func (r *GovParams) Version() int64 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.version
}

func (r *GovParams) VotingWindow() time.Duration {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return time.Duration(r.votingWindow) * time.Second
}

func (r *GovParams) MaxActiveProposals() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return int(r.maxActiveProposals)
}

func (r *GovParams) QuorumPercent() int64 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.quorumPercent
}

func (r *GovParams) MaxHistory() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return int(r.maxHistory)
}

// QuorumOf returns `quorumPercent * supply / 100`.
func (r *GovParams) QuorumOf(supply *uint256.Int) (*uint256.Int, xerrors.XError) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	q, overflow := new(uint256.Int).MulOverflow(supply, uint256.NewInt(uint64(r.quorumPercent)))
	if overflow {
		return nil, xerrors.ErrOverflow.Wrapf("quorum of supply %v", supply.Dec())
	}
	return q.Div(q, uint256.NewInt(100)), nil
}

func (r *GovParams) String() string {
	if bz, err := r.MarshalJSON(); err != nil {
		return fmt.Sprintf("{error: %v}", err)
	} else {
		return string(bz)
	}
}
