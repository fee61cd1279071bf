package proposal

import (
	"encoding/json"
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/ledger"
	"github.com/rigochain/rigo-dao/types"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"sync"
	"time"
)

type Voter struct {
	Addr  types.Address `json:"address"`
	Spent *uint256.Int  `json:"spent"`
}

// GovProposalHeader is fixed at creation.
// Seq is the creation order in the registry, as creation times may be equal.
type GovProposalHeader struct {
	ID        abytes.HexBytes `json:"id"`
	Seq       uint64          `json:"seq"`
	Creator   types.Address   `json:"creator"`
	CreatedAt time.Time       `json:"createdAt"`
	DeathTime time.Time       `json:"deathTime"`
}

type GovProposal struct {
	GovProposalHeader `json:"header"`
	State             ProposalState     `json:"state"`
	VotesFor          *uint256.Int      `json:"votesFor"`
	VotesAgainst      *uint256.Int      `json:"votesAgainst"`
	Voters            map[string]*Voter `json:"voters"`
	FinishedAt        time.Time         `json:"finishedAt,omitempty"`
	FrozenSeq         uint64            `json:"frozenSeq,omitempty"`

	mtx sync.RWMutex
}

func NewGovProposal(id abytes.HexBytes, seq uint64, creator types.Address, createdAt time.Time, votingWindow time.Duration) *GovProposal {
	return &GovProposal{
		GovProposalHeader: GovProposalHeader{
			ID:        id,
			Seq:       seq,
			Creator:   creator,
			CreatedAt: createdAt,
			DeathTime: createdAt.Add(votingWindow),
		},
		State:        PROPOSAL_ACTIVE,
		VotesFor:     uint256.NewInt(0),
		VotesAgainst: uint256.NewInt(0),
		Voters:       make(map[string]*Voter),
	}
}

func (prop *GovProposal) Key() ledger.LedgerKey {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return prop.ID.Array32()
}

func (prop *GovProposal) Encode() ([]byte, xerrors.XError) {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	if bz, err := json.Marshal(prop); err != nil {
		return bz, xerrors.From(err)
	} else {
		return bz, nil
	}
}

func (prop *GovProposal) Decode(bz []byte) xerrors.XError {
	prop.mtx.Lock()
	defer prop.mtx.Unlock()

	if err := json.Unmarshal(bz, prop); err != nil {
		return xerrors.From(err)
	}
	return nil
}

var _ ledger.ILedgerItem = (*GovProposal)(nil)

func (prop *GovProposal) GetState() ProposalState {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return prop.State
}

func (prop *GovProposal) GetSeq() uint64 {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return prop.Seq
}

func (prop *GovProposal) GetFrozenSeq() uint64 {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return prop.FrozenSeq
}

// SetFrozenSeq records the order in which the proposal entered the history.
func (prop *GovProposal) SetFrozenSeq(seq uint64) {
	prop.mtx.Lock()
	defer prop.mtx.Unlock()

	prop.FrozenSeq = seq
}

func (prop *GovProposal) GetDeathTime() time.Time {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return prop.DeathTime
}

// GetVotes returns copies of the tallies.
func (prop *GovProposal) GetVotes() (*uint256.Int, *uint256.Int) {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return new(uint256.Int).Set(prop.VotesFor), new(uint256.Int).Set(prop.VotesAgainst)
}

func (prop *GovProposal) TotalVotes() *uint256.Int {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return new(uint256.Int).Add(prop.VotesFor, prop.VotesAgainst)
}

func (prop *GovProposal) SpentOf(addr types.Address) *uint256.Int {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return prop.spentOf(addr)
}

func (prop *GovProposal) spentOf(addr types.Address) *uint256.Int {
	if voter, ok := prop.Voters[addr.String()]; ok {
		return new(uint256.Int).Set(voter.Spent)
	}
	return uint256.NewInt(0)
}

// IsExpired is true when the voting window has passed: `now > deathTime`.
func (prop *GovProposal) IsExpired(now time.Time) bool {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return now.After(prop.DeathTime)
}

// IsEvictable is true when the proposal may give its slot away: `deathTime <= now`.
func (prop *GovProposal) IsEvictable(now time.Time) bool {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	return !prop.DeathTime.After(now)
}

// DoVote commits `size` of the voter's `power` to `side`.
// Nothing is changed when an error is returned.
func (prop *GovProposal) DoVote(addr types.Address, side VoteSide, size, power *uint256.Int) xerrors.XError {
	prop.mtx.Lock()
	defer prop.mtx.Unlock()

	if prop.State != PROPOSAL_ACTIVE {
		return xerrors.ErrProposalFinished
	}
	if !side.IsValid() {
		return xerrors.ErrInvalidVoteSide
	}

	spent := prop.spentOf(addr)
	newSpent, overflow := new(uint256.Int).AddOverflow(spent, size)
	if overflow || newSpent.Gt(power) {
		available := uint256.NewInt(0)
		if power.Gt(spent) {
			available.Sub(power, spent)
		}
		return xerrors.ErrInsufficientVotingPower.Wrapf("available: %v, requested: %v", available.Dec(), size.Dec())
	}

	tally := prop.VotesFor
	if side == VOTE_AGAINST {
		tally = prop.VotesAgainst
	}
	newTally, overflow := new(uint256.Int).AddOverflow(tally, size)
	if overflow {
		return xerrors.ErrOverflow
	}

	if side == VOTE_FOR {
		prop.VotesFor = newTally
	} else {
		prop.VotesAgainst = newTally
	}
	prop.Voters[addr.String()] = &Voter{
		Addr:  addr,
		Spent: newSpent,
	}
	return nil
}

// Resolve finishes the proposal when the sum of both tallies reaches `threshold`.
// It returns true only on the call that finishes the proposal.
func (prop *GovProposal) Resolve(threshold *uint256.Int, now time.Time) bool {
	prop.mtx.Lock()
	defer prop.mtx.Unlock()

	if prop.State != PROPOSAL_ACTIVE {
		return false
	}
	total := new(uint256.Int).Add(prop.VotesFor, prop.VotesAgainst)
	if total.Lt(threshold) {
		return false
	}

	if prop.VotesFor.Gt(prop.VotesAgainst) {
		prop.State = PROPOSAL_ACCEPTED
	} else {
		prop.State = PROPOSAL_REJECTED
	}
	prop.FinishedAt = now
	return true
}

func (prop *GovProposal) Expire(now time.Time) bool {
	prop.mtx.Lock()
	defer prop.mtx.Unlock()

	if prop.State != PROPOSAL_ACTIVE {
		return false
	}
	prop.State = PROPOSAL_EXPIRED
	prop.FinishedAt = now
	return true
}

func (prop *GovProposal) Clone() *GovProposal {
	prop.mtx.RLock()
	defer prop.mtx.RUnlock()

	voters := make(map[string]*Voter, len(prop.Voters))
	for k, v := range prop.Voters {
		voters[k] = &Voter{
			Addr:  append(types.Address(nil), v.Addr...),
			Spent: new(uint256.Int).Set(v.Spent),
		}
	}
	return &GovProposal{
		GovProposalHeader: GovProposalHeader{
			ID:        append(abytes.HexBytes(nil), prop.ID...),
			Seq:       prop.Seq,
			Creator:   append(types.Address(nil), prop.Creator...),
			CreatedAt: prop.CreatedAt,
			DeathTime: prop.DeathTime,
		},
		State:        prop.State,
		VotesFor:     new(uint256.Int).Set(prop.VotesFor),
		VotesAgainst: new(uint256.Int).Set(prop.VotesAgainst),
		Voters:       voters,
		FinishedAt:   prop.FinishedAt,
		FrozenSeq:    prop.FrozenSeq,
	}
}
