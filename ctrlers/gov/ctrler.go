package gov

import (
	"github.com/holiman/uint256"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	"github.com/rigochain/rigo-dao/ctrlers/gov/proposal"
	ctrlertypes "github.com/rigochain/rigo-dao/ctrlers/types"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/rigochain/rigo-dao/ledger"
	"github.com/rigochain/rigo-dao/types"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"github.com/rigochain/rigo-dao/types/crypto"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"github.com/tendermint/tendermint/libs/log"
	"sort"
	"sync"
	"time"
)

type GovCtrler struct {
	params      *ctrlertypes.GovParams
	powerSource ctrlertypes.IVotingPowerSource
	quorum      *uint256.Int

	// proposals in the active set, in creation order.
	activeProps []*proposal.GovProposal
	// keys of terminal proposals, oldest first.
	frozenKeys []ledger.LedgerKey
	// last sequence given to a created or frozen proposal.
	lastSeq uint64

	paramsLedger   ledger.ILedger[*ctrlertypes.GovParams]
	proposalLedger ledger.ILedger[*proposal.GovProposal]
	frozenLedger   ledger.ILedger[*proposal.GovProposal]

	eventSink IEventSink
	metrics   *Metrics

	logger log.Logger
	mtx    sync.RWMutex
}

type Option func(*GovCtrler)

func WithEventSink(sink IEventSink) Option {
	return func(ctrler *GovCtrler) {
		ctrler.eventSink = sink
	}
}

func WithMetrics(m *Metrics) Option {
	return func(ctrler *GovCtrler) {
		ctrler.metrics = m
	}
}

// NewGovCtrler opens the governance ledgers under config.DBDir() and restores the proposals committed before.
// The quorum threshold is fixed here from the total supply of `powerSource`.
func NewGovCtrler(config *cfg.Config, powerSource ctrlertypes.IVotingPowerSource, logger log.Logger, opts ...Option) (*GovCtrler, xerrors.XError) {
	newGovParamsProvider := func() *ctrlertypes.GovParams { return &ctrlertypes.GovParams{} }
	newProposalProvider := func() *proposal.GovProposal { return &proposal.GovProposal{} }

	paramsLedger, xerr := ledger.NewSimpleLedger[*ctrlertypes.GovParams]("gov_params", config.DBBackend, config.DBDir(), config.CacheSize, newGovParamsProvider)
	if xerr != nil {
		return nil, xerr
	}
	proposalLedger, xerr := ledger.NewSimpleLedger[*proposal.GovProposal]("proposal", config.DBBackend, config.DBDir(), config.CacheSize, newProposalProvider)
	if xerr != nil {
		return nil, xerr
	}
	frozenLedger, xerr := ledger.NewSimpleLedger[*proposal.GovProposal]("frozen_proposal", config.DBBackend, config.DBDir(), config.CacheSize, newProposalProvider)
	if xerr != nil {
		return nil, xerr
	}

	params, xerr := paramsLedger.Get(ledger.LedgerKey{})
	// `params` could be nil
	if xerr != nil && xerr != xerrors.ErrNotFoundResult {
		return nil, xerr
	} else if params == nil {
		params = config.Gov
		if params == nil {
			params = ctrlertypes.DefaultGovParams()
		}
	}
	if xerr := params.Validate(); xerr != nil {
		return nil, xerr
	}

	quorum, xerr := params.QuorumOf(powerSource.TotalSupply())
	if xerr != nil {
		return nil, xerr
	}

	ctrler := &GovCtrler{
		params:         params,
		powerSource:    powerSource,
		quorum:         quorum,
		paramsLedger:   paramsLedger,
		proposalLedger: proposalLedger,
		frozenLedger:   frozenLedger,
		eventSink:      NewEventLog(),
		logger:         logger.With("module", "rigo_GovCtrler"),
	}
	for _, opt := range opts {
		opt(ctrler)
	}
	if ctrler.metrics == nil {
		ctrler.metrics = NewMetrics(nil)
	}

	if xerr := ctrler.restore(); xerr != nil {
		return nil, xerr
	}
	return ctrler, nil
}

func (ctrler *GovCtrler) restore() xerrors.XError {
	if xerr := ctrler.proposalLedger.IterateReadAllItems(func(prop *proposal.GovProposal) xerrors.XError {
		ctrler.activeProps = append(ctrler.activeProps, prop)
		return nil
	}); xerr != nil {
		return xerr
	}
	sort.Slice(ctrler.activeProps, func(i, j int) bool {
		return ctrler.activeProps[i].GetSeq() < ctrler.activeProps[j].GetSeq()
	})

	var frozens []*proposal.GovProposal
	if xerr := ctrler.frozenLedger.IterateReadAllItems(func(prop *proposal.GovProposal) xerrors.XError {
		frozens = append(frozens, prop)
		return nil
	}); xerr != nil {
		return xerr
	}
	sort.Slice(frozens, func(i, j int) bool {
		return frozens[i].GetFrozenSeq() < frozens[j].GetFrozenSeq()
	})
	for _, prop := range frozens {
		ctrler.frozenKeys = append(ctrler.frozenKeys, prop.Key())
		ctrler.seenSeq(prop.GetSeq())
		ctrler.seenSeq(prop.GetFrozenSeq())
	}
	for _, prop := range ctrler.activeProps {
		ctrler.seenSeq(prop.GetSeq())
	}

	ctrler.metrics.ActiveProposals.Set(float64(len(ctrler.activeProps)))
	return nil
}

func (ctrler *GovCtrler) seenSeq(seq uint64) {
	if seq > ctrler.lastSeq {
		ctrler.lastSeq = seq
	}
}

// InitLedger applies the governance parameters of the genesis and fixes the quorum again.
// The voting power source must be initialized before.
func (ctrler *GovCtrler) InitLedger(req interface{}) xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	genAppState, ok := req.(*genesis.GenesisAppState)
	if !ok {
		return xerrors.ErrInitChain.Wrapf("wrong parameter: GovCtrler::InitLedger requires *genesis.GenesisAppState")
	}
	if len(ctrler.activeProps) > 0 || len(ctrler.frozenKeys) > 0 {
		return xerrors.ErrInitChain.Wrapf("GovCtrler already has proposals")
	}

	params := genAppState.GovParams
	if params == nil {
		params = ctrler.params
	}
	if xerr := params.Validate(); xerr != nil {
		return xerr
	}
	quorum, xerr := params.QuorumOf(ctrler.powerSource.TotalSupply())
	if xerr != nil {
		return xerr
	}

	if xerr := ctrler.paramsLedger.Set(params); xerr != nil {
		return xerr
	}
	ctrler.params = params
	ctrler.quorum = quorum

	ctrler.logger.Info("InitLedger", "params", params.String(), "quorum", quorum.Dec())
	return nil
}

// CreateProposal puts a new proposal `id` into the active set.
// When the set is full, the first proposal (in creation order) whose voting window has closed is expired and
// gives its slot to the new one.
func (ctrler *GovCtrler) CreateProposal(id abytes.HexBytes, creator types.Address, now time.Time) xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	if len(id) != crypto.ProposalIDSize {
		return xerrors.ErrInvalidProposalID.Wrapf("wrong length: %v", len(id))
	}
	if power := ctrler.powerSource.PowerOf(creator); power == nil || power.IsZero() {
		return xerrors.ErrUnknownVoter.Wrapf("creator: %v", creator)
	}

	key := ledger.ToLedgerKey(id)
	if idx := ctrler.findActive(key); idx >= 0 {
		return xerrors.ErrDuplicatedProposal.Wrapf("id: %v", id)
	}

	var evts []IEvent

	if len(ctrler.activeProps) >= ctrler.params.MaxActiveProposals() {
		idx := ctrler.findEvictable(now)
		if idx < 0 {
			return xerrors.ErrCapacityExceeded.Wrapf("max: %v", ctrler.params.MaxActiveProposals())
		}
		evicted := ctrler.activeProps[idx]
		evicted.Expire(now)
		if xerr := ctrler.freeze(idx); xerr != nil {
			return xerr
		}
		evts = append(evts, &ProposalFinished{ID: evicted.ID, State: proposal.PROPOSAL_EXPIRED})
		ctrler.metrics.ProposalsFinished.WithLabelValues(proposal.PROPOSAL_EXPIRED.String()).Inc()
		ctrler.logger.Info("proposal is expired", "id", evicted.ID, "deathTime", evicted.GetDeathTime())
	}

	// the same id may be used again after the old one finished.
	if ctrler.frozenLedger.Has(key) {
		if _, xerr := ctrler.frozenLedger.Del(key); xerr != nil {
			return xerr
		}
		ctrler.removeFrozenKey(key)
	}

	prop := proposal.NewGovProposal(id, ctrler.lastSeq+1, creator, now, ctrler.params.VotingWindow())
	if xerr := ctrler.proposalLedger.Set(prop); xerr != nil {
		return xerr
	}
	ctrler.lastSeq++
	ctrler.activeProps = append(ctrler.activeProps, prop)

	evts = append(evts, &ProposalCreated{ID: prop.ID, DeathTime: prop.GetDeathTime()})
	ctrler.metrics.ProposalsCreated.Inc()
	ctrler.metrics.ActiveProposals.Set(float64(len(ctrler.activeProps)))
	ctrler.logger.Debug("proposal is created", "id", id, "creator", creator, "deathTime", prop.GetDeathTime())

	ctrler.eventSink.Emit(evts...)
	return nil
}

// Vote commits `size` of the voter's power to `side` of proposal `id`.
// A voter may vote many times on both sides as long as the sum does not exceed its current power.
func (ctrler *GovCtrler) Vote(id abytes.HexBytes, voter types.Address, side proposal.VoteSide, size *uint256.Int, now time.Time) xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	if size == nil || size.IsZero() {
		return xerrors.ErrInvalidVoteSize
	}
	if !side.IsValid() {
		return xerrors.ErrInvalidVoteSide.Wrapf("side: %v", side)
	}

	key := ledger.ToLedgerKey(id)
	idx := ctrler.findActive(key)
	var prop *proposal.GovProposal
	if idx >= 0 {
		prop = ctrler.activeProps[idx]
	} else if frozen, xerr := ctrler.frozenLedger.Get(key); xerr == nil {
		prop = frozen
	} else {
		return xerrors.ErrNotFoundProposal.Wrapf("id: %v", id)
	}

	if prop.IsExpired(now) {
		return xerrors.ErrProposalExpired.Wrapf("deathTime: %v", prop.GetDeathTime())
	}
	if prop.GetState() != proposal.PROPOSAL_ACTIVE {
		return xerrors.ErrProposalFinished.Wrapf("state: %v", prop.GetState())
	}

	power := ctrler.powerSource.PowerOf(voter)
	if power == nil {
		power = uint256.NewInt(0)
	}
	// only an active proposal reaches here, so `idx` is in the active set.
	voted := prop.Clone()
	if xerr := voted.DoVote(voter, side, size, power); xerr != nil {
		return xerr
	}
	if xerr := ctrler.proposalLedger.Set(voted); xerr != nil {
		return xerr
	}
	ctrler.activeProps[idx] = voted
	prop = voted

	evts := []IEvent{&VoteCast{ID: prop.ID, Voter: voter, Size: size.Clone(), Side: side}}
	ctrler.metrics.VotesCast.WithLabelValues(side.String()).Inc()
	ctrler.logger.Debug("vote is cast", "id", id, "voter", voter, "side", side, "size", size.Dec())

	if prop.Resolve(ctrler.quorum, now) {
		if xerr := ctrler.freeze(idx); xerr != nil {
			return xerr
		}
		evts = append(evts, &ProposalFinished{ID: prop.ID, State: prop.GetState()})
		ctrler.metrics.ProposalsFinished.WithLabelValues(prop.GetState().String()).Inc()
		ctrler.logger.Info("proposal is finished", "id", id, "state", prop.GetState())
	}

	ctrler.eventSink.Emit(evts...)
	return nil
}

// freeze moves the terminal proposal at `idx` of the active set to the history.
func (ctrler *GovCtrler) freeze(idx int) xerrors.XError {
	prop := ctrler.activeProps[idx]
	if _, xerr := ctrler.proposalLedger.Del(prop.Key()); xerr != nil && xerr != xerrors.ErrNotFoundResult {
		return xerr
	}
	ctrler.activeProps = append(ctrler.activeProps[:idx], ctrler.activeProps[idx+1:]...)
	ctrler.metrics.ActiveProposals.Set(float64(len(ctrler.activeProps)))

	prop.SetFrozenSeq(ctrler.lastSeq + 1)
	if xerr := ctrler.frozenLedger.Set(prop); xerr != nil {
		return xerr
	}
	ctrler.lastSeq++
	ctrler.frozenKeys = append(ctrler.frozenKeys, prop.Key())

	// the proposal just frozen is never purged.
	for len(ctrler.frozenKeys) > 1 && len(ctrler.frozenKeys) > ctrler.params.MaxHistory() {
		oldest := ctrler.frozenKeys[0]
		if _, xerr := ctrler.frozenLedger.Del(oldest); xerr != nil && xerr != xerrors.ErrNotFoundResult {
			return xerr
		}
		ctrler.frozenKeys = ctrler.frozenKeys[1:]
		ctrler.logger.Debug("proposal is purged from history", "key", abytes.HexBytes(oldest[:]))
	}
	return nil
}

func (ctrler *GovCtrler) findActive(key ledger.LedgerKey) int {
	for i, prop := range ctrler.activeProps {
		if prop.Key() == key {
			return i
		}
	}
	return -1
}

func (ctrler *GovCtrler) findEvictable(now time.Time) int {
	for i, prop := range ctrler.activeProps {
		if prop.IsEvictable(now) {
			return i
		}
	}
	return -1
}

func (ctrler *GovCtrler) removeFrozenKey(key ledger.LedgerKey) {
	for i, k := range ctrler.frozenKeys {
		if k == key {
			ctrler.frozenKeys = append(ctrler.frozenKeys[:i], ctrler.frozenKeys[i+1:]...)
			return
		}
	}
}

// find returns the proposal from the active set or the history.
func (ctrler *GovCtrler) find(id abytes.HexBytes) (*proposal.GovProposal, xerrors.XError) {
	key := ledger.ToLedgerKey(id)
	if idx := ctrler.findActive(key); idx >= 0 {
		return ctrler.activeProps[idx], nil
	}
	if prop, xerr := ctrler.frozenLedger.Get(key); xerr == nil {
		return prop, nil
	}
	return nil, xerrors.ErrNotFoundProposal.Wrapf("id: %v", id)
}

func (ctrler *GovCtrler) Commit() ([]byte, int64, xerrors.XError) {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	h0, _, xerr := ctrler.paramsLedger.Commit()
	if xerr != nil {
		return nil, 0, xerr
	}
	h1, ver, xerr := ctrler.proposalLedger.Commit()
	if xerr != nil {
		return nil, 0, xerr
	}
	h2, _, xerr := ctrler.frozenLedger.Commit()
	if xerr != nil {
		return nil, 0, xerr
	}
	return crypto.DefaultHash(h0, h1, h2), ver, nil
}

func (ctrler *GovCtrler) Close() xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	if ctrler.paramsLedger != nil {
		if xerr := ctrler.paramsLedger.Close(); xerr != nil {
			ctrler.logger.Error("paramsLedger.Close()", "error", xerr.Error())
		}
		ctrler.paramsLedger = nil
	}
	if ctrler.proposalLedger != nil {
		if xerr := ctrler.proposalLedger.Close(); xerr != nil {
			ctrler.logger.Error("proposalLedger.Close()", "error", xerr.Error())
		}
		ctrler.proposalLedger = nil
	}
	if ctrler.frozenLedger != nil {
		if xerr := ctrler.frozenLedger.Close(); xerr != nil {
			ctrler.logger.Error("frozenLedger.Close()", "error", xerr.Error())
		}
		ctrler.frozenLedger = nil
	}
	return nil
}

var _ ctrlertypes.ILedgerHandler = (*GovCtrler)(nil)
var _ ctrlertypes.IGovHandler = (*GovCtrler)(nil)
