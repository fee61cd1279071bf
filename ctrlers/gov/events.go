package gov

import (
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/ctrlers/gov/proposal"
	"github.com/rigochain/rigo-dao/types"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	abcitypes "github.com/tendermint/tendermint/abci/types"
	"strconv"
	"time"
)

type EventKind string

const (
	EVENT_PROPOSAL_CREATED  EventKind = "proposal_created"
	EVENT_PROPOSAL_FINISHED EventKind = "proposal_finished"
	EVENT_VOTE_CAST         EventKind = "vote_cast"
)

type IEvent interface {
	Kind() EventKind
	ProposalID() abytes.HexBytes
	ToABCIEvent() abcitypes.Event
}

type ProposalCreated struct {
	ID        abytes.HexBytes `json:"id"`
	DeathTime time.Time       `json:"deathTime"`
}

func (evt *ProposalCreated) Kind() EventKind {
	return EVENT_PROPOSAL_CREATED
}

func (evt *ProposalCreated) ProposalID() abytes.HexBytes {
	return evt.ID
}

func (evt *ProposalCreated) ToABCIEvent() abcitypes.Event {
	return abcitypes.Event{
		Type: "proposal",
		Attributes: []abcitypes.EventAttribute{
			{Key: []byte("created"), Value: []byte(evt.ID.String()), Index: true},
			{Key: []byte("deathTime"), Value: []byte(strconv.FormatInt(evt.DeathTime.Unix(), 10)), Index: false},
		},
	}
}

type ProposalFinished struct {
	ID    abytes.HexBytes        `json:"id"`
	State proposal.ProposalState `json:"state"`
}

func (evt *ProposalFinished) Kind() EventKind {
	return EVENT_PROPOSAL_FINISHED
}

func (evt *ProposalFinished) ProposalID() abytes.HexBytes {
	return evt.ID
}

func (evt *ProposalFinished) ToABCIEvent() abcitypes.Event {
	return abcitypes.Event{
		Type: "proposal",
		Attributes: []abcitypes.EventAttribute{
			{Key: []byte("finished"), Value: []byte(evt.ID.String()), Index: true},
			{Key: []byte("state"), Value: []byte(evt.State.String()), Index: true},
		},
	}
}

type VoteCast struct {
	ID    abytes.HexBytes   `json:"id"`
	Voter types.Address     `json:"voter"`
	Size  *uint256.Int      `json:"size"`
	Side  proposal.VoteSide `json:"side"`
}

func (evt *VoteCast) Kind() EventKind {
	return EVENT_VOTE_CAST
}

func (evt *VoteCast) ProposalID() abytes.HexBytes {
	return evt.ID
}

func (evt *VoteCast) ToABCIEvent() abcitypes.Event {
	return abcitypes.Event{
		Type: "vote",
		Attributes: []abcitypes.EventAttribute{
			{Key: []byte("proposal"), Value: []byte(evt.ID.String()), Index: true},
			{Key: []byte("voter"), Value: []byte(evt.Voter.String()), Index: true},
			{Key: []byte("size"), Value: []byte(evt.Size.Dec()), Index: false},
			{Key: []byte("side"), Value: []byte(evt.Side.String()), Index: false},
		},
	}
}

var _ IEvent = (*ProposalCreated)(nil)
var _ IEvent = (*ProposalFinished)(nil)
var _ IEvent = (*VoteCast)(nil)
