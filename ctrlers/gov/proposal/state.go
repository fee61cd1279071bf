package proposal

import (
	"fmt"
	"strings"
)

type ProposalState int32

const (
	PROPOSAL_ACTIVE ProposalState = iota
	PROPOSAL_ACCEPTED
	PROPOSAL_REJECTED
	PROPOSAL_EXPIRED
)

func (s ProposalState) String() string {
	switch s {
	case PROPOSAL_ACTIVE:
		return "active"
	case PROPOSAL_ACCEPTED:
		return "accepted"
	case PROPOSAL_REJECTED:
		return "rejected"
	case PROPOSAL_EXPIRED:
		return "expired"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

func (s ProposalState) IsTerminal() bool {
	return s == PROPOSAL_ACCEPTED || s == PROPOSAL_REJECTED || s == PROPOSAL_EXPIRED
}

type VoteSide int32

const (
	VOTE_FOR VoteSide = iota
	VOTE_AGAINST
)

func (s VoteSide) String() string {
	switch s {
	case VOTE_FOR:
		return "for"
	case VOTE_AGAINST:
		return "against"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

func (s VoteSide) IsValid() bool {
	return s == VOTE_FOR || s == VOTE_AGAINST
}

func ParseVoteSide(s string) (VoteSide, bool) {
	switch strings.ToLower(s) {
	case "for", "yes", "0":
		return VOTE_FOR, true
	case "against", "no", "1":
		return VOTE_AGAINST, true
	default:
		return -1, false
	}
}
