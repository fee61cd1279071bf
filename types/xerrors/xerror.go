package xerrors

import (
	"errors"
	"fmt"
)

const (
	ErrCodeSuccess uint32 = iota
	ErrCodeGeneric
	ErrCodeInitChain
	ErrCodeCommit
	ErrCodeNotFoundResult
	ErrCodeNotFoundAccount
	ErrCodeInsufficientFund
	ErrCodeNegAmount
	ErrCodeOverflow
)

const (
	ErrCodeUnknownVoter uint32 = 100 + iota
	ErrCodeDuplicatedProposal
	ErrCodeCapacityExceeded
	ErrCodeNotFoundProposal
	ErrCodeProposalExpired
	ErrCodeProposalFinished
	ErrCodeInvalidVoteSize
	ErrCodeInsufficientVotingPower
	ErrCodeInvalidVoteSide
	ErrCodeInvalidProposalID
	ErrCodeInvalidGovParams
)

var (
	ErrInitChain        = NewWith(ErrCodeInitChain, "InitChain failed")
	ErrCommit           = NewWith(ErrCodeCommit, "Commit failed")
	ErrNotFoundResult   = NewWith(ErrCodeNotFoundResult, "not found result")
	ErrNotFoundAccount  = NewWith(ErrCodeNotFoundAccount, "not found account")
	ErrInsufficientFund = NewWith(ErrCodeInsufficientFund, "insufficient fund")
	ErrNegAmount        = NewWith(ErrCodeNegAmount, "negative amount")
	ErrOverflow         = NewWith(ErrCodeOverflow, "overflow occurs")

	ErrUnknownVoter            = NewWith(ErrCodeUnknownVoter, "proposal creator's voting power should be positive")
	ErrDuplicatedProposal      = NewWith(ErrCodeDuplicatedProposal, "proposal already created")
	ErrCapacityExceeded        = NewWith(ErrCodeCapacityExceeded, "already created max number of proposals")
	ErrNotFoundProposal        = NewWith(ErrCodeNotFoundProposal, "unknown proposal")
	ErrProposalExpired         = NewWith(ErrCodeProposalExpired, "proposal is expired")
	ErrProposalFinished        = NewWith(ErrCodeProposalFinished, "proposal already finished")
	ErrInvalidVoteSize         = NewWith(ErrCodeInvalidVoteSize, "vote size must be positive")
	ErrInsufficientVotingPower = NewWith(ErrCodeInsufficientVotingPower, "voter must have enough voting power for vote")
	ErrInvalidVoteSide         = NewWith(ErrCodeInvalidVoteSide, "invalid vote side")
	ErrInvalidProposalID       = NewWith(ErrCodeInvalidProposalID, "invalid proposal id")
	ErrInvalidGovParams        = NewWith(ErrCodeInvalidGovParams, "invalid governance parameters")
)

type XError interface {
	Code() uint32
	Error() string
	Cause() error
	With(error) XError
	Wrap(error) XError
	Wrapf(string, ...any) XError
	Unwrap() error
}

type xerr struct {
	code  uint32
	msg   string
	cause error
}

func New(m string) XError {
	return &xerr{
		code: ErrCodeGeneric,
		msg:  m,
	}
}

func NewWith(code uint32, msg string) XError {
	return &xerr{
		code: code,
		msg:  msg,
	}
}

func NewOrdinary(msg string) XError {
	return New(msg)
}

func NewFrom(err error) XError {
	return &xerr{
		code: ErrCodeGeneric,
		msg:  err.Error(),
	}
}

// From returns err itself when it is already a XError.
func From(err error) XError {
	if err == nil {
		return nil
	}
	var xe XError
	if errors.As(err, &xe) {
		return xe
	}
	return NewFrom(err)
}

func (e *xerr) Code() uint32 {
	return e.code
}

func (e *xerr) Error() string {
	if e.cause != nil {
		return e.msg + "<<" + e.cause.Error()
	}
	return e.msg
}

func (e *xerr) Cause() error {
	return e.cause
}

func (e *xerr) Unwrap() error {
	return e.Cause()
}

// Is reports whether target carries the same error code.
// Generic errors have no identity except themselves.
func (e *xerr) Is(target error) bool {
	t, ok := target.(*xerr)
	if !ok {
		return false
	}
	if e.code == ErrCodeGeneric || t.code == ErrCodeGeneric {
		return e == t
	}
	return e.code == t.code
}

func (e *xerr) With(err error) XError {
	return &xerr{
		code:  e.code,
		msg:   e.msg,
		cause: err,
	}
}

func (e *xerr) Wrap(err error) XError {
	return &xerr{
		code:  e.code,
		msg:   e.msg,
		cause: err,
	}
}

func (e *xerr) Wrapf(format string, args ...any) XError {
	return e.Wrap(fmt.Errorf(format, args...))
}
