package token

import (
	"github.com/holiman/uint256"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	ctrlertypes "github.com/rigochain/rigo-dao/ctrlers/types"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/rigochain/rigo-dao/ledger"
	"github.com/rigochain/rigo-dao/types"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"github.com/tendermint/tendermint/libs/log"
	"sync"
)

// TokenCtrler is a fixed supply token ledger with ERC20Votes style delegation.
// Balances carry voting power only after their owner delegates, to itself or to another account.
type TokenCtrler struct {
	acctLedger  ledger.ILedger[*Account]
	totalSupply *uint256.Int

	logger log.Logger
	mtx    sync.RWMutex
}

func NewTokenCtrler(config *cfg.Config, logger log.Logger) (*TokenCtrler, xerrors.XError) {
	newAccountProvider := func() *Account { return &Account{} }

	acctLedger, xerr := ledger.NewSimpleLedger[*Account]("accounts", config.DBBackend, config.DBDir(), config.CacheSize, newAccountProvider)
	if xerr != nil {
		return nil, xerr
	}

	totalSupply := uint256.NewInt(0)
	if xerr := acctLedger.IterateReadAllItems(func(acct *Account) xerrors.XError {
		_ = totalSupply.Add(totalSupply, acct.Balance)
		return nil
	}); xerr != nil {
		return nil, xerr
	}

	return &TokenCtrler{
		acctLedger:  acctLedger,
		totalSupply: totalSupply,
		logger:      logger.With("module", "rigo_TokenCtrler"),
	}, nil
}

func (ctrler *TokenCtrler) InitLedger(req interface{}) xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	genAppState, ok := req.(*genesis.GenesisAppState)
	if !ok {
		return xerrors.ErrInitChain.Wrapf("wrong parameter: TokenCtrler::InitLedger requires *genesis.GenesisAppState")
	}
	if !ctrler.totalSupply.IsZero() {
		return xerrors.ErrInitChain.Wrapf("TokenCtrler is already initialized")
	}

	for _, holder := range genAppState.AssetHolders {
		acct := ctrler.findOrNewAccount(holder.Address)
		if xerr := acct.AddBalance(holder.Balance); xerr != nil {
			return xerr
		}
		if _, overflow := ctrler.totalSupply.AddOverflow(ctrler.totalSupply, holder.Balance); overflow {
			return xerrors.ErrOverflow.Wrapf("total supply")
		}
		if xerr := ctrler.acctLedger.Set(acct); xerr != nil {
			return xerr
		}
	}
	for _, d := range genAppState.Delegations {
		if xerr := ctrler.delegate(d.Delegator, d.Delegatee); xerr != nil {
			return xerr
		}
	}

	ctrler.logger.Info("InitLedger", "holders", len(genAppState.AssetHolders), "totalSupply", ctrler.totalSupply.Dec())
	return nil
}

func (ctrler *TokenCtrler) findAccount(addr types.Address) *Account {
	if acct, xerr := ctrler.acctLedger.Get(ledger.ToLedgerKey(addr)); xerr == nil {
		return acct
	}
	return nil
}

// findOrNewAccount returns a new account that is not in the ledger yet when `addr` is unknown.
// The caller sets it after changing it.
func (ctrler *TokenCtrler) findOrNewAccount(addr types.Address) *Account {
	if acct := ctrler.findAccount(addr); acct != nil {
		return acct
	}
	return NewAccount(addr)
}

// moveVotes moves `amt` votes from the delegatee `from` to the delegatee `to`.
// An empty address stands for no delegatee.
func (ctrler *TokenCtrler) moveVotes(from, to types.Address, amt *uint256.Int) xerrors.XError {
	if len(from) > 0 {
		src := ctrler.findOrNewAccount(from)
		if xerr := src.SubVotes(amt); xerr != nil {
			return xerr
		}
		if xerr := ctrler.acctLedger.Set(src); xerr != nil {
			return xerr
		}
	}
	if len(to) > 0 {
		dst := ctrler.findOrNewAccount(to)
		if xerr := dst.AddVotes(amt); xerr != nil {
			return xerr
		}
		if xerr := ctrler.acctLedger.Set(dst); xerr != nil {
			return xerr
		}
	}
	return nil
}

func (ctrler *TokenCtrler) setAccounts(accts ...*Account) xerrors.XError {
	for _, acct := range accts {
		if xerr := ctrler.acctLedger.Set(acct); xerr != nil {
			return xerr
		}
	}
	return nil
}

func (ctrler *TokenCtrler) Transfer(from, to types.Address, amt *uint256.Int) xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	if amt == nil {
		return xerrors.ErrNegAmount
	}
	if types.IsZeroAddress(to) {
		return xerrors.ErrNotFoundAccount.Wrapf("transfer to the zero address")
	}

	sender := ctrler.findAccount(from)
	if sender == nil {
		return xerrors.ErrNotFoundAccount.Wrapf("sender: %v", from)
	}
	if xerr := sender.SubBalance(amt); xerr != nil {
		return xerr
	}
	receiver := ctrler.findOrNewAccount(to)
	if xerr := receiver.AddBalance(amt); xerr != nil {
		_ = sender.AddBalance(amt)
		return xerr
	}
	if xerr := ctrler.setAccounts(sender, receiver); xerr != nil {
		// the cached accounts are changed already.
		_ = receiver.SubBalance(amt)
		_ = sender.AddBalance(amt)
		return xerr
	}

	if xerr := ctrler.moveVotes(sender.GetDelegatee(), receiver.GetDelegatee(), amt); xerr != nil {
		return xerr
	}

	ctrler.logger.Debug("Transfer", "from", from, "to", to, "amount", amt.Dec())
	return nil
}

// Delegate moves all the voting power of the delegator's balance to `delegatee`.
func (ctrler *TokenCtrler) Delegate(delegator, delegatee types.Address) xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	return ctrler.delegate(delegator, delegatee)
}

func (ctrler *TokenCtrler) delegate(delegator, delegatee types.Address) xerrors.XError {
	if types.IsZeroAddress(delegatee) {
		return xerrors.ErrNotFoundAccount.Wrapf("delegate to the zero address")
	}

	acct := ctrler.findOrNewAccount(delegator)
	prev := acct.GetDelegatee()
	acct.SetDelegatee(delegatee)
	if xerr := ctrler.acctLedger.Set(acct); xerr != nil {
		acct.SetDelegatee(prev)
		return xerr
	}

	if xerr := ctrler.moveVotes(prev, delegatee, acct.GetBalance()); xerr != nil {
		return xerr
	}

	ctrler.logger.Debug("Delegate", "delegator", delegator, "from", prev, "to", delegatee)
	return nil
}

func (ctrler *TokenCtrler) BalanceOf(addr types.Address) *uint256.Int {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	if acct := ctrler.findAccount(addr); acct != nil {
		return acct.GetBalance()
	}
	return uint256.NewInt(0)
}

// PowerOf returns the votes delegated to `addr`.
func (ctrler *TokenCtrler) PowerOf(addr types.Address) *uint256.Int {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	if acct := ctrler.findAccount(addr); acct != nil {
		return acct.GetVotes()
	}
	return uint256.NewInt(0)
}

func (ctrler *TokenCtrler) DelegateeOf(addr types.Address) types.Address {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	if acct := ctrler.findAccount(addr); acct != nil {
		return acct.GetDelegatee()
	}
	return nil
}

func (ctrler *TokenCtrler) TotalSupply() *uint256.Int {
	ctrler.mtx.RLock()
	defer ctrler.mtx.RUnlock()

	return ctrler.totalSupply.Clone()
}

func (ctrler *TokenCtrler) Commit() ([]byte, int64, xerrors.XError) {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	return ctrler.acctLedger.Commit()
}

func (ctrler *TokenCtrler) Close() xerrors.XError {
	ctrler.mtx.Lock()
	defer ctrler.mtx.Unlock()

	if ctrler.acctLedger != nil {
		if xerr := ctrler.acctLedger.Close(); xerr != nil {
			ctrler.logger.Error("acctLedger.Close()", "error", xerr.Error())
		}
		ctrler.acctLedger = nil
	}
	return nil
}

var _ ctrlertypes.ILedgerHandler = (*TokenCtrler)(nil)
var _ ctrlertypes.IVotingPowerSource = (*TokenCtrler)(nil)
