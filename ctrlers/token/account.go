package token

import (
	"encoding/json"
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/ledger"
	"github.com/rigochain/rigo-dao/types"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"sync"
)

// Account holds the balance of an address and the voting power delegated to it.
// Delegatee is nil until the account delegates.
type Account struct {
	Address   types.Address `json:"address"`
	Balance   *uint256.Int  `json:"balance"`
	Delegatee types.Address `json:"delegatee,omitempty"`
	Votes     *uint256.Int  `json:"votes"`

	mtx sync.RWMutex
}

func NewAccount(addr types.Address) *Account {
	return &Account{
		Address: addr,
		Balance: uint256.NewInt(0),
		Votes:   uint256.NewInt(0),
	}
}

func (acct *Account) Key() ledger.LedgerKey {
	acct.mtx.RLock()
	defer acct.mtx.RUnlock()

	return ledger.ToLedgerKey(acct.Address)
}

func (acct *Account) Encode() ([]byte, xerrors.XError) {
	acct.mtx.RLock()
	defer acct.mtx.RUnlock()

	if bz, err := json.Marshal(acct); err != nil {
		return bz, xerrors.From(err)
	} else {
		return bz, nil
	}
}

func (acct *Account) Decode(bz []byte) xerrors.XError {
	acct.mtx.Lock()
	defer acct.mtx.Unlock()

	if err := json.Unmarshal(bz, acct); err != nil {
		return xerrors.From(err)
	}
	return nil
}

var _ ledger.ILedgerItem = (*Account)(nil)

func (acct *Account) GetAddress() types.Address {
	acct.mtx.RLock()
	defer acct.mtx.RUnlock()

	return acct.Address
}

func (acct *Account) GetBalance() *uint256.Int {
	acct.mtx.RLock()
	defer acct.mtx.RUnlock()

	return acct.Balance.Clone()
}

func (acct *Account) GetVotes() *uint256.Int {
	acct.mtx.RLock()
	defer acct.mtx.RUnlock()

	return acct.Votes.Clone()
}

func (acct *Account) GetDelegatee() types.Address {
	acct.mtx.RLock()
	defer acct.mtx.RUnlock()

	return acct.Delegatee
}

func (acct *Account) AddBalance(amt *uint256.Int) xerrors.XError {
	acct.mtx.Lock()
	defer acct.mtx.Unlock()

	if _, overflow := acct.Balance.AddOverflow(acct.Balance, amt); overflow {
		return xerrors.ErrOverflow
	}
	return nil
}

func (acct *Account) SubBalance(amt *uint256.Int) xerrors.XError {
	acct.mtx.Lock()
	defer acct.mtx.Unlock()

	if acct.Balance.Lt(amt) {
		return xerrors.ErrInsufficientFund.Wrapf("balance: %v, amount: %v", acct.Balance.Dec(), amt.Dec())
	}
	acct.Balance.Sub(acct.Balance, amt)
	return nil
}

func (acct *Account) AddVotes(amt *uint256.Int) xerrors.XError {
	acct.mtx.Lock()
	defer acct.mtx.Unlock()

	if _, overflow := acct.Votes.AddOverflow(acct.Votes, amt); overflow {
		return xerrors.ErrOverflow
	}
	return nil
}

func (acct *Account) SubVotes(amt *uint256.Int) xerrors.XError {
	acct.mtx.Lock()
	defer acct.mtx.Unlock()

	if acct.Votes.Lt(amt) {
		return xerrors.ErrNegAmount.Wrapf("votes: %v, amount: %v", acct.Votes.Dec(), amt.Dec())
	}
	acct.Votes.Sub(acct.Votes, amt)
	return nil
}

func (acct *Account) SetDelegatee(addr types.Address) {
	acct.mtx.Lock()
	defer acct.mtx.Unlock()

	acct.Delegatee = addr
}
