package genesis

import (
	"github.com/holiman/uint256"
	ctrlertypes "github.com/rigochain/rigo-dao/ctrlers/types"
	"github.com/rigochain/rigo-dao/types/crypto"
	"github.com/rigochain/rigo-dao/types/xerrors"
)

type GenesisAppState struct {
	AssetHolders []*GenesisAssetHolder `json:"assetHolders"`
	Delegations  []*GenesisDelegation  `json:"delegations,omitempty"`
	GovParams    *ctrlertypes.GovParams `json:"govParams"`
}

func DefaultGenesisAppState(holders ...*GenesisAssetHolder) *GenesisAppState {
	return &GenesisAppState{
		AssetHolders: holders,
		GovParams:    ctrlertypes.DefaultGovParams(),
	}
}

func (ga *GenesisAppState) Hash() ([]byte, error) {
	hasher := crypto.DefaultHasher()
	if bz, err := ga.GovParams.Encode(); err != nil {
		return nil, err
	} else if _, err := hasher.Write(bz); err != nil {
		return nil, err
	} else {
		for _, h := range ga.AssetHolders {
			if _, err := hasher.Write(h.Hash()); err != nil {
				return nil, err
			}
		}
		for _, d := range ga.Delegations {
			if _, err := hasher.Write(d.Hash()); err != nil {
				return nil, err
			}
		}
	}
	return hasher.Sum(nil), nil
}

// TotalSupply returns the sum of all genesis balances.
func (ga *GenesisAppState) TotalSupply() (*uint256.Int, xerrors.XError) {
	sum := uint256.NewInt(0)
	for _, h := range ga.AssetHolders {
		if _, overflow := sum.AddOverflow(sum, h.Balance); overflow {
			return nil, xerrors.ErrOverflow.Wrapf("total supply of genesis")
		}
	}
	return sum, nil
}

func (ga *GenesisAppState) Validate() xerrors.XError {
	if ga.GovParams == nil {
		return xerrors.ErrInitChain.Wrapf("genesis has no govParams")
	}
	if xerr := ga.GovParams.Validate(); xerr != nil {
		return xerr
	}

	holders := make(map[string]struct{}, len(ga.AssetHolders))
	for _, h := range ga.AssetHolders {
		if h.Balance == nil {
			return xerrors.ErrInitChain.Wrapf("holder %v has no balance", h.Address)
		}
		if _, ok := holders[h.Address.String()]; ok {
			return xerrors.ErrInitChain.Wrapf("duplicated holder: %v", h.Address)
		}
		holders[h.Address.String()] = struct{}{}
	}
	for _, d := range ga.Delegations {
		if _, ok := holders[d.Delegator.String()]; !ok {
			return xerrors.ErrInitChain.Wrapf("delegator %v is not a holder", d.Delegator)
		}
	}

	if _, xerr := ga.TotalSupply(); xerr != nil {
		return xerr
	}
	return nil
}
