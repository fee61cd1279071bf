package genesis

import (
	"github.com/rigochain/rigo-dao/types/xerrors"
	tmjson "github.com/tendermint/tendermint/libs/json"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	tmtypes "github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"
)

func NewGenesisDoc(chainID string, appState *GenesisAppState) (*tmtypes.GenesisDoc, error) {
	appStateJsonBlob, err := tmjson.Marshal(appState)
	if err != nil {
		return nil, err
	}
	appHash, err := appState.Hash()
	if err != nil {
		return nil, err
	}

	return &tmtypes.GenesisDoc{
		ChainID:     chainID,
		GenesisTime: tmtime.Now(),
		ConsensusParams: &tmproto.ConsensusParams{
			Block:    tmtypes.DefaultBlockParams(),
			Evidence: tmtypes.DefaultEvidenceParams(),
			Validator: tmproto.ValidatorParams{
				PubKeyTypes: []string{tmtypes.ABCIPubKeyTypeSecp256k1},
			},
			Version: tmproto.VersionParams{
				AppVersion: 1,
			},
		},
		AppState: appStateJsonBlob,
		AppHash:  appHash[:],
	}, nil
}

// LoadGenesisAppState reads the genesis document at `file` and decodes its app state.
func LoadGenesisAppState(file string) (*GenesisAppState, *tmtypes.GenesisDoc, xerrors.XError) {
	genDoc, err := tmtypes.GenesisDocFromFile(file)
	if err != nil {
		return nil, nil, xerrors.ErrInitChain.Wrap(err)
	}

	appState := &GenesisAppState{}
	if err := tmjson.Unmarshal(genDoc.AppState, appState); err != nil {
		return nil, nil, xerrors.ErrInitChain.Wrap(err)
	}
	if xerr := appState.Validate(); xerr != nil {
		return nil, nil, xerr
	}
	return appState, genDoc, nil
}
