package node

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	"github.com/rigochain/rigo-dao/cmd/version"
	"github.com/rigochain/rigo-dao/ctrlers/gov"
	"github.com/rigochain/rigo-dao/ctrlers/token"
	"github.com/rigochain/rigo-dao/genesis"
	"github.com/rigochain/rigo-dao/types/bytes"
	"github.com/rigochain/rigo-dao/types/crypto"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"github.com/tendermint/tendermint/libs/log"
	"sync"
	"time"
)

// DAOApp wires the token ledger as the voting power source of the governance controller.
type DAOApp struct {
	metaDB      *MetaDB
	tokenCtrler *token.TokenCtrler
	govCtrler   *gov.GovCtrler
	eventLog    *gov.EventLog

	rootConfig *cfg.Config

	logger log.Logger
	mtx    sync.Mutex
}

func NewDAOApp(config *cfg.Config, logger log.Logger) (*DAOApp, xerrors.XError) {
	metaDB, err := openMetaDB("rigo_dao_app", config.DBBackend, config.DBDir())
	if err != nil {
		return nil, xerrors.From(err)
	}
	if f := metaDB.StateFormat(); metaDB.LastHeight() > 0 && f != version.STATE_FORMAT {
		_ = metaDB.Close()
		return nil, xerrors.ErrInitChain.Wrapf("state format of db: %v, expected: %v", f, version.STATE_FORMAT)
	}

	tokenCtrler, xerr := token.NewTokenCtrler(config, logger)
	if xerr != nil {
		return nil, xerr
	}

	var reg prometheus.Registerer
	if config.MetricsEnabled {
		reg = prometheus.DefaultRegisterer
	}
	eventLog := gov.NewEventLog()
	govCtrler, xerr := gov.NewGovCtrler(config, tokenCtrler, logger,
		gov.WithEventSink(eventLog),
		gov.WithMetrics(gov.NewMetrics(reg)))
	if xerr != nil {
		return nil, xerr
	}

	return &DAOApp{
		metaDB:      metaDB,
		tokenCtrler: tokenCtrler,
		govCtrler:   govCtrler,
		eventLog:    eventLog,
		rootConfig:  config,
		logger:      logger.With("module", "rigo_DAOApp"),
	}, nil
}

func (app *DAOApp) Info() string {
	return fmt.Sprintf("version: %v, chainID: %v, height: %v, appHash: %v",
		version.String(), app.metaDB.ChainID(), app.metaDB.LastHeight(), bytes.HexBytes(app.metaDB.LastAppHash()))
}

// InitChain is allowed only before the first commit.
func (app *DAOApp) InitChain(chainID string, appState *genesis.GenesisAppState) ([]byte, xerrors.XError) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if chainID == "" {
		return nil, xerrors.ErrInitChain.Wrapf("there is no chain_id")
	}
	if app.metaDB.LastHeight() > 0 {
		return nil, xerrors.ErrInitChain.Wrapf("already initialized at height %v", app.metaDB.LastHeight())
	}
	if xerr := appState.Validate(); xerr != nil {
		return nil, xerr
	}

	appHash, err := appState.Hash()
	if err != nil {
		return nil, xerrors.ErrInitChain.Wrap(err)
	}

	// the power source first: the quorum depends on its total supply.
	if xerr := app.tokenCtrler.InitLedger(appState); xerr != nil {
		app.logger.Error("DAOApp", "error", xerr)
		return nil, xerr
	}
	if xerr := app.govCtrler.InitLedger(appState); xerr != nil {
		app.logger.Error("DAOApp", "error", xerr)
		return nil, xerr
	}

	app.rootConfig.ChainID = chainID
	if err := app.metaDB.PutChainID(chainID); err != nil {
		return nil, xerrors.From(err)
	}

	app.logger.Info("InitChain", "chainID", chainID, "appHash", bytes.HexBytes(appHash))
	return appHash, nil
}

// Commit saves every ledger as a new version and returns the app hash.
func (app *DAOApp) Commit(now time.Time) ([]byte, int64, xerrors.XError) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	appHash0, ver0, xerr := app.govCtrler.Commit()
	if xerr != nil {
		return nil, 0, xerr
	}
	appHash1, ver1, xerr := app.tokenCtrler.Commit()
	if xerr != nil {
		return nil, 0, xerr
	}
	if ver0 != ver1 {
		return nil, 0, xerrors.ErrCommit.Wrapf("not same versions: gov: %v, token: %v", ver0, ver1)
	}

	appHash := crypto.DefaultHash(appHash0, appHash1)
	if err := app.metaDB.PutLastAppHash(appHash); err != nil {
		return nil, 0, xerrors.ErrCommit.Wrap(err)
	}
	if err := app.metaDB.PutLastTime(now); err != nil {
		return nil, 0, xerrors.ErrCommit.Wrap(err)
	}
	if err := app.metaDB.PutStateFormat(version.STATE_FORMAT); err != nil {
		return nil, 0, xerrors.ErrCommit.Wrap(err)
	}
	if err := app.metaDB.PutLastHeight(ver0); err != nil {
		return nil, 0, xerrors.ErrCommit.Wrap(err)
	}

	app.logger.Debug("DAOApp::Commit", "height", ver0, "appHash", bytes.HexBytes(appHash))
	return appHash, ver0, nil
}

func (app *DAOApp) LastHeight() int64 {
	return app.metaDB.LastHeight()
}

func (app *DAOApp) LastTime() time.Time {
	return app.metaDB.LastTime()
}

func (app *DAOApp) Token() *token.TokenCtrler {
	return app.tokenCtrler
}

func (app *DAOApp) Gov() *gov.GovCtrler {
	return app.govCtrler
}

func (app *DAOApp) Events() *gov.EventLog {
	return app.eventLog
}

func (app *DAOApp) Stop() error {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if err := app.govCtrler.Close(); err != nil {
		return err
	}
	if err := app.tokenCtrler.Close(); err != nil {
		return err
	}
	if err := app.metaDB.Close(); err != nil {
		return err
	}
	return nil
}
