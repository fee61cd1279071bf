package gov

import (
	"fmt"
	"github.com/holiman/uint256"
	cfg "github.com/rigochain/rigo-dao/cmd/config"
	ctrlertypes "github.com/rigochain/rigo-dao/ctrlers/types"
	"github.com/rigochain/rigo-dao/types"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"github.com/rigochain/rigo-dao/types/crypto"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"sync"
	"testing"
	"time"
)

const day = 24 * time.Hour

var (
	t0 = time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	voterA = types.NameToAddress("A")
	voterB = types.NameToAddress("B")
	voterC = types.NameToAddress("C")
)

// mockPowerSource is a voting power source whose powers are set by tests.
type mockPowerSource struct {
	powers map[string]*uint256.Int
	supply *uint256.Int
	mtx    sync.RWMutex
}

func newMockPowerSource(supply uint64) *mockPowerSource {
	return &mockPowerSource{
		powers: make(map[string]*uint256.Int),
		supply: uint256.NewInt(supply),
	}
}

func (m *mockPowerSource) setPower(addr types.Address, power uint64) *mockPowerSource {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.powers[addr.String()] = uint256.NewInt(power)
	return m
}

func (m *mockPowerSource) PowerOf(addr types.Address) *uint256.Int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	if p, ok := m.powers[addr.String()]; ok {
		return p.Clone()
	}
	return uint256.NewInt(0)
}

func (m *mockPowerSource) TotalSupply() *uint256.Int {
	return m.supply.Clone()
}

var _ ctrlertypes.IVotingPowerSource = (*mockPowerSource)(nil)

// defaultPowerSource: supply 100, A 25, B 40, C 35.
func defaultPowerSource() *mockPowerSource {
	return newMockPowerSource(100).
		setPower(voterA, 25).
		setPower(voterB, 40).
		setPower(voterC, 35)
}

func newTestGovCtrler(t *testing.T, source ctrlertypes.IVotingPowerSource, opts ...Option) (*GovCtrler, *EventLog) {
	evtLog := NewEventLog()
	ctrler, xerr := NewGovCtrler(cfg.TestConfig(), source, log.NewNopLogger(), append([]Option{WithEventSink(evtLog)}, opts...)...)
	require.NoError(t, xerr)
	t.Cleanup(func() { _ = ctrler.Close() })
	return ctrler, evtLog
}

func propID(n int) abytes.HexBytes {
	return crypto.ProposalID([]byte(fmt.Sprintf("Item Sample %d", n)))
}

func uint256Of(n uint64) *uint256.Int {
	return uint256.NewInt(n)
}
