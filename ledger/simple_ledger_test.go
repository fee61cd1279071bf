package ledger

import (
	"encoding/json"
	"github.com/rigochain/rigo-dao/types/xerrors"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

type MyItem struct {
	Name  string `json:"name"`
	Value int32  `json:"value"`
}

func NewMyItem(nm string, val int32) *MyItem {
	return &MyItem{
		Name:  nm,
		Value: val,
	}
}

func (i *MyItem) Key() LedgerKey {
	return ToLedgerKey([]byte(i.Name))
}

func (i *MyItem) Encode() ([]byte, xerrors.XError) {
	if bz, err := json.Marshal(i); err != nil {
		return nil, xerrors.From(err)
	} else {
		return bz, nil
	}
}

func (i *MyItem) Decode(d []byte) xerrors.XError {
	if err := json.Unmarshal(d, i); err != nil {
		return xerrors.From(err)
	}
	return nil
}

var _ ILedgerItem = (*MyItem)(nil)

func newTestLedger(t *testing.T) *SimpleLedger[*MyItem] {
	ledger, xerr := NewSimpleLedger[*MyItem]("test_ledger", "memdb", "", 128, func() *MyItem { return &MyItem{} })
	require.NoError(t, xerr)
	t.Cleanup(func() { _ = ledger.Close() })
	return ledger
}

func TestSimpleLedger(t *testing.T) {
	ledger := newTestLedger(t)

	i0 := NewMyItem("i0", 0)
	i1 := NewMyItem("i1", 1)
	i2 := NewMyItem("i2", 2)

	require.NoError(t, ledger.Set(i0))
	require.NoError(t, ledger.Set(i1))

	// not committed yet
	item, xerr := ledger.Get(i0.Key())
	require.NoError(t, xerr)
	require.Equal(t, i0, item)

	item, xerr = ledger.Del(i1.Key())
	require.NoError(t, xerr)
	require.Equal(t, i1, item)
	require.False(t, ledger.Has(i1.Key()))

	// delete not exist
	item, xerr = ledger.Del(i2.Key())
	require.ErrorIs(t, xerr, xerrors.ErrNotFoundResult)
	require.Nil(t, item)

	_, ver, xerr := ledger.Commit()
	require.NoError(t, xerr)
	require.Equal(t, int64(1), ver)
	require.Equal(t, int64(1), ledger.Version())

	// read from tree
	item, xerr = ledger.Get(i0.Key())
	require.NoError(t, xerr)
	require.Equal(t, i0.Name, item.Name)
	require.Equal(t, i0.Value, item.Value)

	_, xerr = ledger.Get(i1.Key())
	require.ErrorIs(t, xerr, xerrors.ErrNotFoundResult)
}

func TestSimpleLedger_DelAndSetAgain(t *testing.T) {
	ledger := newTestLedger(t)

	i0 := NewMyItem("i0", 0)
	require.NoError(t, ledger.Set(i0))
	_, _, xerr := ledger.Commit()
	require.NoError(t, xerr)

	_, xerr = ledger.Del(i0.Key())
	require.NoError(t, xerr)
	require.NoError(t, ledger.Set(NewMyItem("i0", 100)))
	_, _, xerr = ledger.Commit()
	require.NoError(t, xerr)

	item, xerr := ledger.Get(i0.Key())
	require.NoError(t, xerr)
	require.Equal(t, int32(100), item.Value)
}

func TestSimpleLedger_Iterate(t *testing.T) {
	ledger := newTestLedger(t)

	for i, nm := range []string{"a", "b", "c"} {
		require.NoError(t, ledger.Set(NewMyItem(nm, int32(i))))
	}
	_, _, xerr := ledger.Commit()
	require.NoError(t, xerr)

	sum := int32(0)
	require.NoError(t, ledger.IterateReadAllItems(func(item *MyItem) xerrors.XError {
		sum += item.Value
		return nil
	}))
	require.Equal(t, int32(3), sum)

	stop := xerrors.NewOrdinary("stop")
	require.Equal(t, stop, ledger.IterateReadAllItems(func(item *MyItem) xerrors.XError {
		return stop
	}))
}

func TestSimpleLedger_Persistence(t *testing.T) {
	dbDir := filepath.Join(os.TempDir(), "simple-ledger-test")
	require.NoError(t, os.RemoveAll(dbDir))
	defer os.RemoveAll(dbDir)

	ledger, xerr := NewSimpleLedger[*MyItem]("persist", "goleveldb", dbDir, 128, func() *MyItem { return &MyItem{} })
	require.NoError(t, xerr)
	require.NoError(t, ledger.Set(NewMyItem("kept", 7)))
	_, _, xerr = ledger.Commit()
	require.NoError(t, xerr)
	require.NoError(t, ledger.Close())

	ledger, xerr = NewSimpleLedger[*MyItem]("persist", "goleveldb", dbDir, 128, func() *MyItem { return &MyItem{} })
	require.NoError(t, xerr)
	defer ledger.Close()

	item, xerr := ledger.Get(ToLedgerKey([]byte("kept")))
	require.NoError(t, xerr)
	require.Equal(t, int32(7), item.Value)
}
