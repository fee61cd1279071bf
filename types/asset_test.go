package types_test

import (
	"github.com/holiman/uint256"
	"github.com/rigochain/rigo-dao/types"
	"github.com/stretchr/testify/require"
	"math/rand"
	"strconv"
	"testing"
)

func TestConvertAsset(t *testing.T) {
	r := uint64(rand.Uint32())
	mtgr := types.ToMTGR(r)
	require.Equal(t, strconv.FormatUint(r, 10)+"000000", mtgr.Dec())

	tgr, rem := types.FromMTGR(mtgr)
	require.Equal(t, r, tgr)
	require.Equal(t, uint64(0), rem)

	tgr, rem = types.FromMTGR(new(uint256.Int).AddUint64(mtgr, 7))
	require.Equal(t, r, tgr)
	require.Equal(t, uint64(7), rem)
}

func TestAddress(t *testing.T) {
	addr := types.NameToAddress("alice")
	require.Len(t, addr, types.AddrSize)
	require.Equal(t, addr, types.NameToAddress("alice"))
	require.NotEqual(t, addr, types.NameToAddress("bob"))

	parsed, xerr := types.HexToAddress("0x" + addr.String())
	require.NoError(t, xerr)
	require.Equal(t, addr, parsed)

	_, xerr = types.HexToAddress("0x1234")
	require.Error(t, xerr)

	require.True(t, types.IsZeroAddress(types.ZeroAddress()))
	require.False(t, types.IsZeroAddress(types.RandAddress()))
}
