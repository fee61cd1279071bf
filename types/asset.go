package types

import (
	"github.com/holiman/uint256"
)

const (
	ASSET_DECIMAL int16  = 6
	SYM_UNIT      string = "mtgr"
	SYM_CURRENCY  string = "TGR"
	MTGR                 = "1"
	TGR                  = "1000000"          // 10^6 mtgr
	KTGR                 = "1000000000"       // 10^9 mtgr
	MegaTGR              = "1000000000000"    // 10^12 mtgr
	GigaTGR              = "1000000000000000" // 10^15 mtgr
)

var (
	TGRmtgr = uint256.MustFromDecimal(TGR)
)

// ToMTGR converts whole tokens to the smallest unit.
func ToMTGR(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), TGRmtgr)
}

// FromMTGR returns whole tokens and the remainder in the smallest unit.
func FromMTGR(mtgr *uint256.Int) (uint64, uint64) {
	r := new(uint256.Int)
	q, r := new(uint256.Int).DivMod(mtgr, TGRmtgr, r)
	return q.Uint64(), r.Uint64()
}
