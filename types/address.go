package types

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"github.com/rigochain/rigo-dao/types/xerrors"
)

const AddrSize = 20

type Address = abytes.HexBytes

func RandAddress() Address {
	return abytes.RandBytes(AddrSize)
}

func ZeroAddress() Address {
	return abytes.ZeroBytes(AddrSize)
}

func HexToAddress(_hex string) (Address, xerrors.XError) {
	if !ethcommon.IsHexAddress(_hex) {
		return nil, xerrors.NewOrdinary("error of address length: address length should be 20 bytes")
	}
	return ethcommon.HexToAddress(_hex).Bytes(), nil
}

// NameToAddress derives a deterministic address from a human readable name.
// It is used by scenarios and tests to refer to accounts by name.
func NameToAddress(name string) Address {
	h := ethcrypto.Keccak256([]byte(name))
	return h[len(h)-AddrSize:]
}

func IsZeroAddress(addr Address) bool {
	return abytes.Compare(addr, ZeroAddress()) == 0
}
