package crypto

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"hash"
)

const ProposalIDSize = 32

func DefaultHash(datas ...[]byte) []byte {
	hasher := DefaultHasher()
	for _, bz := range datas {
		hasher.Write(bz)
	}
	return hasher.Sum(nil)
}

func DefaultHasher() hash.Hash {
	return ethcrypto.NewKeccakState()
}

func DefaultHasherName() string {
	return "keccak256"
}

// ProposalID returns the content identifier of a proposal.
func ProposalID(content []byte) abytes.HexBytes {
	return DefaultHash(content)
}
