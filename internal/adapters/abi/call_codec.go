package abi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// CallCodecAdapter encodes delegated calls against the known contract ABIs
type CallCodecAdapter struct{}

// NewCallCodecAdapter creates a new CallCodecAdapter
func NewCallCodecAdapter() *CallCodecAdapter {
	return &CallCodecAdapter{}
}

func (CallCodecAdapter) EncodeCall(signature string, args ...string) ([]byte, error) {
	return EncodeCall(signature, args...)
}

// EncodeMint builds MinionNFT mint(to) calldata
func (CallCodecAdapter) EncodeMint(to common.Address) ([]byte, error) {
	return Pack(MinionNFT, "mint", to)
}

// DecodeTokenID unpacks the return data of mint
func (CallCodecAdapter) DecodeTokenID(ret []byte) (*big.Int, error) {
	values, err := MinionNFT.Unpack("mint", ret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mint result: %w", err)
	}
	id, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected mint result %T", values[0])
	}
	return id, nil
}

// Describe renders calldata against the collectible ABI, then ERC20
func (CallCodecAdapter) Describe(data []byte) string {
	if _, _, err := DecodeCall(MinionNFT, data); err == nil {
		return Describe(MinionNFT, data)
	}
	return Describe(ERC20, data)
}

var _ usecase.CallCodec = (*CallCodecAdapter)(nil)
