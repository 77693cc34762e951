package ethereum

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/kuronje-indexer/internal/domain"
)

const testContract = "0x5C1A0CC6DAdf4d0fB31425461df35Ba80fCBc110"

var (
	testOwner    = common.HexToAddress("0xa11ce0000000000000000000000000000000a11c")
	testReceiver = common.HexToAddress("0xb0b000000000000000000000000000000000b0b0")
	testTxHash   = common.HexToHash("0xABCDEF0000000000000000000000000000000000000000000000000000000001")
	testBlock    = common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000b10c1")
	testTime     = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func testABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(CollectionABI))
	require.NoError(t, err)
	return parsed
}

func newTestDecoder(t *testing.T) Decoder {
	t.Helper()
	d, err := NewDecoder(testContract)
	require.NoError(t, err)
	return d
}

func baseLog(topics []common.Hash, data []byte) domain.RawLog {
	return domain.RawLog{
		Address:     common.HexToAddress(testContract),
		Topics:      topics,
		Data:        data,
		BlockNumber: 1200,
		BlockHash:   testBlock,
		TxHash:      testTxHash,
		LogIndex:    3,
		BlockTime:   testTime,
	}
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func transferLog(t *testing.T, from, to common.Address, tokenID *big.Int) domain.RawLog {
	parsed := testABI(t)
	return baseLog([]common.Hash{
		parsed.Events["Transfer"].ID,
		addressTopic(from),
		addressTopic(to),
		common.BigToHash(tokenID),
	}, nil)
}

func mintLog(t *testing.T, to common.Address, tokenID, metadataID, timestamp *big.Int) domain.RawLog {
	parsed := testABI(t)
	data, err := parsed.Events["TokenMinted"].Inputs.NonIndexed().Pack(metadataID, timestamp)
	require.NoError(t, err)
	return baseLog([]common.Hash{
		parsed.Events["TokenMinted"].ID,
		addressTopic(to),
		common.BigToHash(tokenID),
	}, data)
}

func revealLog(t *testing.T, tokenID *big.Int, revealer common.Address, metadataID, timestamp *big.Int) domain.RawLog {
	parsed := testABI(t)
	data, err := parsed.Events["TokenRevealed"].Inputs.NonIndexed().Pack(metadataID, timestamp)
	require.NoError(t, err)
	return baseLog([]common.Hash{
		parsed.Events["TokenRevealed"].ID,
		common.BigToHash(tokenID),
		addressTopic(revealer),
	}, data)
}

func TestNewDecoder_InvalidAddress(t *testing.T) {
	_, err := NewDecoder("not-an-address")
	assert.Error(t, err)
}

func TestDecoder_Topics(t *testing.T) {
	d := newTestDecoder(t)
	topics := d.Topics()
	require.Len(t, topics, 3)
	assert.Equal(t, crypto.Keccak256Hash([]byte(domain.TRANSFER_EVENT_SIGNATURE)), topics[0])
	assert.Equal(t, crypto.Keccak256Hash([]byte(domain.TOKEN_MINTED_EVENT_SIGNATURE)), topics[1])
	assert.Equal(t, crypto.Keccak256Hash([]byte(domain.TOKEN_REVEALED_EVENT_SIGNATURE)), topics[2])
}

func TestDecoder_Transfer(t *testing.T) {
	d := newTestDecoder(t)
	log := transferLog(t, testOwner, testReceiver, big.NewInt(42))

	event, err := d.Decode(log)
	require.NoError(t, err)

	transfer, ok := event.(domain.TransferEvent)
	require.True(t, ok)
	assert.Equal(t, domain.EventKindTransfer, transfer.Kind())
	assert.Equal(t, testOwner.Hex(), transfer.From)
	assert.Equal(t, testReceiver.Hex(), transfer.To)
	assert.Equal(t, uint64(42), transfer.TokenID)

	meta := transfer.Meta()
	assert.Equal(t, strings.ToLower(testTxHash.Hex())+"-3", meta.ID)
	assert.Equal(t, domain.Position{BlockNumber: 1200, LogIndex: 3}, meta.Position)
	assert.Equal(t, testTxHash.Hex(), meta.TxHash)
	assert.Equal(t, testBlock.Hex(), meta.BlockHash)
	assert.True(t, testTime.Equal(meta.BlockTime))

	var raw types.Log
	require.NoError(t, json.Unmarshal(meta.Raw, &raw))
	assert.Equal(t, log.Topics, raw.Topics)
	assert.Equal(t, uint(3), raw.Index)
}

func TestDecoder_TransferFromZero(t *testing.T) {
	d := newTestDecoder(t)
	event, err := d.Decode(transferLog(t, common.Address{}, testReceiver, big.NewInt(1)))
	require.NoError(t, err)

	transfer := event.(domain.TransferEvent)
	assert.True(t, domain.IsZeroAddress(transfer.From))
}

func TestDecoder_Mint(t *testing.T) {
	d := newTestDecoder(t)
	event, err := d.Decode(mintLog(t, testOwner, big.NewInt(7), big.NewInt(900), big.NewInt(testTime.Unix())))
	require.NoError(t, err)

	mint, ok := event.(domain.MintEvent)
	require.True(t, ok)
	assert.Equal(t, domain.EventKindMint, mint.Kind())
	assert.Equal(t, testOwner.Hex(), mint.To)
	assert.Equal(t, uint64(7), mint.TokenID)
	assert.Equal(t, uint64(900), mint.MetadataID)
	assert.True(t, testTime.Equal(mint.MintedAt))
}

func TestDecoder_Reveal(t *testing.T) {
	d := newTestDecoder(t)
	event, err := d.Decode(revealLog(t, big.NewInt(7), testReceiver, big.NewInt(901), big.NewInt(testTime.Unix())))
	require.NoError(t, err)

	reveal, ok := event.(domain.RevealEvent)
	require.True(t, ok)
	assert.Equal(t, domain.EventKindReveal, reveal.Kind())
	assert.Equal(t, uint64(7), reveal.TokenID)
	assert.Equal(t, uint64(901), reveal.MetadataID)
	assert.Equal(t, testReceiver.Hex(), reveal.Revealer)
	assert.True(t, testTime.Equal(reveal.RevealedAt))
}

func TestDecoder_Unrecognized(t *testing.T) {
	d := newTestDecoder(t)

	otherContract := transferLog(t, testOwner, testReceiver, big.NewInt(1))
	otherContract.Address = common.HexToAddress("0x0000000000000000000000000000000000000bad")

	unknownTopic := transferLog(t, testOwner, testReceiver, big.NewInt(1))
	unknownTopic.Topics[0] = common.HexToHash("0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925")

	tests := []struct {
		name string
		log  domain.RawLog
	}{
		{name: "empty topics", log: baseLog(nil, nil)},
		{name: "other contract", log: otherContract},
		{name: "unknown topic", log: unknownTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := d.Decode(tt.log)
			assert.Nil(t, event)
			assert.ErrorIs(t, err, domain.ErrUnrecognizedEvent)
		})
	}
}

func TestDecoder_Malformed(t *testing.T) {
	d := newTestDecoder(t)

	missingTopic := transferLog(t, testOwner, testReceiver, big.NewInt(1))
	missingTopic.Topics = missingTopic.Topics[:3]

	extraTopic := transferLog(t, testOwner, testReceiver, big.NewInt(1))
	extraTopic.Topics = append(extraTopic.Topics, common.Hash{})

	truncatedData := mintLog(t, testOwner, big.NewInt(1), big.NewInt(2), big.NewInt(3))
	truncatedData.Data = truncatedData.Data[:40]

	hugeID := new(big.Int).Add(new(big.Int).SetUint64(math.MaxInt64), big.NewInt(1))

	tests := []struct {
		name string
		log  domain.RawLog
	}{
		{name: "missing indexed topic", log: missingTopic},
		{name: "extra indexed topic", log: extraTopic},
		{name: "truncated data", log: truncatedData},
		{name: "token id out of range", log: transferLog(t, testOwner, testReceiver, hugeID)},
		{name: "metadata id out of range", log: revealLog(t, big.NewInt(1), testReceiver, hugeID, big.NewInt(0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := d.Decode(tt.log)
			assert.Nil(t, event)
			assert.ErrorIs(t, err, domain.ErrMalformedEvent)
		})
	}
}

func TestDecoder_MaxTokenID(t *testing.T) {
	d := newTestDecoder(t)
	event, err := d.Decode(transferLog(t, testOwner, testReceiver, new(big.Int).SetUint64(math.MaxInt64)))
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxInt64), event.(domain.TransferEvent).TokenID)
}

func TestDecoder_Deterministic(t *testing.T) {
	d := newTestDecoder(t)
	log := mintLog(t, testOwner, big.NewInt(5), big.NewInt(6), big.NewInt(7))

	first, err := d.Decode(log)
	require.NoError(t, err)
	second, err := d.Decode(log)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
