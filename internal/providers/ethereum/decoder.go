package ethereum

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/kuronje-indexer/internal/domain"
)

// CollectionABI describes the events emitted by the collection contract
const CollectionABI = `[
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"tokenId","type":"uint256","indexed":true}]},
	{"type":"event","name":"TokenMinted","anonymous":false,"inputs":[
		{"name":"to","type":"address","indexed":true},
		{"name":"tokenId","type":"uint256","indexed":true},
		{"name":"metadataId","type":"uint256","indexed":false},
		{"name":"timestamp","type":"uint256","indexed":false}]},
	{"type":"event","name":"TokenRevealed","anonymous":false,"inputs":[
		{"name":"tokenId","type":"uint256","indexed":true},
		{"name":"metadataId","type":"uint256","indexed":false},
		{"name":"revealer","type":"address","indexed":true},
		{"name":"timestamp","type":"uint256","indexed":false}]}
]`

const (
	eventTransfer      = "Transfer"
	eventTokenMinted   = "TokenMinted"
	eventTokenRevealed = "TokenRevealed"
)

// Decoder turns raw contract logs into domain events. It is pure and stateless.
//
//go:generate mockgen -source=decoder.go -destination=../../mocks/decoder.go -package=mocks -mock_names=Decoder=MockDecoder
type Decoder interface {
	// Decode returns exactly one domain event, domain.ErrUnrecognizedEvent for logs this
	// contract does not describe, or domain.ErrMalformedEvent for undecodable known logs
	Decode(log domain.RawLog) (domain.Event, error)

	// Topics returns the event signatures the decoder understands, for log filters
	Topics() []common.Hash
}

type decoder struct {
	contract common.Address
	abi      abi.ABI
}

// NewDecoder creates a decoder for logs emitted by contractAddress
func NewDecoder(contractAddress string) (Decoder, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address: %q", contractAddress)
	}

	parsed, err := abi.JSON(strings.NewReader(CollectionABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse collection abi: %w", err)
	}

	return &decoder{
		contract: common.HexToAddress(contractAddress),
		abi:      parsed,
	}, nil
}

// Topics returns the topic0 of every supported event
func (d *decoder) Topics() []common.Hash {
	return []common.Hash{
		d.abi.Events[eventTransfer].ID,
		d.abi.Events[eventTokenMinted].ID,
		d.abi.Events[eventTokenRevealed].ID,
	}
}

// Decode decodes a single log
func (d *decoder) Decode(log domain.RawLog) (domain.Event, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("%w: log %s has no topics", domain.ErrUnrecognizedEvent, log.EventID())
	}
	if log.Address != d.contract {
		return nil, fmt.Errorf("%w: log %s emitted by %s", domain.ErrUnrecognizedEvent, log.EventID(), log.Address.Hex())
	}

	event, err := d.abi.EventByID(log.Topics[0])
	if err != nil {
		return nil, fmt.Errorf("%w: unknown topic %s", domain.ErrUnrecognizedEvent, log.Topics[0].Hex())
	}

	values, err := d.unpack(event, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrMalformedEvent, event.Name, log.EventID(), err)
	}

	meta, err := buildMeta(log)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrMalformedEvent, event.Name, log.EventID(), err)
	}

	var decoded domain.Event
	switch event.Name {
	case eventTransfer:
		decoded, err = decodeTransfer(meta, values)
	case eventTokenMinted:
		decoded, err = decodeMint(meta, values)
	case eventTokenRevealed:
		decoded, err = decodeReveal(meta, values)
	default:
		return nil, fmt.Errorf("%w: unsupported event %s", domain.ErrUnrecognizedEvent, event.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrMalformedEvent, event.Name, log.EventID(), err)
	}

	return decoded, nil
}

// unpack reads indexed arguments from topics and the rest from data
func (d *decoder) unpack(event *abi.Event, log domain.RawLog) (map[string]interface{}, error) {
	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("expected %d indexed topics, got %d", len(indexed), len(log.Topics)-1)
	}

	values := make(map[string]interface{}, len(event.Inputs))
	if err := abi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse topics: %w", err)
	}
	if err := d.abi.UnpackIntoMap(values, event.Name, log.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack data: %w", err)
	}

	return values, nil
}

func buildMeta(log domain.RawLog) (domain.EventMeta, error) {
	raw, err := json.Marshal(&types.Log{
		Address:     log.Address,
		Topics:      log.Topics,
		Data:        log.Data,
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
		BlockHash:   log.BlockHash,
		Index:       log.LogIndex,
		Removed:     log.Removed,
	})
	if err != nil {
		return domain.EventMeta{}, fmt.Errorf("failed to encode raw log: %w", err)
	}

	return domain.EventMeta{
		ID:        log.EventID(),
		Position:  log.Position(),
		TxHash:    log.TxHash.Hex(),
		BlockHash: log.BlockHash.Hex(),
		BlockTime: log.BlockTime.UTC(),
		Raw:       raw,
	}, nil
}

func decodeTransfer(meta domain.EventMeta, values map[string]interface{}) (domain.Event, error) {
	from, err := addressArg(values, "from")
	if err != nil {
		return nil, err
	}
	to, err := addressArg(values, "to")
	if err != nil {
		return nil, err
	}
	tokenID, err := idArg(values, "tokenId")
	if err != nil {
		return nil, err
	}

	return domain.TransferEvent{
		EventMeta: meta,
		From:      from,
		To:        to,
		TokenID:   tokenID,
	}, nil
}

func decodeMint(meta domain.EventMeta, values map[string]interface{}) (domain.Event, error) {
	to, err := addressArg(values, "to")
	if err != nil {
		return nil, err
	}
	tokenID, err := idArg(values, "tokenId")
	if err != nil {
		return nil, err
	}
	metadataID, err := idArg(values, "metadataId")
	if err != nil {
		return nil, err
	}
	mintedAt, err := timeArg(values, "timestamp")
	if err != nil {
		return nil, err
	}

	return domain.MintEvent{
		EventMeta:  meta,
		To:         to,
		TokenID:    tokenID,
		MetadataID: metadataID,
		MintedAt:   mintedAt,
	}, nil
}

func decodeReveal(meta domain.EventMeta, values map[string]interface{}) (domain.Event, error) {
	tokenID, err := idArg(values, "tokenId")
	if err != nil {
		return nil, err
	}
	metadataID, err := idArg(values, "metadataId")
	if err != nil {
		return nil, err
	}
	revealer, err := addressArg(values, "revealer")
	if err != nil {
		return nil, err
	}
	revealedAt, err := timeArg(values, "timestamp")
	if err != nil {
		return nil, err
	}

	return domain.RevealEvent{
		EventMeta:  meta,
		TokenID:    tokenID,
		MetadataID: metadataID,
		Revealer:   revealer,
		RevealedAt: revealedAt,
	}, nil
}

func addressArg(values map[string]interface{}, name string) (string, error) {
	addr, ok := values[name].(common.Address)
	if !ok {
		return "", fmt.Errorf("argument %s is not an address", name)
	}
	return addr.Hex(), nil
}

// idArg reads a uint256 id. Ids are stored in signed 64-bit columns, so larger values are rejected.
func idArg(values map[string]interface{}, name string) (uint64, error) {
	v, ok := values[name].(*big.Int)
	if !ok || v == nil {
		return 0, fmt.Errorf("argument %s is not an integer", name)
	}
	if v.Sign() < 0 || !v.IsUint64() || v.Uint64() > math.MaxInt64 {
		return 0, fmt.Errorf("argument %s=%s is out of range", name, v.String())
	}
	return v.Uint64(), nil
}

func timeArg(values map[string]interface{}, name string) (time.Time, error) {
	seconds, err := idArg(values, name)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(seconds), 0).UTC(), nil
}
