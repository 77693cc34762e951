package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/mocks"
	"github.com/feral-file/kuronje-indexer/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:             "nats://localhost:4222",
		StreamName:      "KURONJE_EVENTS",
		Collection:      "genesis",
		MaxReconnects:   3,
		ReconnectWait:   time.Second,
		ConnectionName:  "kuronje-indexer-test",
		DuplicateWindow: 2 * time.Minute,
	}
}

type testPublisherMocks struct {
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupMocks(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func (tm *testPublisherMocks) expectConnect() {
	tm.natsJS.EXPECT().
		Connect("nats://localhost:4222", gomock.Any()).
		Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().
		EnsureStream(gomock.Any(), natsjs.StreamConfig{
			Name:       "KURONJE_EVENTS",
			Subjects:   []string{"events.genesis.>"},
			Duplicates: 2 * time.Minute,
		}).
		Return(nil)
	tm.conn.EXPECT().ConnectedUrl().Return("nats://localhost:4222").AnyTimes()
}

func TestNewPublisher_ConnectError(t *testing.T) {
	tm := setupMocks(t)
	tm.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, nats.ErrNoServers)

	pub, err := jetstream.NewPublisher(context.Background(), testConfig(), tm.natsJS)
	assert.ErrorIs(t, err, nats.ErrNoServers)
	assert.Nil(t, pub)
}

func TestNewPublisher_EnsureStreamError(t *testing.T) {
	tm := setupMocks(t)
	tm.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().
		EnsureStream(gomock.Any(), gomock.Any()).
		Return(errors.New("insufficient resources"))
	tm.conn.EXPECT().Close()

	pub, err := jetstream.NewPublisher(context.Background(), testConfig(), tm.natsJS)
	assert.ErrorContains(t, err, "failed to ensure stream KURONJE_EVENTS")
	assert.Nil(t, pub)
}

func TestPublishEvent(t *testing.T) {
	blockTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	meta := domain.EventMeta{
		ID:        "0xabc-3",
		Position:  domain.Position{BlockNumber: 120, LogIndex: 3},
		TxHash:    "0xabc",
		BlockHash: "0xdef",
		BlockTime: blockTime,
		Raw:       []byte(`{"ignored":true}`),
	}

	tests := []struct {
		name    string
		event   domain.Event
		subject string
		fields  map[string]any
	}{
		{
			name: "transfer",
			event: domain.TransferEvent{
				EventMeta: meta,
				From:      "0x00000000000000000000000000000000000000A1",
				To:        "0x00000000000000000000000000000000000000b2",
				TokenID:   7,
			},
			subject: "events.genesis.transfer",
			fields: map[string]any{
				"from":     "0x00000000000000000000000000000000000000A1",
				"to":       "0x00000000000000000000000000000000000000b2",
				"token_id": float64(7),
			},
		},
		{
			name: "mint",
			event: domain.MintEvent{
				EventMeta:  meta,
				To:         "0x00000000000000000000000000000000000000b2",
				TokenID:    8,
				MetadataID: 100,
				MintedAt:   blockTime,
			},
			subject: "events.genesis.mint",
			fields: map[string]any{
				"token_id":    float64(8),
				"metadata_id": float64(100),
				"minted_at":   "2026-03-01T12:00:00Z",
			},
		},
		{
			name: "reveal",
			event: domain.RevealEvent{
				EventMeta:  meta,
				TokenID:    8,
				MetadataID: 101,
				Revealer:   "0x00000000000000000000000000000000000000A1",
				RevealedAt: blockTime,
			},
			subject: "events.genesis.reveal",
			fields: map[string]any{
				"metadata_id": float64(101),
				"revealer":    "0x00000000000000000000000000000000000000A1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupMocks(t)
			tm.expectConnect()

			pub, err := jetstream.NewPublisher(context.Background(), testConfig(), tm.natsJS)
			require.NoError(t, err)

			var payload []byte
			tm.js.EXPECT().
				Publish(gomock.Any(), tt.subject, gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
					payload = data
					assert.Len(t, opts, 1)
					return &natsjs.PubAck{Stream: "KURONJE_EVENTS", Sequence: 1}, nil
				})

			err = pub.PublishEvent(context.Background(), tt.event)
			require.NoError(t, err)

			var msg map[string]any
			require.NoError(t, json.Unmarshal(payload, &msg))
			assert.Equal(t, string(tt.event.Kind()), msg["kind"])
			assert.Equal(t, "genesis", msg["collection"])

			event, ok := msg["event"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "0xabc-3", event["id"])
			assert.Equal(t, "0xabc", event["tx_hash"])
			assert.NotContains(t, event, "Raw")
			for k, v := range tt.fields {
				assert.Equal(t, v, event[k], k)
			}
		})
	}
}

func TestPublishEvent_Error(t *testing.T) {
	tm := setupMocks(t)
	tm.expectConnect()

	pub, err := jetstream.NewPublisher(context.Background(), testConfig(), tm.natsJS)
	require.NoError(t, err)

	tm.js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, natsjs.ErrNoStreamResponse)

	err = pub.PublishEvent(context.Background(), domain.TransferEvent{
		EventMeta: domain.EventMeta{ID: "0xabc-0"},
		TokenID:   1,
	})
	assert.ErrorIs(t, err, natsjs.ErrNoStreamResponse)
}

func TestClose(t *testing.T) {
	t.Run("drains connection", func(t *testing.T) {
		tm := setupMocks(t)
		tm.expectConnect()

		pub, err := jetstream.NewPublisher(context.Background(), testConfig(), tm.natsJS)
		require.NoError(t, err)

		tm.conn.EXPECT().Drain().Return(nil)
		pub.Close()
	})

	t.Run("closes connection when drain fails", func(t *testing.T) {
		tm := setupMocks(t)
		tm.expectConnect()

		pub, err := jetstream.NewPublisher(context.Background(), testConfig(), tm.natsJS)
		require.NoError(t, err)

		gomock.InOrder(
			tm.conn.EXPECT().Drain().Return(nats.ErrConnectionClosed),
			tm.conn.EXPECT().Close(),
		)
		pub.Close()
	})
}
