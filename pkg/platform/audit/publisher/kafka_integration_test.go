//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"wmoracle/pkg/platform/audit"
	"wmoracle/pkg/platform/audit/publisher"
	"wmoracle/pkg/testutil/containers"
)

func TestKafkaPublishRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.GetManager().GetRedpanda(t).Broker
	topic := "wmoracle.verifications.test." + uuid.NewString()
	ctx := context.Background()

	kafka, err := publisher.NewKafka(ctx, []string{broker}, topic)
	require.NoError(t, err)
	defer kafka.Close()

	event := audit.Event{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC().Truncate(time.Millisecond),
		Aid:          "feedface",
		SchemeID:     "multi_factor_v1",
		EvidenceHash: "abcd",
		Outcome:      audit.OutcomeAccepted,
		Ok:           true,
		TriggerAcc:   0.93,
		FeatDist:     0.04,
		LogitStat:    -0.01,
		LatencyMS:    2,
	}
	require.NoError(t, kafka.Publish(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	fetches := consumer.PollFetches(pollCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, event.Aid, string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, event.ID, got.ID)
	require.Equal(t, event.Outcome, got.Outcome)
	require.Equal(t, event.TriggerAcc, got.TriggerAcc)
}
