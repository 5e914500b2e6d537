package nats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cristiansanchez/indice/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.INDEX_GENERATED", Subject(events.TypeIndexGenerated))
	assert.Equal(t, "events.LOGIN_FAILED", Subject(events.TypeLoginFailed))
}

func TestEnvelopeMatchesBusPayload(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	event := events.BaseEvent{
		Type:       events.TypeModulesEnriched,
		Data:       map[string]interface{}{"modules": 4, "failed": 1},
		OccurredAt: at,
	}

	data, err := events.Marshal(event)
	require.NoError(t, err)

	var env events.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, events.TypeModulesEnriched, env.Type)
	assert.Equal(t, "2026-03-01T10:30:00.000Z", env.OccurredAt)
	assert.EqualValues(t, 4, env.Data["modules"])
}
