package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInitEventPipeline_NoBrokers(t *testing.T) {
	pipeline, err := initEventPipeline(DefaultConfig(), log.WithField("test", "kafka"))

	require.NoError(t, err)
	require.Nil(t, pipeline)
}

func TestInitEventPipeline_UnreachableBrokers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KafkaBrokers = []string{"127.0.0.1:1", "127.0.0.1:2"}

	pipeline, err := initEventPipeline(cfg, log.WithField("test", "kafka"))

	require.Error(t, err)
	require.Nil(t, pipeline)
}

func TestEventPipeline_CloseNil(t *testing.T) {
	var pipeline *eventPipeline
	require.NotPanics(t, func() {
		pipeline.close(log.WithField("test", "kafka"))
	})
}

func TestNewCheckoutService_WithoutPipeline(t *testing.T) {
	deps, err := initRuntimeDependencies(t.Context(), DefaultConfig(), log.WithField("test", "kafka"))
	require.NoError(t, err)
	t.Cleanup(func() { deps.close(log.WithField("test", "kafka")) })

	svc := newCheckoutService(deps, nil, log.WithField("test", "kafka"))
	require.NotNil(t, svc)
}
