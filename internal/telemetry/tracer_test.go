package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerDisabled(t *testing.T) {
	tp, err := InitTracer(Config{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, DefaultOTLPEndpoint, cfg.OTLPEndpoint)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, 1.0, cfg.SamplingRate)
}

func TestConfigDefaultsPreserveExplicitValues(t *testing.T) {
	cfg := Config{
		ServiceName:  "tunegraph-staging",
		Environment:  "staging",
		OTLPEndpoint: "collector:4318",
		SamplingRate: 0.25,
	}.withDefaults()

	assert.Equal(t, "tunegraph-staging", cfg.ServiceName)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, 0.25, cfg.SamplingRate)
}
