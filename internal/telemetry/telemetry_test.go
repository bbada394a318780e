package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSampler(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantDrop bool
	}{
		{name: "disabled drops", cfg: Config{Enabled: false, SampleRatio: 1}, wantDrop: true},
		{name: "zero ratio drops", cfg: Config{Enabled: true, SampleRatio: 0}, wantDrop: true},
		{name: "full ratio records", cfg: Config{Enabled: true, SampleRatio: 1}, wantDrop: false},
		{name: "ratio above one is clamped", cfg: Config{Enabled: true, SampleRatio: 7}, wantDrop: false},
	}

	params := sdktrace.SamplingParameters{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := sampler(tt.cfg).ShouldSample(params).Decision
			assert.Equal(t, tt.wantDrop, decision == sdktrace.Drop)
		})
	}
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 0.5, clampRatio(0.5))
	assert.Equal(t, 1.0, clampRatio(2))
}

func TestSetup(t *testing.T) {
	runtime, err := Setup(Config{Enabled: true, SampleRatio: 0.25})
	require.NoError(t, err)
	require.NotNil(t, runtime.TracerProvider)
	assert.NoError(t, runtime.Shutdown(context.Background()))
}
