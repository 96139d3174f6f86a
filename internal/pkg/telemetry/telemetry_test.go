package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "site-core"}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestResource(t *testing.T) {
	res := Resource(Config{ServiceName: "site-core", Environment: "production"})
	v, ok := res.Set().Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "site-core", v.AsString())
	v, ok = res.Set().Value(attribute.Key("deployment.environment"))
	require.True(t, ok)
	assert.Equal(t, "production", v.AsString())
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, ratio(0))
	assert.Equal(t, 1.0, ratio(3))
	assert.Equal(t, 0.25, ratio(0.25))
}
