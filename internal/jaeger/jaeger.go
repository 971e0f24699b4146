package jaeger

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/exporters/jaeger"
)

// DefaultEndpoint is the collector endpoint used when tracing.jaeger.endpoint is unset.
const DefaultEndpoint = "http://jaeger:14268/api/traces"

// NewJaeger creates a collector exporter for tracing.jaeger.endpoint.
func NewJaeger() (*jaeger.Exporter, error) {
	endpoint := viper.GetString("tracing.jaeger.endpoint")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(endpoint),
	))
	if err != nil {
		return nil, errors.Wrap(err, "create jaeger exporter")
	}

	return exp, nil
}
