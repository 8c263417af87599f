package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/samdwyer/officehub/internal/config"
)

func TestSetupDisabledReturnsNoopShutdown(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Telemetry
	}{
		{"disabled", config.Telemetry{Enabled: false, Endpoint: "https://api.honeycomb.io"}},
		{"no endpoint", config.Telemetry{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("Setup() error: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Errorf("shutdown() error: %v", err)
			}
		})
	}
}

func TestTracerWithoutSetupRecordsNothing(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "test.span")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("span from the default provider has a valid span context")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}

	for _, tt := range tests {
		if got := sampler(tt.ratio).Description(); got != tt.want {
			t.Errorf("sampler(%v).Description() = %q, want %q", tt.ratio, got, tt.want)
		}
	}

	if got := sampler(0.25).Description(); !strings.HasPrefix(got, "ParentBased") {
		t.Errorf("sampler(0.25).Description() = %q, want ParentBased", got)
	}
}
