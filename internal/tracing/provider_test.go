package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestNewResourceDescribesTarget(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		env         string
		target      Target
		want        map[attribute.Key]string
		absent      []attribute.Key
	}{
		{
			name:   "https host",
			target: Target{APIURL: "https://redcap.example.edu/api/", ClientVersion: "1.4.0"},
			want: map[attribute.Key]string{
				semconv.ServiceNameKey:    "redcap",
				semconv.ServiceVersionKey: "1.4.0",
				semconv.ServerAddressKey:  "redcap.example.edu",
				semconv.ServerPortKey:     "443",
			},
		},
		{
			name:   "explicit port",
			target: Target{APIURL: "http://localhost:8080/api/"},
			want: map[attribute.Key]string{
				semconv.ServerAddressKey: "localhost",
				semconv.ServerPortKey:    "8080",
			},
			absent: []attribute.Key{semconv.ServiceVersionKey},
		},
		{
			name:   "no url",
			target: Target{},
			absent: []attribute.Key{semconv.ServerAddressKey, semconv.ServerPortKey},
		},
		{
			name:   "service name from env",
			env:    "nightly-export",
			target: Target{APIURL: "https://redcap.example.edu/api/"},
			want:   map[attribute.Key]string{semconv.ServiceNameKey: "nightly-export"},
		},
		{
			name:        "configured service name beats env",
			serviceName: "study-sync",
			env:         "nightly-export",
			target:      Target{APIURL: "https://redcap.example.edu/api/"},
			want:        map[attribute.Key]string{semconv.ServiceNameKey: "study-sync"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_SERVICE_NAME", tt.env)
			t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "")

			res, err := newResource(context.Background(), tt.serviceName, tt.target)
			if err != nil {
				t.Fatalf("newResource() error = %v", err)
			}
			set := res.Set()
			for key, want := range tt.want {
				got, ok := set.Value(key)
				if !ok || got.Emit() != want {
					t.Errorf("%s = %q (present %v), want %q", key, got.Emit(), ok, want)
				}
			}
			for _, key := range tt.absent {
				if v, ok := set.Value(key); ok {
					t.Errorf("unexpected %s = %q", key, v.Emit())
				}
			}
		})
	}
}

func TestServerAttributesDropPath(t *testing.T) {
	for _, attr := range serverAttributes("https://redcap.example.edu/redcap/api/?x=1") {
		if v := attr.Value.Emit(); v != "redcap.example.edu" && v != "443" {
			t.Errorf("attribute %s = %q leaks more than host and port", attr.Key, v)
		}
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		rate    float64
		want    string
		wantErr bool
	}{
		{rate: 0, want: "AlwaysOffSampler"},
		{rate: 1, want: "AlwaysOnSampler"},
		{rate: 0.25, want: "TraceIDRatioBased{0.25}"},
		{rate: -0.5, wantErr: true},
		{rate: 1.5, wantErr: true},
	}
	for _, tt := range tests {
		s, err := newSampler(tt.rate)
		if tt.wantErr {
			if err == nil {
				t.Errorf("newSampler(%g) expected error", tt.rate)
			}
			continue
		}
		if err != nil {
			t.Fatalf("newSampler(%g) error = %v", tt.rate, err)
		}
		if got := s.Description(); got != tt.want {
			t.Errorf("newSampler(%g) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}
