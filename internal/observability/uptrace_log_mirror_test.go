package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"tournament_id", int64(17), "job", "fixtures", "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "tournament_id" || attrs[0].Value.AsInt64() != 17 {
		t.Fatalf("unexpected tournament_id attribute")
	}
	if attrs[1].Key != "job" || attrs[1].Value.AsString() != "fixtures" {
		t.Fatalf("unexpected job attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"inserted": 11,
		"stale":    true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}
