package metrics

import "testing"

func TestInitRegistryIdempotent(t *testing.T) {
	first := InitRegistry()
	second := InitRegistry()
	if first != second {
		t.Fatal("InitRegistry must return the same registry on repeat calls")
	}
	if GetRegistry() != first {
		t.Fatal("GetRegistry must return the initialized registry")
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	if Handler() == nil {
		t.Fatal("expected non-nil metrics handler")
	}
}
