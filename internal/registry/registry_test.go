package registry

import (
	"errors"
	"testing"

	"github.com/recallai/recall/internal/core"
)

func testConfigs() []core.ProviderConfig {
	return []core.ProviderConfig{
		{Name: "openai", Kind: core.KindOpenAI, DefaultModel: "gpt-4o"},
		{Name: "claude", Kind: core.KindAnthropic, DefaultModel: "claude-sonnet-4-20250514"},
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	cfgs := append(testConfigs(), core.ProviderConfig{Name: "openai"})
	_, err := New(cfgs, "")
	if err == nil {
		t.Fatal("expected error for duplicate provider name")
	}
}

func TestNew_RejectsUnknownDefault(t *testing.T) {
	_, err := New(testConfigs(), "nonexistent-provider")
	if err == nil {
		t.Fatal("expected error for unknown default provider")
	}
}

func TestResolve_ByName(t *testing.T) {
	r, err := New(testConfigs(), "openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := r.Resolve("claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultModel != "claude-sonnet-4-20250514" {
		t.Errorf("wrong config resolved: %s", cfg.DefaultModel)
	}
}

func TestResolve_Default(t *testing.T) {
	r, err := New(testConfigs(), "claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := r.Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "claude" {
		t.Errorf("expected default claude, got %s", cfg.Name)
	}
}

func TestResolve_Unknown(t *testing.T) {
	r, _ := New(testConfigs(), "openai")

	_, err := r.Resolve("nonexistent-provider")
	if !errors.Is(err, core.ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestResolve_NoDefault(t *testing.T) {
	r, _ := New(testConfigs(), "")

	_, err := r.Resolve("")
	if !errors.Is(err, core.ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider without a default, got %v", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	r, _ := New(testConfigs(), "")

	names := r.Names()
	if len(names) != 2 || names[0] != "claude" || names[1] != "openai" {
		t.Errorf("unexpected names: %v", names)
	}
}
