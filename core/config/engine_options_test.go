package config

import (
	"testing"
	"time"

	"contractes-api/core/domain"
)

func TestDefaultEngineConfig(t *testing.T) {
	c := DefaultEngineConfig()

	if c.RowCap != 3000 {
		t.Errorf("RowCap = %d, want 3000", c.RowCap)
	}
	if c.SnapshotTTL != time.Hour {
		t.Errorf("SnapshotTTL = %v, want 1h", c.SnapshotTTL)
	}
	if c.SearchTTL != 10*time.Minute {
		t.Errorf("SearchTTL = %v, want 10m", c.SearchTTL)
	}
	if c.OrderField != "data_formalitzaci_del_contracte" {
		t.Errorf("OrderField = %s", c.OrderField)
	}
	if !c.DefaultScope.IsAll() {
		t.Error("DefaultScope should search every field")
	}
	if !c.CacheEnabled || !c.DelegatedSearch {
		t.Error("cache and delegated search should be enabled by default")
	}
}

func TestNewEngineConfig_Options(t *testing.T) {
	c := NewEngineConfig(
		WithRowCap(500),
		WithSearchRowCap(50),
		WithTTLs(2*time.Hour, time.Minute),
		WithOrderField("data_adjudicacio_contracte"),
		WithDefaultScope(domain.ScopeCompany),
		WithTopN(5),
		WithLabelWidth(30),
		WithoutCache(),
		WithDelegatedSearch(false),
	)

	if c.RowCap != 500 || c.SearchRowCap != 50 {
		t.Errorf("row caps = %d/%d", c.RowCap, c.SearchRowCap)
	}
	if c.SnapshotTTL != 2*time.Hour || c.SearchTTL != time.Minute {
		t.Errorf("ttls = %v/%v", c.SnapshotTTL, c.SearchTTL)
	}
	if c.OrderField != "data_adjudicacio_contracte" {
		t.Errorf("OrderField = %s", c.OrderField)
	}
	if c.DefaultScope.IsAll() {
		t.Error("DefaultScope should be the company scope")
	}
	if c.TopN != 5 || c.LabelWidth != 30 {
		t.Errorf("TopN/LabelWidth = %d/%d", c.TopN, c.LabelWidth)
	}
	if c.CacheEnabled || c.DelegatedSearch {
		t.Error("cache and delegated search should be disabled")
	}
}

func TestNewEngineConfig_IgnoresInvalidValues(t *testing.T) {
	c := NewEngineConfig(WithRowCap(0), WithTopN(-1), WithTTLs(0, 0), WithOrderField(""))
	d := DefaultEngineConfig()

	if c.RowCap != d.RowCap || c.TopN != d.TopN || c.SnapshotTTL != d.SnapshotTTL || c.OrderField != d.OrderField {
		t.Errorf("invalid values should keep defaults, got %+v", c)
	}
}
