package org

import "testing"

func TestDefaultTodoConfig(t *testing.T) {
	cfg := DefaultTodoConfig()

	st := cfg.FindStatus("TODO")
	if st == nil || !st.IsActive() || st.Order != 0 {
		t.Fatalf("TODO = %+v", st)
	}
	st = cfg.FindStatus("DONE")
	if st == nil || !st.IsClosed() || st.Order != 3 {
		t.Fatalf("DONE = %+v", st)
	}
	if cfg.FindStatus("BOGUS") != nil {
		t.Fatal("unknown keyword should yield nil")
	}
}

func TestTodoConfigFromKeywords(t *testing.T) {
	cfg := TodoConfigFromKeywords([]string{"WIP", "REVIEW"}, []string{"SHIPPED"})

	wip := cfg.FindStatus("WIP")
	if wip == nil || wip.State != StateActive {
		t.Fatalf("WIP = %+v", wip)
	}
	review := cfg.FindStatus("REVIEW")
	if review == nil || review.Order <= wip.Order {
		t.Fatalf("later keywords should get higher orders: %+v vs %+v", review, wip)
	}
	shipped := cfg.FindStatus("SHIPPED")
	if shipped == nil || shipped.State != StateClosed {
		t.Fatalf("SHIPPED = %+v", shipped)
	}
	if wip.Color == "" || shipped.Color == "" {
		t.Fatal("statuses should carry display colors")
	}
}

func TestTodoConfigNilSafe(t *testing.T) {
	var cfg *TodoConfig
	if cfg.FindStatus("TODO") != nil {
		t.Fatal("nil config should yield nil status")
	}
}

func TestKeywords(t *testing.T) {
	cfg := TodoConfigFromKeywords([]string{"A", "B"}, []string{"C"})
	active, closed := cfg.Keywords()
	if len(active) != 2 || len(closed) != 1 {
		t.Fatalf("keywords = %v | %v", active, closed)
	}
}
