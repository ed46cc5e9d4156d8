package core

import "testing"

func lenderPickerFixture() *Picker {
	return NewPicker("Lenders", []PickerItem{
		{ID: "coastal", Label: "Coastal Credit Union", Section: "Credit Unions"},
		{ID: "harbor", Label: "Harbor Federal", Section: "Banks"},
		{ID: "northstar", Label: "Northstar Auto Finance", Section: "Captive"},
	})
}

func TestPickerFilterKeepsSectionOrder(t *testing.T) {
	p := lenderPickerFixture()
	p.SetQuery("a")
	items := p.Items()
	if len(items) != 3 {
		t.Fatalf("all labels contain 'a', got %d", len(items))
	}
	if items[0].Section != "Credit Unions" || items[2].Section != "Captive" {
		t.Fatalf("sections should keep first-seen order: %+v", items)
	}
}

func TestPickerFuzzySubsequenceMatch(t *testing.T) {
	p := lenderPickerFixture()
	p.SetQuery("hbf")
	items := p.Items()
	if len(items) != 1 || items[0].ID != "harbor" {
		t.Fatalf("expected Harbor Federal for query hbf, got %+v", items)
	}
	p.SetQuery("zzz")
	if len(p.Items()) != 0 {
		t.Fatalf("expected no matches for zzz")
	}
}

func TestPickerPrefixScoresAboveInfixMatch(t *testing.T) {
	p := NewPicker("x", []PickerItem{
		{ID: "infix", Label: "Great Northern"},
		{ID: "prefix", Label: "North Bay"},
	})
	p.SetQuery("north")
	items := p.Items()
	if len(items) != 2 {
		t.Fatalf("expected both matches, got %d", len(items))
	}
	if items[0].ID != "prefix" {
		t.Fatalf("prefix match should rank first, got %s", items[0].ID)
	}
}

func TestPickerCursorClampsOnFilter(t *testing.T) {
	p := lenderPickerFixture()
	_ = p.HandleKey("j")
	_ = p.HandleKey("j")
	if p.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", p.Cursor())
	}
	p.SetQuery("coastal")
	if p.Cursor() != 0 {
		t.Fatalf("cursor should clamp to the filtered list, got %d", p.Cursor())
	}
}

func TestPickerEnterSelectsUnderCursor(t *testing.T) {
	p := lenderPickerFixture()
	_ = p.HandleKey("j")
	res := p.HandleKey("enter")
	if res.Action != PickerActionSelected {
		t.Fatalf("action = %v, want selected", res.Action)
	}
	if res.Item.ID != "harbor" {
		t.Fatalf("selected item = %s, want harbor", res.Item.ID)
	}
}

func TestPickerEscCancelsAndBackspaceEditsQuery(t *testing.T) {
	p := lenderPickerFixture()
	_ = p.HandleKey("c")
	_ = p.HandleKey("o")
	if p.Query() != "co" {
		t.Fatalf("query = %q", p.Query())
	}
	_ = p.HandleKey("backspace")
	if p.Query() != "c" {
		t.Fatalf("query after backspace = %q", p.Query())
	}
	res := p.HandleKey("esc")
	if res.Action != PickerActionCancelled {
		t.Fatalf("esc should cancel, got %v", res.Action)
	}
}

func TestPickerEnterOnEmptyListIsNoop(t *testing.T) {
	p := lenderPickerFixture()
	p.SetQuery("nomatch")
	res := p.HandleKey("enter")
	if res.Action != PickerActionNone {
		t.Fatalf("enter on empty list should do nothing, got %v", res.Action)
	}
}
