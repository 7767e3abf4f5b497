package entities

import "testing"

func TestDaySlots(t *testing.T) {
	slots := DaySlots(map[string]bool{"09:00": true, "13:00": true})
	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	if slots[0].Time != "09:00" || slots[len(slots)-1].Time != "18:00" {
		t.Fatalf("unexpected bounds %s..%s", slots[0].Time, slots[len(slots)-1].Time)
	}
	for _, s := range slots {
		want := s.Time == "09:00" || s.Time == "13:00"
		if s.Occupied != want {
			t.Fatalf("slot %s occupied=%v, want %v", s.Time, s.Occupied, want)
		}
	}
}

func TestDocumentTypeValid(t *testing.T) {
	for _, d := range []DocumentType{DocumentFoto, DocumentInforme, DocumentOtro} {
		if !d.Valid() {
			t.Fatalf("%q should be valid", d)
		}
	}
	if DocumentType("PDF").Valid() {
		t.Fatalf("PDF should be invalid")
	}
}
