package cursorwire

import "testing"

func TestPresenceLastWriteWins(t *testing.T) {
	p := NewPresence()
	p.Set("fox-7", Position{X: 1, Y: 2})
	p.Set("fox-7", Position{X: 120, Y: -40})

	got, ok := p.Get("fox-7")
	if !ok {
		t.Fatal("expected fox-7 present")
	}
	if got != (Position{X: 120, Y: -40}) {
		t.Fatalf("got %+v, want the newer position", got)
	}
	if p.Len() != 1 {
		t.Fatalf("Len = %d, want 1", p.Len())
	}
}

func TestPresenceSnapshotIsACopy(t *testing.T) {
	p := NewPresence()
	p.Set("owl-3", Position{X: 7, Y: 7})

	snap := p.Snapshot()
	snap["owl-3"] = Position{X: 0, Y: 0}
	delete(snap, "owl-3")

	if got, _ := p.Get("owl-3"); got != (Position{X: 7, Y: 7}) {
		t.Fatalf("mutating the snapshot leaked into the view: %+v", got)
	}
}

func TestPresenceClear(t *testing.T) {
	p := NewPresence()
	p.Set("a", Position{X: 1, Y: 1})
	p.Set("b", Position{X: 2, Y: 2})
	p.Clear()
	if p.Len() != 0 {
		t.Fatalf("Len = %d after Clear, want 0", p.Len())
	}
}

func TestPaletteColorStability(t *testing.T) {
	p := NewPalette()
	first := p.Assign("fox-7")
	second := p.Assign("fox-7")
	if first != second {
		t.Fatalf("color reassigned: %+v then %+v", first, second)
	}
	if got, ok := p.Lookup("fox-7"); !ok || got != first {
		t.Fatalf("Lookup disagreed with Assign: %+v", got)
	}
}

func TestPaletteReset(t *testing.T) {
	p := NewPalette()
	p.Assign("fox-7")
	p.Reset()
	if _, ok := p.Lookup("fox-7"); ok {
		t.Fatal("color survived Reset")
	}
	// Hue derivation is deterministic, so re-assignment after a reset
	// still yields the same color for the same username.
	if p.Assign("fox-7") != (Color{Hue: hueFor("fox-7"), Saturation: 100, Lightness: 50}) {
		t.Fatal("unexpected color after reset")
	}
}

func TestColorCSS(t *testing.T) {
	c := Color{Hue: 210, Saturation: 100, Lightness: 50}
	if got := c.CSS(); got != "hsl(210, 100%, 50%)" {
		t.Fatalf("CSS() = %q", got)
	}
}
