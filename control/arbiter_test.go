package control

import "testing"

func TestArbiterLastClaimWins(t *testing.T) {
	a := NewArbiter()
	if a.Owner() != "" {
		t.Fatalf("fresh arbiter owner = %q, want none", a.Owner())
	}
	price, term := NewControlID(), NewControlID()

	a.Claim(price)
	if a.Owner() != price {
		t.Fatalf("owner = %q, want price control", a.Owner())
	}
	a.Claim(term)
	if a.Owner() != term {
		t.Fatalf("owner = %q, want term control after later claim", a.Owner())
	}
}

func TestArbiterGuardedRelease(t *testing.T) {
	a := NewArbiter()
	price, term := NewControlID(), NewControlID()

	a.Claim(price)
	a.Claim(term)
	// The control that lost the race blurs late; the winner keeps keys.
	a.Release(price)
	if a.Owner() != term {
		t.Fatalf("stale release evicted the owner: %q", a.Owner())
	}
	a.Release(term)
	if a.Owner() != "" {
		t.Fatalf("owner = %q after release, want none", a.Owner())
	}
	a.Release(term)
	if a.Owner() != "" {
		t.Fatalf("repeat release changed owner to %q", a.Owner())
	}
}

func TestArbiterSubscribeNotifiesOnRealChangesOnly(t *testing.T) {
	a := NewArbiter()
	price := NewControlID()
	var seen []ControlID
	unsubscribe := a.Subscribe(func(id ControlID) { seen = append(seen, id) })

	a.Claim(price)
	a.Claim(price)
	a.Claim(price)
	if len(seen) != 1 || seen[0] != price {
		t.Fatalf("seen = %v, want single claim notification", seen)
	}

	a.Release(price)
	if len(seen) != 2 || seen[1] != "" {
		t.Fatalf("seen = %v, want release notification with empty owner", seen)
	}

	unsubscribe()
	a.Claim(price)
	if len(seen) != 2 {
		t.Fatalf("unsubscribed listener still notified: %v", seen)
	}
}

func TestArbiterMultipleSubscribers(t *testing.T) {
	a := NewArbiter()
	price := NewControlID()
	var first, second int
	stopFirst := a.Subscribe(func(ControlID) { first++ })
	a.Subscribe(func(ControlID) { second++ })

	a.Claim(price)
	stopFirst()
	a.Release(price)

	if first != 1 {
		t.Fatalf("first listener calls = %d, want 1", first)
	}
	if second != 2 {
		t.Fatalf("second listener calls = %d, want 2", second)
	}
}
