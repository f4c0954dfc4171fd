package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match the D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestForTrack(t *testing.T) {
	n := ForTrack("Toccata", "organ works", 7)

	if n.Title != "Toccata" {
		t.Errorf("Title = %q, want %q", n.Title, "Toccata")
	}
	if n.Body != "organ works" {
		t.Errorf("Body = %q, want %q", n.Body, "organ works")
	}
	if n.ReplacesID != 7 {
		t.Errorf("ReplacesID = %d, want 7", n.ReplacesID)
	}
	if n.Urgency != UrgencyLow {
		t.Errorf("Urgency = %d, want UrgencyLow", n.Urgency)
	}
	if n.Timeout == 0 {
		t.Error("Timeout should not be 0 (never expire)")
	}
}
