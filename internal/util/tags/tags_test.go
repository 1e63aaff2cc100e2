package tags

import "testing"

func TestForCluster(t *testing.T) {
	got := ForCluster("payments")

	if got[KeyCluster] != "payments" {
		t.Errorf("expected cluster tag %q, got %q", "payments", got[KeyCluster])
	}
	if got[KeyManagedBy] != ManagedBy {
		t.Errorf("expected managed-by tag %q, got %q", ManagedBy, got[KeyManagedBy])
	}
	if len(got) != 2 {
		t.Errorf("expected 2 tags, got %d", len(got))
	}
}
