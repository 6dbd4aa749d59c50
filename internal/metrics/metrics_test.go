package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingCreated.WithLabelValues("pending"))
	IncBookingCreated("pending")
	if got := testutil.ToFloat64(bookingCreated.WithLabelValues("pending")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}

	IncStatusChange("pending", "confirmed")
	if got := testutil.ToFloat64(statusChanges.WithLabelValues("pending", "confirmed")); got < 1 {
		t.Fatalf("expected status change to be counted, got %v", got)
	}

	SetStoreConnected(true)
	if got := testutil.ToFloat64(storeConnected); got != 1 {
		t.Fatalf("expected gauge 1, got %v", got)
	}
	SetStoreConnected(false)
	if got := testutil.ToFloat64(storeConnected); got != 0 {
		t.Fatalf("expected gauge 0, got %v", got)
	}
}
