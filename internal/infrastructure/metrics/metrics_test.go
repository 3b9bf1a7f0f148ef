package metrics

import "testing"

func TestNew_RegistersAllMetrics(t *testing.T) {
	m := New()

	if m.AccountsCreated == nil {
		t.Error("AccountsCreated not initialized")
	}
	if m.Deposits == nil {
		t.Error("Deposits not initialized")
	}
	if m.Withdrawals == nil {
		t.Error("Withdrawals not initialized")
	}
	if m.TransfersCreated == nil {
		t.Error("TransfersCreated not initialized")
	}
	if m.TransferAmount == nil {
		t.Error("TransferAmount not initialized")
	}
	if m.TransferErrors == nil {
		t.Error("TransferErrors not initialized")
	}
	if m.OperationDuration == nil {
		t.Error("OperationDuration not initialized")
	}

	// Counters must accept increments without panicking.
	m.AccountsCreated.Inc()
	m.TransferErrors.WithLabelValues("insufficient_funds").Inc()
	m.OperationDuration.WithLabelValues("transfer").Observe(0.001)
}
