package adapter

// MetricsRecorder records domain counters.
type MetricsRecorder interface {
	// RecordExpenseWrite counts a committed expense change by operation name.
	RecordExpenseWrite(operation string)

	// RecordBudgetAlert counts a raised budget alert and whether an email was queued for it.
	RecordBudgetAlert(queued bool)
}
