package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalChecksFound tracks cycles where the target entry was located.
	TotalChecksFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waitlist_checks_found_total",
		Help: "The total number of checks that located the target entry.",
	})
	// TotalChecksNotFound tracks cycles where the entry was absent from the table.
	TotalChecksNotFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waitlist_checks_not_found_total",
		Help: "The total number of checks that could not locate the target entry.",
	})
	// TotalCheckErrors tracks cycles that failed to fetch or parse the page.
	TotalCheckErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waitlist_check_errors_total",
		Help: "The total number of checks that failed with a fetch or parse error.",
	})
)
