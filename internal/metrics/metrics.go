package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"employees/internal/apperror"
)

// operations counts operation outcomes by name and failure code.
var operations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "employee_api_operations_total",
	Help: "Operation outcomes by name and result code.",
}, []string{"operation", "result"})

// ObserveOp records one operation outcome. Successes count as "ok".
func ObserveOp(operation string, err error) {
	result := "ok"
	if err != nil {
		result = string(apperror.GetCode(err))
	}
	operations.WithLabelValues(operation, result).Inc()
}
