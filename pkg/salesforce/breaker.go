package salesforce

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/pkg/metrics"
)

// newBreaker 创建熔断器
//   - 半开状态最多放行 1 个请求
//   - 闭合状态每分钟重置计数
//   - 打开 30 秒后进入半开
//   - 连续 5 次失败即打开
//
// 4xx 响应（如 SOQL 语法错误）不计入失败
func newBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.SalesforceBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *statusError
			if errors.As(err, &se) {
				return se.code < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Salesforce 熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SalesforceBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
