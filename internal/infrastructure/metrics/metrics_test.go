package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordStoreOperation(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		outcome string
	}{
		{name: "applied", code: "", outcome: OutcomeApplied},
		{name: "rejected unauthenticated", code: "LIB001", outcome: "LIB001"},
		{name: "rejected not found", code: "LIB002", outcome: "LIB002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("borrow_test", tt.outcome))

			RecordStoreOperation("borrow_test", tt.code)

			after := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("borrow_test", tt.outcome))
			if after != before+1 {
				t.Errorf("expected counter %v, got %v", before+1, after)
			}
		})
	}
}

func TestRecordCompletion(t *testing.T) {
	okBefore := testutil.ToFloat64(CompletionRequestsTotal.WithLabelValues("recommend_test", OutcomeSuccess))
	failBefore := testutil.ToFloat64(CompletionRequestsTotal.WithLabelValues("recommend_test", OutcomeFailure))

	RecordCompletion("recommend_test", nil, 20*time.Millisecond)
	RecordCompletion("recommend_test", errors.New("quota exceeded"), time.Second)
	RecordCompletion("recommend_test", errors.New("timeout"), 30*time.Second)

	if got := testutil.ToFloat64(CompletionRequestsTotal.WithLabelValues("recommend_test", OutcomeSuccess)); got != okBefore+1 {
		t.Errorf("success count: expected %v, got %v", okBefore+1, got)
	}
	if got := testutil.ToFloat64(CompletionRequestsTotal.WithLabelValues("recommend_test", OutcomeFailure)); got != failBefore+2 {
		t.Errorf("failure count: expected %v, got %v", failBefore+2, got)
	}
}

func TestSetBreakerState(t *testing.T) {
	SetBreakerState("test-breaker", 2)

	if got := testutil.ToFloat64(CompletionBreakerState.WithLabelValues("test-breaker")); got != 2 {
		t.Errorf("expected breaker state 2, got %v", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200"))

	RecordAPIRequest("GET", "/test", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200")); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}
}
