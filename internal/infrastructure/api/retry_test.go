package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:        baseURL,
			RequestTimeout: 5 * time.Second,
		},
		Retry: config.RetryConfig{
			Products:   config.ResourceRetry{MaxRetries: 3, BaseDelay: 1 * time.Second},
			Categories: config.ResourceRetry{MaxRetries: 2, BaseDelay: 500 * time.Millisecond},
			Orders:     config.ResourceRetry{MaxRetries: 2, BaseDelay: 500 * time.Millisecond},
			MaxDelay:   8 * time.Second,
		},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// sleepRecorder replaces the backoff timer so retry tests run instantly while
// still observing the delays that would have been waited.
type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *sleepRecorder, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	recorder := &sleepRecorder{}
	client := New(testConfig(server.URL), testLogger())
	client.SetSleep(recorder.sleep)
	return client, recorder, server
}

func TestDelaySchedule(t *testing.T) {
	policy := RetryPolicy{BaseDelay: 1 * time.Second, MaxDelay: 8 * time.Second}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 8 * time.Second},
		{31, 8 * time.Second},
	}
	for _, tt := range tests {
		if got := policy.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %s, want %s", tt.attempt, got, tt.want)
		}
	}

	zero := RetryPolicy{}
	if got := zero.Delay(0); got != 0 {
		t.Errorf("Delay with zero base = %s, want 0", got)
	}
}

func TestListProductsRetriesTransientFailures(t *testing.T) {
	var calls int
	client, recorder, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"products":[{"id":1,"name":"Tee","price":"19.99"}],"total":1}`)
	}))

	list, err := client.ListProducts(context.Background(), ProductQuery{})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 requests, got %d", calls)
	}
	if len(list.Products) != 1 || list.Total != 1 {
		t.Fatalf("unexpected payload: %+v", list)
	}

	// Two failures means exactly two backoffs, doubling from the base delay.
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(recorder.delays) != len(want) {
		t.Fatalf("recorded %d delays, want %d", len(recorder.delays), len(want))
	}
	for i := range want {
		if recorder.delays[i] != want[i] {
			t.Errorf("delay %d = %s, want %s", i, recorder.delays[i], want[i])
		}
	}
}

func TestListProductsNotFoundIsTerminal(t *testing.T) {
	var calls int
	client, recorder, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.ListProducts(context.Background(), ProductQuery{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Fatalf("expected a single request, got %d", calls)
	}
	if len(recorder.delays) != 0 {
		t.Fatalf("expected no backoff, recorded %v", recorder.delays)
	}

	apiErr, ok := AsError(err)
	if !ok || apiErr.Kind != KindNotFound {
		t.Fatalf("expected not_found classification, got %v", err)
	}
}

func TestRetryBudgetExhausted(t *testing.T) {
	var calls int
	client, recorder, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListProducts(context.Background(), ProductQuery{})
	if err == nil {
		t.Fatal("expected an error after the budget is spent")
	}

	// Products budget is 3 retries: 1 initial request + 3 retries.
	if calls != 4 {
		t.Fatalf("expected 4 requests, got %d", calls)
	}
	if len(recorder.delays) != 3 {
		t.Fatalf("expected 3 backoffs, recorded %d", len(recorder.delays))
	}

	apiErr, ok := AsError(err)
	if !ok || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected the final 500 to surface, got %v", err)
	}
}

func TestCategoriesBudgetIsSeparate(t *testing.T) {
	var calls int
	client, recorder, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListCategories(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}

	// Categories budget is 2 retries with a 500ms base delay.
	if calls != 3 {
		t.Fatalf("expected 3 requests, got %d", calls)
	}
	want := []time.Duration{500 * time.Millisecond, 1 * time.Second}
	if len(recorder.delays) != len(want) {
		t.Fatalf("recorded %d delays, want %d", len(recorder.delays), len(want))
	}
	for i := range want {
		if recorder.delays[i] != want[i] {
			t.Errorf("delay %d = %s, want %s", i, recorder.delays[i], want[i])
		}
	}
}

func TestCreateOrderNeverRetried(t *testing.T) {
	var calls int
	client, recorder, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Fatalf("order creation must be single-shot, got %d requests", calls)
	}
	if len(recorder.delays) != 0 {
		t.Fatalf("expected no backoff for a mutation, recorded %v", recorder.delays)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProducts(ctx, ProductQuery{})
	if err == nil {
		t.Fatal("expected an error with a cancelled context")
	}
}

func TestSleepRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, 10*time.Second)
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Fatal("Sleep did not return promptly on cancellation")
	}
}
