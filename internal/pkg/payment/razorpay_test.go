package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientCreateOrder(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "rzp_test_secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/orders" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_srv1",
			"amount":   gotBody["amount"],
			"currency": gotBody["currency"],
			"receipt":  gotBody["receipt"],
			"status":   "created",
		})
	}))
	defer srv.Close()

	client := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "rzp_test_secret"})
	client.BaseURL = srv.URL

	order, err := client.CreateOrder(context.Background(), 50000, "INR", "rcpt_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "order_srv1" || order.Amount != 50000 || order.Currency != "INR" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if gotBody["amount"].(float64) != 50000 {
		t.Fatalf("expected amount 50000 in request body, got %v", gotBody["amount"])
	}
}

func TestClientCreateOrder_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"description":"upstream down"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{KeyID: "k", KeySecret: "s"})
	client.BaseURL = srv.URL

	if _, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt_2"); err == nil {
		t.Fatalf("expected error on non-2xx gateway response")
	}
}

func TestClientCreateOrder_MissingCredentials(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt_3"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
