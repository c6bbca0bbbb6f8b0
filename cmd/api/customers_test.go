package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shopadmin/internal/domain/admindashboard"
	"shopadmin/internal/domain/customers"
)

func TestListCustomers(t *testing.T) {
	env := newTestEnv(t)
	active := "active"
	env.customers.list = []*customers.Customer{
		{UserID: 1, Email: "a@example.com", FullName: "Ada Lovelace", TotalOrderCount: 2, SubscriptionStatus: &active},
		{UserID: 2, Email: "b@example.com", FullName: "Bo Chen"},
	}
	env.customers.total = 2

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/customers/get-customers", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	data := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("data = %v", data)
	}
	if data[1].(map[string]any)["subscriptionStatus"] != nil {
		t.Fatalf("customer without subscription = %v", data[1])
	}
	p := body["pagination"].(map[string]any)
	if p["currentPage"] != 1.0 || p["limit"] != 10.0 || p["totalPages"] != 1.0 {
		t.Fatalf("pagination = %v", p)
	}
}

func TestGetCustomer(t *testing.T) {
	env := newTestEnv(t)
	env.customers.list = []*customers.Customer{{UserID: 7, Email: "c@example.com"}}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/customers/search-customer-by-id/7", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decodeBody(t, rr)["data"].(map[string]any)["email"]; got != "c@example.com" {
		t.Fatalf("email = %v", got)
	}

	rr = env.do(httptest.NewRequest(http.MethodGet, "/api/customers/search-customer-by-id/8", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown customer status = %d", rr.Code)
	}
	if msg := decodeBody(t, rr)["message"]; msg != "Customer not found" {
		t.Fatalf("message = %v", msg)
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.dashboard.overview = &admindashboard.Overview{
		TotalUsers:       12,
		TotalSalesAmount: 310.5,
		RecentSubscribers: []admindashboard.SubscriberSummary{
			{ID: 1, UserID: 3, Status: "active", IsActive: true},
		},
	}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	data := body["data"].(map[string]any)
	if body["success"] != true || data["totalUsers"] != 12.0 || data["totalSalesAmount"] != 310.5 {
		t.Fatalf("body = %v", body)
	}
	if len(data["recentSubscribers"].([]any)) != 1 {
		t.Fatalf("recentSubscribers = %v", data["recentSubscribers"])
	}
}
