package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentsites/internal/dto"
)

func TestClient_ListOrdersEncodesFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/orders/all", r.URL.Path)
		assert.Equal(t, "Blog", r.URL.Query().Get("websiteType"))
		assert.Equal(t, "insta gram", r.URL.Query().Get("referral"))
		assert.False(t, r.URL.Query().Has("package"))
		_, _ = w.Write([]byte(`[{"_id":"1","name":"Jane","status":"Pending","package":"pro","version":2}]`))
	}))
	defer srv.Close()

	orders, err := New(srv.URL).ListOrders(context.Background(), dto.OrderFilterQuery{
		WebsiteType: "Blog",
		Referral:    "insta gram",
	})

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Jane", orders[0].Name)
	assert.Equal(t, int64(2), orders[0].Version)
}

func TestClient_ListOrdersWithoutFilterSendsNoQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	orders, err := New(srv.URL + "/").ListOrders(context.Background(), dto.OrderFilterQuery{})

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestClient_UpdateOrderStatusSendsVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/orders/abc/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"Accepted","version":3}`, string(raw))

		_, _ = w.Write([]byte(`{"_id":"abc","status":"Accepted","version":4}`))
	}))
	defer srv.Close()

	v := int64(3)
	order, err := New(srv.URL).UpdateOrderStatus(context.Background(), "abc", "Accepted", &v)

	require.NoError(t, err)
	assert.Equal(t, "Accepted", order.Status)
	assert.Equal(t, int64(4), order.Version)
}

func TestClient_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "VALIDATION_ERROR", Message: "Invalid status value."})
	}))
	defer srv.Close()

	_, err := New(srv.URL).UpdateOrderStatus(context.Background(), "abc", "Done", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, "Invalid status value.", apiErr.Message)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListProjects(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_OfferEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/offers", func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateOfferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 15, req.DiscountPercentage)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"o1","title":"Spring","discountPercentage":15,"applicablePackage":"basic","isActive":true}`))
	})
	mux.HandleFunc("PATCH /api/offers/o1", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"isActive":false}`, string(raw))
		_, _ = w.Write([]byte(`{"_id":"o1","isActive":false}`))
	})
	mux.HandleFunc("DELETE /api/offers/o1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Offer deleted successfully."}`))
	})
	mux.HandleFunc("GET /api/packages", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"packageType":"basic","displayPrice":"424","strikePrice":"499","discountPercentage":15}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := New(srv.URL)
	ctx := context.Background()

	created, err := client.CreateOffer(ctx, dto.CreateOfferRequest{Title: "Spring", DiscountPercentage: 15, ApplicablePackage: "basic"})
	require.NoError(t, err)
	assert.Equal(t, "o1", created.ID)

	toggled, err := client.SetOfferActive(ctx, "o1", false)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	msg, err := client.DeleteOffer(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Offer deleted successfully.", msg)

	packages, err := client.ListPackages(ctx)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "424", packages[0].DisplayPrice.String())
	require.NotNil(t, packages[0].StrikePrice)
	assert.Equal(t, "499", packages[0].StrikePrice.String())
}
