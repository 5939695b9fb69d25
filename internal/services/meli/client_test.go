package meli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marroking/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

func TestListItemIDsFollowsScrollUntilEmptyPage(t *testing.T) {
	pages := []ScrollResponse{
		{Results: []string{"MLA1", "MLA2", "MLA3"}, ScrollID: "cursor-1"},
		{Results: []string{"MLA4", "MLA5"}, ScrollID: "cursor-2"},
		{Results: []string{}, ScrollID: "cursor-3"},
	}

	var gotScrollIDs []string
	call := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/123/items/search", r.URL.Path)
		assert.Equal(t, "scan", r.URL.Query().Get("search_type"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		gotScrollIDs = append(gotScrollIDs, r.URL.Query().Get("scroll_id"))

		require.Less(t, call, len(pages), "client kept paging past the empty page")
		json.NewEncoder(w).Encode(pages[call])
		call++
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 50, testLogger())
	ids, err := client.ListItemIDs(context.Background(), "token-1", "123")
	require.NoError(t, err)

	assert.Equal(t, []string{"MLA1", "MLA2", "MLA3", "MLA4", "MLA5"}, ids)
	// The cursor must be threaded through, not reset per call, and the
	// walk must stop only on the empty results page.
	assert.Equal(t, []string{"", "cursor-1", "cursor-2"}, gotScrollIDs)
	assert.Equal(t, 3, call)
}

func TestListItemIDsFallsBackWhenCursorAbsent(t *testing.T) {
	call := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		json.NewEncoder(w).Encode(ScrollResponse{Results: []string{"MLA1", "MLA2"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 50, testLogger())
	ids, err := client.ListItemIDs(context.Background(), "token-1", "123")
	require.NoError(t, err)

	assert.Equal(t, []string{"MLA1", "MLA2"}, ids)
	assert.Equal(t, 1, call, "a response without a cursor is a single non-paginated page")
}

func TestListItemIDsStatusFilter(t *testing.T) {
	var gotStatus []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = append(gotStatus, r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(ScrollResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "active", 50, testLogger())
	_, err := client.ListItemIDs(context.Background(), "token-1", "123")
	require.NoError(t, err)
	assert.Equal(t, []string{"active"}, gotStatus)

	gotStatus = nil
	client = NewClient(server.URL, "", 50, testLogger())
	_, err = client.ListItemIDs(context.Background(), "token-1", "123")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, gotStatus, "no filter configured, no status parameter sent")
}

func TestListItemIDsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 50, testLogger())
	_, err := client.ListItemIDs(context.Background(), "token-1", "123")
	require.Error(t, err)
}

func TestGetItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/MLA99", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("include_attributes"))
		fmt.Fprint(w, `{
			"id": "MLA99",
			"title": "Shirt",
			"price": 100.5,
			"available_quantity": 5,
			"status": "active",
			"variations": [
				{"id": 7, "available_quantity": 3, "attribute_combinations": [{"name": "Size", "value_name": "S"}]},
				{"id": "s1", "available_quantity": 4, "attribute_combinations": [{"name": "Size", "value_name": "M"}]}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 50, testLogger())
	item, err := client.GetItem(context.Background(), "token-1", "MLA99")
	require.NoError(t, err)

	assert.Equal(t, "MLA99", item.ID)
	assert.Equal(t, "Shirt", item.Title)
	assert.Equal(t, 100.5, item.Price)
	assert.Equal(t, 5, item.AvailableQuantity)
	assert.Equal(t, "active", item.Status)
	require.Len(t, item.Variations, 2)
	assert.Equal(t, VariationID("7"), item.Variations[0].ID)
	assert.Equal(t, "S", item.Variations[0].AttributeCombinations[0].ValueName)
	assert.Equal(t, VariationID("s1"), item.Variations[1].ID)
	assert.Equal(t, 4, item.Variations[1].AvailableQuantity)
}

func TestGetItemNonSuccessIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 50, testLogger())
	_, err := client.GetItem(context.Background(), "token-1", "MLA404")
	require.Error(t, err)
}
