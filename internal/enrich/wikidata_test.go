package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestWikidataClient(t *testing.T, handler http.HandlerFunc) *WikidataClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient := NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), nil)
	t.Cleanup(func() { httpClient.Close() })

	client := NewWikidataClient(httpClient)
	client.baseURL = srv.URL
	return client
}

func TestEnrichResolvesBirthdateAndCountry(t *testing.T) {
	client := newTestWikidataClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "wbsearchentities":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"search": []map[string]string{
					{"id": "Q999", "label": "Novak Djokovic", "description": "album by someone"},
					{"id": "Q5812", "label": "Novak Djokovic", "description": "Serbian tennis player"},
				},
			})
		case "wbgetentities":
			id := r.URL.Query().Get("ids")
			if id == "Q5812" {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"entities": map[string]interface{}{
						"Q5812": map[string]interface{}{
							"claims": map[string]interface{}{
								"P569": []map[string]interface{}{
									{"mainsnak": map[string]interface{}{
										"datavalue": map[string]interface{}{
											"value": map[string]string{"time": "+1987-05-22T00:00:00Z"},
										},
									}},
								},
								"P27": []map[string]interface{}{
									{"mainsnak": map[string]interface{}{
										"datavalue": map[string]interface{}{
											"value": map[string]string{"id": "Q403"},
										},
									}},
								},
							},
						},
					},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"entities": map[string]interface{}{
					"Q403": map[string]interface{}{
						"labels": map[string]interface{}{
							"en": map[string]string{"language": "en", "value": "Serbia"},
						},
					},
				},
			})
		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}
	})

	birthdate, country, err := client.Enrich(context.Background(), "Novak Djokovic", "tennis")
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if birthdate != "1987-05-22" {
		t.Errorf("birthdate = %q, want 1987-05-22", birthdate)
	}
	if country != "Serbia" {
		t.Errorf("country = %q, want Serbia", country)
	}
}

func TestEnrichNoResults(t *testing.T) {
	client := newTestWikidataClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"search": []interface{}{}})
	})

	birthdate, country, err := client.Enrich(context.Background(), "Nobody Unknown", "tennis")
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if birthdate != "" || country != "" {
		t.Errorf("expected empty enrichment, got %q / %q", birthdate, country)
	}
}

func TestPickEntityPrefersSportDescription(t *testing.T) {
	results := []searchResult{
		{ID: "Q1", Description: "rock band"},
		{ID: "Q2", Description: "American boxer"},
	}
	if got := pickEntity(results, "boxer"); got != "Q2" {
		t.Errorf("pickEntity = %q, want Q2", got)
	}
	if got := pickEntity(results, "golfer"); got != "Q1" {
		t.Errorf("fallback pickEntity = %q, want Q1", got)
	}
	if got := pickEntity(nil, "boxer"); got != "" {
		t.Errorf("empty pickEntity = %q, want empty", got)
	}
}
