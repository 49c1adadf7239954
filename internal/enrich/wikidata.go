package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const wikidataAPIURL = "https://www.wikidata.org/w/api.php"

// PlayerRecord is one enriched roster entry
type PlayerRecord struct {
	Name      string
	Sport     string
	Rank      int
	Birthdate string // YYYY-MM-DD, empty when unknown
	Country   string
}

// WikidataClient looks up athletes through the wbsearchentities and
// wbgetentities actions.
type WikidataClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
}

// NewWikidataClient creates a Wikidata lookup client
func NewWikidataClient(httpClient *RateLimitedHTTPClient) *WikidataClient {
	return &WikidataClient{
		httpClient: httpClient,
		baseURL:    wikidataAPIURL,
	}
}

type searchResult struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type searchResponse struct {
	Search []searchResult `json:"search"`
}

type entityResponse struct {
	Entities map[string]entity `json:"entities"`
}

type entity struct {
	Claims map[string][]claim           `json:"claims"`
	Labels map[string]map[string]string `json:"labels"`
}

type claim struct {
	MainSnak struct {
		DataValue struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type timeValue struct {
	Time string `json:"time"`
}

type itemValue struct {
	ID string `json:"id"`
}

// Enrich resolves one athlete to a birthdate and country. The sport
// keyword steers entity disambiguation: the first search hit whose
// description mentions it wins, otherwise the top hit is used.
func (c *WikidataClient) Enrich(ctx context.Context, name, sportKeyword string) (birthdate, country string, err error) {
	results, err := c.search(ctx, name+" "+sportKeyword)
	if err != nil {
		return "", "", err
	}
	if len(results) == 0 {
		// Fall back to a bare-name search before giving up.
		if results, err = c.search(ctx, name); err != nil {
			return "", "", err
		}
	}

	entityID := pickEntity(results, sportKeyword)
	if entityID == "" {
		return "", "", nil
	}

	ent, err := c.getEntity(ctx, entityID, "claims|descriptions|labels")
	if err != nil {
		return "", "", err
	}
	if ent == nil {
		return "", "", nil
	}

	birthdate = extractBirthdate(ent)
	country, err = c.resolveCountry(ctx, ent)
	if err != nil {
		return birthdate, "", err
	}
	return birthdate, country, nil
}

func (c *WikidataClient) search(ctx context.Context, query string) ([]searchResult, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", strings.TrimSpace(query))
	params.Set("language", "en")
	params.Set("format", "json")
	params.Set("limit", "5")

	var resp searchResponse
	if err := c.getJSON(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("wikidata search failed: %w", err)
	}
	return resp.Search, nil
}

func (c *WikidataClient) getEntity(ctx context.Context, entityID, props string) (*entity, error) {
	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", entityID)
	params.Set("format", "json")
	params.Set("props", props)

	var resp entityResponse
	if err := c.getJSON(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("wikidata entity fetch failed: %w", err)
	}
	ent, ok := resp.Entities[entityID]
	if !ok {
		return nil, nil
	}
	return &ent, nil
}

func (c *WikidataClient) getJSON(ctx context.Context, params url.Values, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func pickEntity(results []searchResult, sportKeyword string) string {
	for _, item := range results {
		if strings.Contains(strings.ToLower(item.Description), sportKeyword) {
			return item.ID
		}
	}
	if len(results) > 0 {
		return results[0].ID
	}
	return ""
}

// extractBirthdate reads the date-of-birth claim (P569). Wikidata
// times look like "+1987-05-22T00:00:00Z".
func extractBirthdate(ent *entity) string {
	claims, ok := ent.Claims["P569"]
	if !ok || len(claims) == 0 {
		return ""
	}

	var tv timeValue
	if err := json.Unmarshal(claims[0].MainSnak.DataValue.Value, &tv); err != nil {
		return ""
	}

	date := strings.TrimPrefix(tv.Time, "+")
	if len(date) < 10 {
		return ""
	}
	return date[:10]
}

// resolveCountry reads the citizenship claim (P27) and fetches the
// English label for the referenced country entity.
func (c *WikidataClient) resolveCountry(ctx context.Context, ent *entity) (string, error) {
	claims, ok := ent.Claims["P27"]
	if !ok || len(claims) == 0 {
		return "", nil
	}

	var iv itemValue
	if err := json.Unmarshal(claims[0].MainSnak.DataValue.Value, &iv); err != nil || iv.ID == "" {
		return "", nil
	}

	countryEnt, err := c.getEntity(ctx, iv.ID, "labels")
	if err != nil {
		return "", err
	}
	if countryEnt == nil {
		return "", nil
	}
	if en, ok := countryEnt.Labels["en"]; ok {
		return en["value"], nil
	}
	return "", nil
}
