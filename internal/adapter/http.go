package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

const (
	restaurantsPath = "/restaurants"
	favoritesPath   = "/favorites"
)

// httpRemoteAdapter talks to a PostgREST endpoint (for example a Supabase
// project's /rest/v1).
type httpRemoteAdapter struct {
	tokenHolder

	client *utils.HTTPClient
	apiKey string
	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs the PostgREST implementation of
// [RemoteAdapter]. It normalises adapterCfg.HTTPAddress and configures the
// HTTP client with the request timeout. The API key, when set, is sent as the
// "apikey" header and as the bearer token until a user token is set.
func NewHTTPRemoteAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRemoteAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		apiKey: adapterCfg.APIKey,
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRemoteAdapter) Ping(ctx context.Context) error {
	resp, err := h.request(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		Get(restaurantsPath)
	if err != nil {
		return mapTransportError("ping request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteAdapter) CountRecords(ctx context.Context) (int, error) {
	resp, err := h.request(ctx).
		SetHeader("Prefer", "count=exact").
		SetHeader("Range-Unit", "items").
		SetHeader("Range", "0-0").
		SetQueryParam("select", "id").
		Get(restaurantsPath)
	if err != nil {
		return 0, mapTransportError("count request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	total, ok := parseContentRangeTotal(resp.Header().Get("Content-Range"))
	if !ok {
		return 0, fmt.Errorf("count request: missing total in Content-Range %q", resp.Header().Get("Content-Range"))
	}
	return total, nil
}

func (h *httpRemoteAdapter) FetchRecordsRange(ctx context.Context, from, to int) ([]models.CatalogRecord, error) {
	if to < from {
		return []models.CatalogRecord{}, nil
	}

	var records []models.CatalogRecord
	resp, err := h.request(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "id.asc",
			"offset": strconv.Itoa(from),
			"limit":  strconv.Itoa(to - from + 1),
		}).
		SetResult(&records).
		Get(restaurantsPath)
	if err != nil {
		return nil, mapTransportError("fetch range request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return validateRecords(h.logger, records), nil
}

func (h *httpRemoteAdapter) FetchRecordsPage(ctx context.Context, req models.PageRequest) (models.Page, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "name.asc,id.asc")
	params.Set("offset", strconv.Itoa(req.Offset()))
	params.Set("limit", strconv.Itoa(req.PageSize))
	if search := strings.TrimSpace(req.Search); search != "" {
		pattern := "*" + escapePostgRESTValue(search) + "*"
		params.Set("or", fmt.Sprintf("(name.ilike.%s,description.ilike.%s)", pattern, pattern))
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		params.Set("category", "eq."+category)
	}

	var records []models.CatalogRecord
	resp, err := h.request(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParamsFromValues(params).
		SetResult(&records).
		Get(restaurantsPath)
	if err != nil {
		return models.Page{}, mapTransportError("fetch page request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Page{}, err
	}

	page := models.Page{Items: validateRecords(h.logger, records)}
	if total, ok := parseContentRangeTotal(resp.Header().Get("Content-Range")); ok {
		page.Total = &total
	}
	return page, nil
}

func (h *httpRemoteAdapter) FetchRecordsUpdatedAfter(ctx context.Context, after *time.Time) ([]models.CatalogRecord, error) {
	req := h.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "updated_at.desc")
	if after != nil {
		req.SetQueryParam("updated_at", "gt."+after.UTC().Format(time.RFC3339Nano))
	}

	var records []models.CatalogRecord
	resp, err := req.SetResult(&records).Get(restaurantsPath)
	if err != nil {
		return nil, mapTransportError("fetch updated records request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return validateRecords(h.logger, records), nil
}

func (h *httpRemoteAdapter) UpsertRecord(ctx context.Context, record models.CatalogRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetBody([]models.CatalogRecord{record}).
		Post(restaurantsPath)
	if err != nil {
		return mapTransportError("upsert record request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteAdapter) FetchFavoritesUpdatedAfter(ctx context.Context, userID string, after *time.Time) ([]models.FavoriteRecord, error) {
	req := h.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("order", "created_at.desc")
	if after != nil {
		req.SetQueryParam("created_at", "gt."+after.UTC().Format(time.RFC3339Nano))
	}

	var favorites []models.FavoriteRecord
	resp, err := req.SetResult(&favorites).Get(favoritesPath)
	if err != nil {
		return nil, mapTransportError("fetch favorites request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return validateFavorites(h.logger, favorites), nil
}

func (h *httpRemoteAdapter) UpsertFavorite(ctx context.Context, favorite models.FavoriteRecord) error {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetBody([]models.FavoriteRecord{favorite}).
		Post(favoritesPath)
	if err != nil {
		return mapTransportError("upsert favorite request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteAdapter) DeleteFavorite(ctx context.Context, favorite models.FavoriteRecord) error {
	resp, err := h.request(ctx).
		SetQueryParam("id", "eq."+favorite.ID).
		Delete(favoritesPath)
	if err != nil {
		return mapTransportError("delete favorite request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader("X-Trace-ID", traceID)
	}
	if h.apiKey != "" {
		req.SetHeader("apikey", h.apiKey)
	}

	bearer := h.Token()
	if bearer == "" {
		bearer = h.apiKey
	}
	if bearer != "" {
		req.SetAuthToken(bearer)
	}
	return req
}

// parseContentRangeTotal extracts the total from a PostgREST Content-Range
// header such as "0-19/45" or "*/0".
func parseContentRangeTotal(header string) (int, bool) {
	i := strings.LastIndexByte(header, '/')
	if i < 0 || i == len(header)-1 {
		return 0, false
	}

	total, err := strconv.Atoi(header[i+1:])
	if err != nil {
		return 0, false
	}
	return total, true
}

// escapePostgRESTValue strips characters with a meaning inside a PostgREST
// logic tree.
func escapePostgRESTValue(v string) string {
	return strings.NewReplacer(",", " ", "(", " ", ")", " ", "*", " ").Replace(v)
}
