package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"nomadix/internal/models"
)

// HTTPHistorySource reads the history from the travel backend.
type HTTPHistorySource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPHistorySource(baseURL string, timeout time.Duration) *HTTPHistorySource {
	return &HTTPHistorySource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPHistorySource) Fetch(ctx context.Context) ([]models.LocationRecord, error) {
	url := h.baseURL + "/locations"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sources.HTTPHistorySource.Fetch: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sources.HTTPHistorySource.Fetch: %v: %w", err, models.ErrNetworkFailure)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sources.HTTPHistorySource.Fetch: HTTP %d from %s: %w", resp.StatusCode, url, models.ErrNetworkFailure)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sources.HTTPHistorySource.Fetch: %v: %w", err, models.ErrNetworkFailure)
	}

	var records []models.LocationRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("sources.HTTPHistorySource.Fetch: decode: %v: %w", err, models.ErrNetworkFailure)
	}
	return markSynced(records), nil
}

type historyFile struct {
	Locations []models.LocationRecord `yaml:"locations"`
}

// FileHistorySource serves the history from a YAML file, for offline runs and demos.
type FileHistorySource struct {
	path string
}

func NewFileHistorySource(path string) *FileHistorySource {
	return &FileHistorySource{path: path}
}

func (f *FileHistorySource) Fetch(_ context.Context) ([]models.LocationRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("sources.FileHistorySource.Fetch: %v: %w", err, models.ErrNetworkFailure)
	}

	var file historyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("sources.FileHistorySource.Fetch: decode %s: %v: %w", f.path, err, models.ErrNetworkFailure)
	}
	return markSynced(file.Locations), nil
}

// The backend is authoritative, whatever flag it sends.
func markSynced(records []models.LocationRecord) []models.LocationRecord {
	for i := range records {
		records[i].IsSynced = true
	}
	return records
}
