package sources

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"nomadix/internal/geo"
	"nomadix/internal/models"
)

const PermissionDenied = "denied"

// Fix is a position report pushed by a device.
// Timestamp accepts RFC 3339 strings, unix seconds or unix milliseconds; an empty value means "now".
type Fix struct {
	Latitude       float64     `json:"latitude" validate:"min:-90|max:90"`
	Longitude      float64     `json:"longitude" validate:"min:-180|max:180"`
	City           string      `json:"city"`
	Country        string      `json:"country"`
	IsoCountryCode string      `json:"isoCountryCode"`
	Timestamp      interface{} `json:"timestamp"`
	Permission     string      `json:"permission"`
}

// PushSource holds the latest fix pushed over HTTP until the next tick consumes it.
type PushSource struct {
	mu     sync.Mutex
	latest *Fix
	now    func() time.Time
}

func NewPushSource() *PushSource {
	return &PushSource{now: time.Now}
}

// Push replaces any fix the scheduler has not consumed yet.
func (p *PushSource) Push(fix Fix) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.latest = &fix
}

func (p *PushSource) Current(_ context.Context) (*models.LocationSnapshot, error) {
	p.mu.Lock()
	fix := p.latest
	p.latest = nil
	p.mu.Unlock()

	if fix == nil {
		return nil, nil
	}
	return p.resolve(*fix)
}

func (p *PushSource) resolve(fix Fix) (*models.LocationSnapshot, error) {
	if strings.EqualFold(fix.Permission, PermissionDenied) {
		return nil, fmt.Errorf("sources.PushSource.Current: %w", models.ErrPermissionDenied)
	}
	if fix.City == "" && fix.Country == "" && fix.IsoCountryCode == "" {
		return nil, fmt.Errorf("sources.PushSource.Current: %w", models.ErrGeocodeUnavailable)
	}

	continent, ok := geo.ContinentByISO(fix.IsoCountryCode)
	if !ok {
		return nil, fmt.Errorf("sources.PushSource.Current: iso code %q: %w", fix.IsoCountryCode, models.ErrContinentUnresolvable)
	}

	timestamp, err := fixTime(fix.Timestamp, p.now)
	if err != nil {
		return nil, fmt.Errorf("sources.PushSource.Current: %w", err)
	}

	return &models.LocationSnapshot{
		City:      orUnknown(fix.City),
		Country:   orUnknown(fix.Country),
		Continent: continent,
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Timestamp: timestamp,
	}, nil
}

// unix times above this are taken as milliseconds
const millisThreshold = 1e11

func fixTime(value interface{}, now func() time.Time) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return now(), nil
	case string:
		if v == "" {
			return now(), nil
		}
		return cast.ToTimeE(v)
	case float64, int, int64, json.Number:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return time.Time{}, err
		}
		if n > millisThreshold {
			return time.UnixMilli(n), nil
		}
		return time.Unix(n, 0), nil
	default:
		return cast.ToTimeE(v)
	}
}

func orUnknown(name string) string {
	if strings.TrimSpace(name) == "" {
		return models.UnknownPlace
	}
	return name
}
