package sources

import (
	"fmt"

	"nomadix/internal/providers"
	"nomadix/internal/structures"
)

// NewHistorySource picks the remote history backend. It returns nil when seeding is disabled.
func NewHistorySource(conf *structures.Config) (HistorySource, error) {
	switch conf.History.Source {
	case "http":
		return NewHTTPHistorySource(conf.History.URL, conf.History.Timeout), nil
	case "file":
		return NewFileHistorySource(conf.History.File), nil
	case "none", "":
		return nil, nil
	}
	return nil, fmt.Errorf("sources.NewHistorySource: unknown source %q", conf.History.Source)
}

// NewSnapshotSource uses the GeoIP database when one is configured and device pushes otherwise.
func NewSnapshotSource(conf *structures.Config, push *PushSource, logger providers.Logger) (SnapshotSource, func(), error) {
	if conf.GeoIP.Database == "" {
		logger.Infof(providers.TypeApp, "Snapshot source: device push")
		return push, func() {}, nil
	}

	source, err := NewGeoIPSource(conf)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof(providers.TypeApp, "Snapshot source: GeoIP %s for %s", conf.GeoIP.Database, conf.GeoIP.IP)

	return source, func() {
		if err := source.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error closing GeoIP database: %s", err)
		}
	}, nil
}
