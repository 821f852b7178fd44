package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"nomadix/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}

	th := c.conf.Tracking.Thresholds
	if !(th.City < th.Country && th.Country < th.Continent) {
		return fmt.Errorf("stay thresholds must grow with the level: city %s, country %s, continent %s",
			th.City, th.Country, th.Continent)
	}

	switch c.conf.Storage.Driver {
	case "file":
		if c.conf.Storage.FilePath == "" {
			return fmt.Errorf("storage.filePath is required for the file driver")
		}
	case "redis":
		if c.conf.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for the redis driver")
		}
	case "postgres":
		if c.conf.Storage.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn is required for the postgres driver")
		}
	}

	switch c.conf.History.Source {
	case "http":
		if c.conf.History.URL == "" {
			return fmt.Errorf("history.url is required for the http source")
		}
	case "file":
		if c.conf.History.File == "" {
			return fmt.Errorf("history.file is required for the file source")
		}
	}

	if c.conf.GeoIP.Database != "" && c.conf.GeoIP.IP == "" {
		return fmt.Errorf("geoip.ip is required when geoip.database is set")
	}

	return nil
}
