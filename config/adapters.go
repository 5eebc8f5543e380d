package config

import (
	"fmt"
	"io"

	"primetime-picks/database"
	"primetime-picks/logging"
	"primetime-picks/primetime"
)

// ToDatabaseConfig converts config to database.Config
func (c *Config) ToDatabaseConfig() database.Config {
	return database.Config{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		Username: c.Database.Username,
		Password: c.Database.Password,
		Database: c.Database.Database,
		Timeout:  c.Database.Timeout,
	}
}

// ToLoggingConfig converts config to logging.Config. When file logging is
// enabled the returned closer owns the log file; otherwise it is a no-op.
func (c *Config) ToLoggingConfig(fileName string) (logging.Config, io.Closer, error) {
	cfg := logging.Config{
		Level:       c.Logging.Level,
		Prefix:      c.Logging.Prefix,
		EnableColor: c.Logging.EnableColor,
	}
	if !c.Logging.EnableFile {
		return cfg, noopCloser{}, nil
	}

	w, f, err := logging.OpenLogFile(c.Logging.LogDir, fileName)
	if err != nil {
		return cfg, noopCloser{}, err
	}
	cfg.Output = w
	// Escape codes would end up in the file.
	cfg.EnableColor = false
	return cfg, f, nil
}

// Classifier builds the primetime rules from the app settings.
func (c *Config) Classifier() (*primetime.Classifier, error) {
	threshold, err := primetime.ParseThreshold(c.App.PrimetimeThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid PRIMETIME_THRESHOLD: %w", err)
	}
	extra, err := primetime.ParseFixedHolidays(c.App.ExtraHolidays)
	if err != nil {
		return nil, fmt.Errorf("invalid EXTRA_HOLIDAYS: %w", err)
	}
	return primetime.NewClassifier(primetime.Rules{
		Threshold: threshold,
		Calendar:  primetime.NewCalendar(extra...),
	}), nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
