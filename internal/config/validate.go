package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

// SupportedSchema is the semver constraint config files must satisfy.
const SupportedSchema = "^1.0.0"

// Validation errors.
var (
	ErrSchemaVersion = errors.New("unsupported schema_version")
	ErrInvalidValue  = errors.New("invalid configuration value")
)

// Validate checks that every section holds usable values.
func (c *Config) Validate() error {
	if err := validateSchemaVersion(c.SchemaVersion); err != nil {
		return err
	}

	var errs []error
	if c.Display.PageSize < 1 || c.Display.PageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("%w: display.page_size must be between 1 and %d, got %d",
			ErrInvalidValue, maxPageSize, c.Display.PageSize))
	}
	if c.Display.HeadRows < 1 {
		errs = append(errs, fmt.Errorf("%w: display.head_rows must be >= 1, got %d",
			ErrInvalidValue, c.Display.HeadRows))
	}
	if c.Display.MaxColWidth < 4 { //nolint:mnd // Room for one character plus an ellipsis.
		errs = append(errs, fmt.Errorf("%w: display.max_col_width must be >= 4, got %d",
			ErrInvalidValue, c.Display.MaxColWidth))
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: plot.width and plot.height must be positive",
			ErrInvalidValue))
	}
	if c.Plot.BarLimit < 1 || c.Plot.HistBins < 1 || c.Plot.CLIHistBins < 1 {
		errs = append(errs, fmt.Errorf("%w: plot.bar_limit, plot.hist_bins and plot.cli_hist_bins must be >= 1",
			ErrInvalidValue))
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		errs = append(errs, fmt.Errorf("%w: output.default_format must be one of %s, got %q",
			ErrInvalidValue, supportedFormats, c.Output.DefaultFormat))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format must be json or console, got %q",
			ErrInvalidValue, c.Logging.Format))
	}
	return errors.Join(errs...)
}

func validateSchemaVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: schema_version is empty", ErrSchemaVersion)
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version: %w", ErrSchemaVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrSchemaVersion, v, SupportedSchema)
	}
	return nil
}
