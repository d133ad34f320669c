package commands

import (
	"docketsearch/internal/scrapers/ujs"
	"docketsearch/internal/scrapers/ujs/cp"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/mdj"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/workflow"
	"docketsearch/lib/configutil"
	"docketsearch/lib/restyutil"
	"docketsearch/lib/serviceutil"
	"fmt"
	"os"
	"time"
)

type Config struct {
	CPUrl  string `json:"cp_url"`
	MDJUrl string `json:"mdj_url"`
	// a duration like "2m", empty means unbounded
	TimeBudget string `json:"time_budget"`
	// a CSV with the columns County,regex, empty means the embedded table
	CountyTable       string  `json:"county_table"`
	MaxConcurrency    int     `json:"max_concurrency"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	HttpTimeout       string  `json:"http_timeout"`
	FiledDateLayout   string  `json:"filed_date_layout"`
	DumpDir           string  `json:"dump_dir"`
	ListenPort        int     `json:"listen_port"`
	Debug             bool    `json:"debug"`
	AccessToken       string  `json:"access_token"`
}

func defaultConfig() Config {
	return Config{
		CPUrl:           cp.DefaultEndpoint,
		MDJUrl:          mdj.DefaultEndpoint,
		HttpTimeout:     "30s",
		FiledDateLayout: workflow.DefaultDateLayout,
		ListenPort:      8080,
	}
}

func ReadConfig(path string) (Config, error) {
	return configutil.ReadConfigWithDefaults(path, defaultConfig())
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func (c Config) countyTable() (*docket.CountyTable, error) {
	if c.CountyTable == "" {
		return docket.DefaultCountyTable()
	}
	f, err := os.Open(c.CountyTable)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return docket.LoadCountyTable(f)
}

// Options turns the configuration into the options of the orchestrator.
func (c Config) Options() (ujs.Options, error) {
	timeBudget, err := parseDuration("time_budget", c.TimeBudget)
	if err != nil {
		return ujs.Options{}, err
	}
	timeout, err := parseDuration("http_timeout", c.HttpTimeout)
	if err != nil {
		return ujs.Options{}, err
	}
	if c.MaxConcurrency < 0 {
		return ujs.Options{}, fmt.Errorf("max_concurrency must not be negative")
	}

	counties, err := c.countyTable()
	if err != nil {
		return ujs.Options{}, fmt.Errorf("county table: %w", err)
	}

	sessionOpts := portal.Options{
		Timeout:           timeout,
		RequestsPerSecond: c.RequestsPerSecond,
	}
	if c.Debug && c.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(c.DumpDir)
		if err != nil {
			return ujs.Options{}, fmt.Errorf("dump_dir: %w", err)
		}
		sessionOpts.Dump = output
	}

	return ujs.Options{
		CPEndpoint:  c.CPUrl,
		MDJEndpoint: c.MDJUrl,
		Counties:    counties,
		Env: workflow.Env{
			Session:    sessionOpts,
			TimeBudget: timeBudget,
			DateLayout: c.FiledDateLayout,
		},
		MaxConcurrency: c.MaxConcurrency,
	}, nil
}

func newSearcher() *ujs.Searcher {
	opts, err := config.Options()
	if err != nil {
		serviceutil.Fatal("invalid configuration", err)
	}
	searcher, err := ujs.NewSearcher(opts)
	if err != nil {
		serviceutil.Fatal("failed to create searcher", err)
	}
	return searcher
}
