// Package configapp loads the application configuration and validates the
// outbound email settings.
package configapp

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Transport names accepted in the configuration file.
const (
	TransportSMTP    = "smtp"
	TransportMailgun = "mailgun"
	TransportSES     = "ses"
)

const (
	DefaultSubject     = "Testing SMTP notification"
	DefaultBody        = "Hello, this is a test email sent from notifymail using SMTP."
	DefaultListen      = ":8080"
	DefaultMaxAttempts = 3
	defaultRateLimit   = 5
	defaultBurst       = 10
)

type AppConfig struct {
	// EmailSettings holds the raw sender settings. Values are kept as strings
	// so that Validate reports unparsable ports instead of the YAML decoder.
	EmailSettings map[string]string `yaml:"EmailSettings"`
	Transport     string            `yaml:"transport"`
	MailgunConfig MailGunConfig     `yaml:"mailgun"`
	SESConfig     SESConfig         `yaml:"ses"`
	MailConfig    MailConfiguration `yaml:"message"`
	HTTPConfig    HTTPConfig        `yaml:"http"`
	Schedule      ScheduleConfig    `yaml:"schedule"`
	DebugLevel    string            `yaml:"debuglevel"`
	LogFile       string            `yaml:"logfile"`
	MaxAttempts   int               `yaml:"maxattempts"`
	RetryDelay    string            `yaml:"retrydelay"`
}

type MailConfiguration struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

type MailGunConfig struct {
	Domain  string `yaml:"domain"`
	ApiKey  string `yaml:"apikey"`
	APIBase string `yaml:"apibase"`
}

type SESConfig struct {
	Region string `yaml:"region"`
}

type HTTPConfig struct {
	Listen    string  `yaml:"listen"`
	RateLimit float64 `yaml:"ratelimit"`
	Burst     int     `yaml:"burst"`
}

type ScheduleConfig struct {
	Cron      string `yaml:"cron"`
	Recipient string `yaml:"recipient"`
}

func ReadYamlCnxFile(filename string) (AppConfig, error) {
	var config AppConfig

	// #nosec G304 - filename is supplied by the operator on the command line
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		logrus.Errorf("Error reading YAML file: %s\n", err)
		return config, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		logrus.Errorf("Error parsing YAML file: %s\n", err)
		return config, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}
	config.SetDefaults()
	return config, nil
}

// SetDefaults fills every optional field left empty.
func (a *AppConfig) SetDefaults() {
	if a.Transport == "" {
		a.Transport = TransportSMTP
	}
	if a.MailConfig.Subject == "" {
		a.MailConfig.Subject = DefaultSubject
	}
	if a.MailConfig.Body == "" {
		a.MailConfig.Body = DefaultBody
	}
	if a.HTTPConfig.Listen == "" {
		a.HTTPConfig.Listen = DefaultListen
	}
	if a.HTTPConfig.RateLimit <= 0 {
		a.HTTPConfig.RateLimit = defaultRateLimit
	}
	if a.HTTPConfig.Burst <= 0 {
		a.HTTPConfig.Burst = defaultBurst
	}
	if a.MaxAttempts <= 0 {
		a.MaxAttempts = DefaultMaxAttempts
	}
}

func (a *AppConfig) IsMailGunConfigured() bool {
	return a.MailgunConfig.ApiKey != "" && a.MailgunConfig.Domain != ""
}

func (a *AppConfig) IsSESConfigured() bool {
	return a.SESConfig.Region != ""
}

// RetryDelayDuration parses RetryDelay. An empty value means no delay.
func (a *AppConfig) RetryDelayDuration() (time.Duration, error) {
	if a.RetryDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRetryDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative duration %s", ErrRetryDelay, a.RetryDelay)
	}
	return d, nil
}

// EmailSource exposes the file's EmailSettings with their section prefix,
// falling back to the environment for keys the file leaves empty.
func (a *AppConfig) EmailSource() Source {
	file := make(MapSource, len(a.EmailSettings))
	for k, v := range a.EmailSettings {
		file[EmailSection+sectionSeparator+k] = v
	}
	return Section(Chain(file, EnvSource{}), EmailSection)
}
