package configapp_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sgaunet/notifymail/internal/configapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
EmailSettings:
  senderEmail: sender@example.com
  host: smtp.example.com
  port: 587
  senderPassword: secret
  senderName: Notifier
transport: mailgun
mailgun:
  domain: mg.example.com
  apikey: key-123
message:
  subject: Hello
retrydelay: 250ms
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadYamlCnxFile(t *testing.T) {
	cfg, err := configapp.ReadYamlCnxFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "587", cfg.EmailSettings["port"])
	assert.Equal(t, configapp.TransportMailgun, cfg.Transport)
	assert.True(t, cfg.IsMailGunConfigured())
	assert.False(t, cfg.IsSESConfigured())
	assert.Equal(t, "Hello", cfg.MailConfig.Subject)
	assert.Equal(t, configapp.DefaultBody, cfg.MailConfig.Body)
	assert.Equal(t, configapp.DefaultListen, cfg.HTTPConfig.Listen)
	assert.Equal(t, configapp.DefaultMaxAttempts, cfg.MaxAttempts)

	d, err := cfg.RetryDelayDuration()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	r := configapp.Validate(cfg.EmailSource())
	emailCfg, ok := r.Value()
	require.True(t, ok, "unexpected errors: %v", r.Errors())
	assert.Equal(t, 587, emailCfg.Port)
	assert.Equal(t, "Notifier", emailCfg.SenderName)
}

func TestReadYamlCnxFileErrors(t *testing.T) {
	_, err := configapp.ReadYamlCnxFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, configapp.ErrReadConfig)

	_, err = configapp.ReadYamlCnxFile(writeConfig(t, "EmailSettings: [unclosed"))
	require.ErrorIs(t, err, configapp.ErrParseConfig)
}

func TestSetDefaults(t *testing.T) {
	var cfg configapp.AppConfig
	cfg.SetDefaults()
	assert.Equal(t, configapp.TransportSMTP, cfg.Transport)
	assert.Equal(t, configapp.DefaultSubject, cfg.MailConfig.Subject)
	assert.Greater(t, cfg.HTTPConfig.RateLimit, 0.0)
	assert.Greater(t, cfg.HTTPConfig.Burst, 0)
}

func TestRetryDelayDuration(t *testing.T) {
	tests := []struct {
		value       string
		expected    time.Duration
		expectError bool
	}{
		{"", 0, false},
		{"1s", time.Second, false},
		{"soon", 0, true},
		{"-1s", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := configapp.AppConfig{RetryDelay: tt.value}
			d, err := cfg.RetryDelayDuration()
			if tt.expectError {
				assert.ErrorIs(t, err, configapp.ErrRetryDelay)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestEmailSourceFallsBackToEnvironment(t *testing.T) {
	t.Setenv("EMAILSETTINGS_SENDERPASSWORD", "from-env")
	t.Setenv("EMAILSETTINGS_HOST", "env.example.com")

	cfg := configapp.AppConfig{EmailSettings: map[string]string{
		"senderEmail": "sender@example.com",
		"host":        "file.example.com",
		"port":        "25",
		"senderName":  "N",
	}}

	r := configapp.Validate(cfg.EmailSource())
	emailCfg, ok := r.Value()
	require.True(t, ok, "unexpected errors: %v", r.Errors())
	assert.Equal(t, "from-env", emailCfg.SenderPassword)
	assert.Equal(t, "file.example.com", emailCfg.Host, "file values win over the environment")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "EMAILSETTINGS_SENDEREMAIL", configapp.EnvKey("EmailSettings:senderEmail"))
	assert.Equal(t, "HOST", configapp.EnvKey("host"))
}

func TestEnvSourceCustomLookup(t *testing.T) {
	src := configapp.EnvSource{Getenv: func(k string) (string, bool) {
		if k == "EMAILSETTINGS_PORT" {
			return "2525", true
		}
		return "", false
	}}
	v, ok := configapp.Section(src, configapp.EmailSection).Lookup("port")
	assert.True(t, ok)
	assert.Equal(t, "2525", v)
}

func TestChain(t *testing.T) {
	src := configapp.Chain(
		configapp.MapSource{"a": "", "b": "first"},
		configapp.MapSource{"a": "second", "b": "ignored"},
	)
	v, ok := src.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	v, _ = src.Lookup("b")
	assert.Equal(t, "first", v)

	_, ok = src.Lookup("c")
	assert.False(t, ok)
}
