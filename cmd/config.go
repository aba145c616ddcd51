package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/spigell/interview-coach/internal/jobs"
	"github.com/spigell/interview-coach/internal/secrets"
	"github.com/spigell/interview-coach/internal/vapi"
)

type Config struct {
	Server *ServerConfig `mapstructure:"server"`
	Vapi   *VapiConfig   `mapstructure:"vapi"`
	Jobs   *JobsConfig   `mapstructure:"jobs"`
	Log    *LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	CORSOrigins     []string      `mapstructure:"cors-origins"`
}

type VapiConfig struct {
	PrivateKey     string       `mapstructure:"private-key"`
	PrivateKeyFile string       `mapstructure:"private-key-file"`
	PublicKey      string       `mapstructure:"public-key"`
	AssistantID    string       `mapstructure:"assistant-id"`
	APIURL         string       `mapstructure:"api-url"`
	Assistant      vapi.Options `mapstructure:"assistant"`
}

type JobsConfig struct {
	URL           string        `mapstructure:"url"`
	DefaultUserID string        `mapstructure:"default-user-id"`
	Policy        *PolicyConfig `mapstructure:"policy"`
}

// PolicyConfig holds the failure policy of each recommendation endpoint.
type PolicyConfig struct {
	Recommend   string `mapstructure:"recommend"`
	RecommendCV string `mapstructure:"recommend-cv"`
}

type LogConfig struct {
	MaxLength int `mapstructure:"max-length"`
}

func setDefaults() {
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.shutdown-timeout", "10s")
	viper.SetDefault("server.cors-origins", []string{})
	viper.SetDefault("jobs.default-user-id", "anonymous")
	viper.SetDefault("jobs.policy.recommend", string(jobs.PolicyFallback))
	viper.SetDefault("jobs.policy.recommend-cv", string(jobs.PolicyFallback))
	viper.SetDefault("log.max-length", 200)
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}
	if config.Vapi == nil {
		config.Vapi = &VapiConfig{}
	}
	if config.Jobs == nil {
		config.Jobs = &JobsConfig{}
	}
	if config.Jobs.Policy == nil {
		config.Jobs.Policy = &PolicyConfig{}
	}
	if config.Log == nil {
		config.Log = &LogConfig{}
	}

	return config, nil
}

// policies parses both endpoint policies; an unknown name is a startup error.
func (c *JobsConfig) policies() (jobs.Policies, error) {
	recommend, err := jobs.ParsePolicy(c.Policy.Recommend)
	if err != nil {
		return jobs.Policies{}, fmt.Errorf("jobs.policy.recommend: %w", err)
	}
	matchCV, err := jobs.ParsePolicy(c.Policy.RecommendCV)
	if err != nil {
		return jobs.Policies{}, fmt.Errorf("jobs.policy.recommend-cv: %w", err)
	}
	return jobs.Policies{Recommend: recommend, MatchCV: matchCV}, nil
}

// privateKey resolves the Vapi private key. It is optional at startup: the
// provisioner reports a missing key per request.
func (c *VapiConfig) privateKey() (string, error) {
	return secrets.Load(secrets.Source{
		Name:     "vapi private key",
		Value:    c.PrivateKey,
		File:     c.PrivateKeyFile,
		Optional: true,
	})
}

func (c *VapiConfig) publicConfig() vapi.PublicConfig {
	return vapi.PublicConfig{
		PublicKey:   strings.TrimSpace(c.PublicKey),
		AssistantID: strings.TrimSpace(c.AssistantID),
	}
}
