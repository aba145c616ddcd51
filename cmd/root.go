package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interview-coach"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-coach is a backend for voice and text interview practice",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// envBindings maps config keys to the environment variables deployments use.
var envBindings = map[string]string{
	"vapi.private-key":      "VAPI_PRIVATE_KEY",
	"vapi.private-key-file": "VAPI_PRIVATE_KEY_FILE",
	"vapi.public-key":       "VAPI_PUBLIC_KEY",
	"vapi.assistant-id":     "VAPI_ASSISTANT_ID",
	"jobs.url":              "RECOMMENDER_URL",
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetEnvPrefix("IC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-coach.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	// Without a config file everything comes from defaults and environment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}
