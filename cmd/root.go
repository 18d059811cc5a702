package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/resumatch/resumatch/internal/credstore"
)

const (
	app = "resumatch"
)

type Config struct {
	Server *struct {
		URL       string `mapstructure:"url"`
		UserAgent string `mapstructure:"user-agent"`
	} `mapstructure:"server"`
	Dashboard *struct {
		RequireAuth bool `mapstructure:"require-auth"`
	} `mapstructure:"dashboard"`
	CredentialsFile string `mapstructure:"credentials-file"`
	TokenFile       string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resumatch is a simple cli for scoring resumes against job descriptions and browsing the admin dashboard",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "RESUMATCH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding RESUMATCH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resumatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The config file is optional: every key has a workable default. An
	// explicitly requested or unparseable file is still fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func (c *Config) serverURL() string {
	if c.Server == nil {
		return ""
	}
	return strings.TrimSpace(c.Server.URL)
}

func (c *Config) userAgent() string {
	if c.Server == nil {
		return ""
	}
	return strings.TrimSpace(c.Server.UserAgent)
}

func (c *Config) requireAuth() bool {
	return c.Dashboard != nil && c.Dashboard.RequireAuth
}

// newCredentialStore opens the persistent credential store, honoring the
// configured path override.
func newCredentialStore(config *Config) (*credstore.Store, error) {
	if path := strings.TrimSpace(config.CredentialsFile); path != "" {
		return credstore.New(afero.NewOsFs(), path), nil
	}

	return credstore.NewDefault()
}
