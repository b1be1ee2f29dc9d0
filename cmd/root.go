package cmd

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "grantmatch"
	envPrefix = "GRANTMATCH"
	envFile   = ".env"
)

type Config struct {
	// ProfileFile is a JSON profile read instead of the stored one.
	ProfileFile string     `mapstructure:"profile-file"`
	StoreFile   string     `mapstructure:"store-file"`
	CatalogFile string     `mapstructure:"catalog-file"`
	List        ListConfig `mapstructure:"list"`
}

type ListConfig struct {
	Tab       string `mapstructure:"tab"`
	Sort      string `mapstructure:"sort"`
	SubFilter string `mapstructure:"sub-filter"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "grantmatch matches an apprentice profile against trade grants",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is grantmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("profile-file", "")
	viper.SetDefault("store-file", defaultStoreFile())
	viper.SetDefault("catalog-file", "")
	viper.SetDefault("list.tab", "all")
	viper.SetDefault("list.sort", "all")
	viper.SetDefault("list.sub-filter", "")
}

func initConfig() {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			log.Fatalf("loading %s: %v", envFile, err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was named explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
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

	return config, nil
}

func defaultStoreFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return app + ".store.json"
	}
	return filepath.Join(dir, app, "store.json")
}
