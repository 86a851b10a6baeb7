package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/nsyszr/decoderfleet/config"
	"github.com/nsyszr/decoderfleet/pkg/cmd/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var c = new(config.Config)
var cmdHandler = cli.NewHandler(c)

var (
	Version   = "dev-master"
	BuildTime = "undefined"
	GitHash   = "undefined"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "decoderfleet",
	Short:   "Decoder fleet manager",
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	},
}

// Execute runs the root command and is called by main.main()
func Execute() {
	c.BuildTime = BuildTime
	c.BuildVersion = Version
	c.BuildHash = GitHash

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.decoderfleet.yml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigType("yaml")
		viper.SetConfigName(".decoderfleet") // name of config file (without extension)
		viper.AddConfigPath("$HOME")         // adding home directory as first search path
	}
	viper.AutomaticEnv() // read in environment variables that match

	setDefaults(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Config file not read because \"%s\"\n", err)
		}
	}

	if err := viper.Unmarshal(c); err != nil {
		log.Fatal(fmt.Sprintf("Could not read config because %s.", err))
	}
}

func setDefaults(v *viper.Viper) {
	v.BindEnv("PORT")
	v.SetDefault("PORT", 8080)

	v.BindEnv("HOST")
	v.SetDefault("HOST", "")

	v.BindEnv("VENDOR_URL")
	v.SetDefault("VENDOR_URL", "https://wflageol-uqtr.net/decoder")

	v.BindEnv("VENDOR_GROUP_ID")
	v.SetDefault("VENDOR_GROUP_ID", "AAAA00000000")

	v.BindEnv("VENDOR_TIMEOUT")
	v.SetDefault("VENDOR_TIMEOUT", "5s")

	v.BindEnv("ADDRESS_POOL")
	v.SetDefault("ADDRESS_POOL", "127.0.10.1-127.0.10.12")

	v.BindEnv("FETCH_CONCURRENCY")
	v.SetDefault("FETCH_CONCURRENCY", 4)

	v.BindEnv("OPERATOR_ID")
	v.SetDefault("OPERATOR_ID", "AAAA00000000")

	v.BindEnv("OPERATOR_PASSWORD_HASH")
	v.SetDefault("OPERATOR_PASSWORD_HASH", "")

	v.BindEnv("SESSION_SECRET")
	v.SetDefault("SESSION_SECRET", "")

	v.BindEnv("SESSION_TTL")
	v.SetDefault("SESSION_TTL", "8h")

	v.BindEnv("NATS_URL")
	v.SetDefault("NATS_URL", "")

	v.BindEnv("LOG_LEVEL")
	v.SetDefault("LOG_LEVEL", "info")

	v.BindEnv("LOG_FORMAT")
	v.SetDefault("LOG_FORMAT", "text")
}
