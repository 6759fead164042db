package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btraven00/pub2agents/internal/config"
	"github.com/btraven00/pub2agents/internal/logger"
)

var (
	cfgFile string
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pub2agents",
	Short: "Extract tool names and links from scientific publications",
	Long: `pub2agents reads publication metadata (title, abstract, optional full text)
and proposes the names of the software tools the publication presents,
together with the web links that belong to each name.

Publications are kept in a local sqlite store, scored with an IDF table
built from that store, and the results are written as JSON, plain URL
lists, CSV or Excel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.SetLevel(viper.GetString("log.level"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pub2agents.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (suppress verbose messages)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("db", "pub2agents.db", "sqlite publication store")
	rootCmd.PersistentFlags().String("idf", "tf.idf", "IDF table (msgpack, or TSV for .tsv/.txt/.idf)")
	rootCmd.PersistentFlags().String("lexicon", "", "TOML file overriding the embedded word lists")
	rootCmd.PersistentFlags().Bool("stemming", false, "stem processed tokens")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("idf", rootCmd.PersistentFlags().Lookup("idf"))
	_ = viper.BindPFlag("lexicon", rootCmd.PersistentFlags().Lookup("lexicon"))
	_ = viper.BindPFlag("stemming", rootCmd.PersistentFlags().Lookup("stemming"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.LoadDotenv()

	v := viper.GetViper()
	config.SetDefaults(v)
	config.Bind(v)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pub2agents" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pub2agents")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && !quiet {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the validated settings of this run.
func loadConfig() (*config.Config, error) {
	cfg := config.FromViper(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
