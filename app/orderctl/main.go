// Command orderctl runs the order extraction engine over a saved transcript,
// without the server, its stores or its queues.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "orderctl",
	Short: "Offline tools for the BookWise order extraction engine",
	Long: `orderctl reads a transcript fixture (YAML or JSON) and prints what the
extraction engine recovers from it. Use it to reproduce a room's order from a
backup or to check new phrasings against the rule chains.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./orderctl.yaml or ~/.config/bookwise/orderctl.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "transcript fixture (.yaml, .yml or .json)")
	_ = rootCmd.MarkPersistentFlagRequired("file")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("orderctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bookwise"))
		}
	}

	viper.SetEnvPrefix("ORDERCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
