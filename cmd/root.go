package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "table-sync",
	Short: "Schema-aware table data replication for SQL Server",
	Long: `
  _____  _    ____  _     _____   ______   ___   _  ____
 |_   _|/ \  | __ )| |   | ____| / ___\ \ / / \ | |/ ___|
   | | / _ \ |  _ \| |   |  _|   \___ \\ V /|  \| | |
   | |/ ___ \| |_) | |___| |___   ___) || | | |\  | |___
   |_/_/   \_\____/|_____|_____| |____/ |_| |_| \_|\____|

TABLE SYNC - Replicates table data from a source database into a
target whose schema is authoritative. Columns are reconciled against
the target's live catalog, values are coerced per column type, and
each table is applied in its own transaction.
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./table-sync.yaml)")
	RootCmd.PersistentFlags().String("tables-file", "", "path to the table-list file (one table per line)")
	RootCmd.PersistentFlags().String("filter-column", "", "source filter column (equality predicate)")
	RootCmd.PersistentFlags().String("filter-value", "", "source filter value (bound as a parameter)")
	RootCmd.PersistentFlags().String("mode", "INSERT", "operation mode: INSERT or UPDATE")
	RootCmd.PersistentFlags().String("primary-key", "", "primary key column for UPDATE mode")

	viper.BindPFlag("table_list", RootCmd.PersistentFlags().Lookup("tables-file"))
	viper.BindPFlag("filter_column", RootCmd.PersistentFlags().Lookup("filter-column"))
	viper.BindPFlag("filter_value", RootCmd.PersistentFlags().Lookup("filter-value"))
	viper.BindPFlag("mode", RootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("primary_key", RootCmd.PersistentFlags().Lookup("primary-key"))

	viper.SetDefault("mode", "INSERT")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("table-sync")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
