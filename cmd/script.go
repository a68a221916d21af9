package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iancarlos335/table-sync/internal/engine"
	"github.com/iancarlos335/table-sync/internal/schema"
	"github.com/iancarlos335/table-sync/internal/source"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Generate .sql script files instead of executing against the target",
	Long: `Runs the same fetch, reconcile and generate pipeline as sync, but
writes one <table>.sql file per table into the output folder. The target
connection is still required: it supplies the schema that decides which
columns are written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		if cfg.OutputDir == "" {
			return fmt.Errorf("output_dir is required for script generation")
		}

		tables, err := source.LoadTableList(cfg.TableList)
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			return fmt.Errorf("table list %s names no tables", cfg.TableList)
		}

		targetDB, err := openTarget(cfg)
		if err != nil {
			return err
		}
		defer targetDB.Close()

		sourceDB, err := openSource(cfg)
		if err != nil {
			log.Printf("Warning: source connection failed: %v (nothing to fetch)", err)
			tables = nil
		} else {
			defer sourceDB.Close()
		}

		fmt.Printf("Scripting %d tables in %s mode into %s\n",
			len(tables), cfg.Mode, cfg.OutputDir)
		start := time.Now()

		writer := engine.NewScriptWriter(
			schema.NewReader(targetDB),
			source.NewFetcher(sourceDB, cfg.Source.Driver),
			engine.Options{
				Tables:       tables,
				FilterColumn: cfg.FilterColumn,
				FilterValue:  cfg.FilterValue,
				Mode:         cfg.OperationMode(),
				PrimaryKey:   cfg.PrimaryKey,
			},
			cfg.OutputDir,
		)
		outcomes, err := writer.Run()
		if err != nil {
			return err
		}

		printOutcomes("Script pass", outcomes)
		printSummary("Script pass", engine.Summarize(outcomes))
		log.Printf("Scripting done! Time elapsed: %s", time.Since(start))

		return nil
	},
}

func init() {
	RootCmd.AddCommand(scriptCmd)

	scriptCmd.Flags().String("out", "", "output folder for generated .sql files")
	viper.BindPFlag("output_dir", scriptCmd.Flags().Lookup("out"))
}
