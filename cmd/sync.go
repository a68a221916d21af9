package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iancarlos335/table-sync/internal/engine"
	"github.com/iancarlos335/table-sync/internal/schema"
	"github.com/iancarlos335/table-sync/internal/source"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replicate table data from source to target",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		tables, err := source.LoadTableList(cfg.TableList)
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			return fmt.Errorf("table list %s names no tables", cfg.TableList)
		}

		// The target connection is mandatory; without it no table can be
		// processed at all.
		targetDB, err := openTarget(cfg)
		if err != nil {
			return err
		}
		defer targetDB.Close()

		// A failing source connection only empties the fetch phase; the run
		// still reports its (zero-table) summaries.
		sourceDB, err := openSource(cfg)
		if err != nil {
			log.Printf("Warning: source connection failed: %v (nothing to fetch)", err)
			tables = nil
		} else {
			defer sourceDB.Close()
		}

		fmt.Printf("Syncing %d tables in %s mode (filter %s = %q)\n",
			len(tables), cfg.Mode, cfg.FilterColumn, cfg.FilterValue)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(max(len(tables), 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Processing: "
		})

		orch := engine.NewOrchestrator(
			schema.NewReader(targetDB),
			source.NewFetcher(sourceDB, cfg.Source.Driver),
			engine.NewApplier(engine.NewConn(targetDB)),
			engine.Options{
				Tables:       tables,
				FilterColumn: cfg.FilterColumn,
				FilterValue:  cfg.FilterValue,
				Mode:         cfg.OperationMode(),
				PrimaryKey:   cfg.PrimaryKey,
				PreDelete:    cfg.PreDelete,
				OnTableDone:  func() { bar.Incr() },
			},
		)
		report := orch.Run()

		uiprogress.Stop()

		printOutcomes("Data pass", report.Data)
		if cfg.PreDelete {
			printSummary("Pre-delete pass", report.PreDeleteSummary())
		}
		printSummary("Data pass", report.DataSummary())
		log.Printf("Sync done! Time elapsed: %s", time.Since(start))

		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("pre-delete", false, "delete matching target rows before applying data")
	viper.BindPFlag("pre_delete", syncCmd.Flags().Lookup("pre-delete"))
}

func openTarget(cfg *Config) (*sql.DB, error) {
	dsn, err := cfg.Target.BuildDSN()
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	db, err := sql.Open(cfg.Target.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open target: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to target: %w", err)
	}
	return db, nil
}

func openSource(cfg *Config) (*sql.DB, error) {
	dsn, err := cfg.Source.BuildDSN()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	db, err := sql.Open(cfg.Source.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to source: %w", err)
	}
	return db, nil
}

// printOutcomes lists every table's result for one pass.
func printOutcomes(pass string, outcomes []engine.Outcome) {
	fmt.Printf("\n📊 %s results (table order):\n", pass)
	for i, o := range outcomes {
		icon := "✓"
		status := "OK"
		switch {
		case o.Skipped:
			icon = "-"
			status = "SKIPPED (" + o.Note + ")"
		case !o.Committed:
			icon = "!"
			status = fmt.Sprintf("FAILED [%s] %s", o.Kind, o.Note)
		}
		extra := ""
		if o.SkippedRows > 0 {
			extra = fmt.Sprintf(" (%d rows skipped)", o.SkippedRows)
		}
		fmt.Printf("[%s] [%02d/%02d] %-20s : %d rows%s - %s\n",
			icon, i+1, len(outcomes), o.Table, o.RowsAffected, extra, status)
	}
}

// printSummary prints one pass-level count line; failures are derived by
// subtraction.
func printSummary(pass string, s engine.PassSummary) {
	fmt.Printf("%s: attempted %d, succeeded %d, failed %d, skipped %d\n",
		pass, s.Attempted, s.Succeeded, s.Failed(), s.Skipped)
}
