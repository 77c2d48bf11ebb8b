package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/config"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/store"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "preview changes without committing")
	backup := flag.Bool("backup", false, "export the wage rate table to a timestamped CSV before mutating")
	worker := flag.String("worker", "", "reconcile a single worker id instead of the whole table")
	dedupe := flag.Bool("dedupe", false, "collapse duplicate wage rate rows before reconciling")
	flag.Parse()

	if err := run(*dryRun, *backup, *worker, *dedupe); err != nil {
		logrus.WithError(err).Error("reconciliation failed")
		os.Exit(1)
	}
}

func run(dryRun, backup bool, worker string, dedupe bool) error {
	cfg := config.Load()

	s, err := store.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return err
	}
	if err := s.AutoMigrate(); err != nil {
		return err
	}

	rates := core.DefaultRateTable()
	if cfg.RateTablePath != "" {
		rates, err = core.LoadRateTable(cfg.RateTablePath)
		if err != nil {
			return err
		}
	}

	reconciler := core.NewReconciler(s, rates, time.Now)

	analysis, err := reconciler.Analyze()
	if err != nil {
		return err
	}
	fmt.Printf("wage rate table: %d rows, %d workers, %d complete, %d incomplete, %d with duplicates\n",
		analysis.TotalRows, analysis.UniqueWorkers, analysis.CompleteRows,
		analysis.IncompleteRows, len(analysis.DuplicateWorkers))

	if backup && !dryRun {
		path, err := writeBackup(s, cfg.BackupDir)
		if err != nil {
			return fmt.Errorf("backup failed, aborting before any mutation: %w", err)
		}
		fmt.Printf("backup written to %s\n", path)
	}

	if worker != "" {
		return runSingle(reconciler, worker, dryRun, dedupe)
	}
	return runBatch(reconciler, dryRun, dedupe)
}

func runSingle(reconciler *core.Reconciler, worker string, dryRun, dedupe bool) error {
	if dedupe {
		result, err := reconciler.Deduplicate(worker, dryRun)
		if err != nil {
			return err
		}
		fmt.Printf("%s: kept row %d, removed %d duplicates\n", worker, result.KeptID, len(result.RemovedIDs))
		printResult(result.Result, dryRun)
		return nil
	}

	result, err := reconciler.ReconcileWorker(worker, dryRun)
	if err != nil {
		return err
	}
	printResult(result, dryRun)
	return nil
}

func runBatch(reconciler *core.Reconciler, dryRun, dedupe bool) error {
	if dedupe {
		results, err := reconciler.DeduplicateAll(dryRun)
		if err != nil {
			return fmt.Errorf("rolled back, no changes applied: %w", err)
		}
		for _, result := range results {
			fmt.Printf("%s: kept row %d, removed %d duplicates\n",
				result.WorkerID, result.KeptID, len(result.RemovedIDs))
		}
	}

	summary, err := reconciler.ReconcileAll(dryRun)
	if err != nil {
		return fmt.Errorf("rolled back, no changes applied: %w", err)
	}

	verb := "applied"
	if dryRun {
		verb = "would apply"
	}
	fmt.Printf("%s: %d created, %d updated, %d unchanged, %d errors\n",
		verb, summary.Created, summary.Updated, summary.Unchanged, len(summary.Errors))
	for _, werr := range summary.Errors {
		fmt.Printf("  %s: %s\n", werr.WorkerID, werr.Message)
	}
	changed := utils.Filter(summary.Results, func(r core.WorkerResult) bool {
		return r.Action != core.ActionUnchanged
	})
	for i := range changed {
		printResult(&changed[i], dryRun)
	}
	return nil
}

func printResult(result *core.WorkerResult, dryRun bool) {
	if result == nil {
		return
	}
	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}
	fmt.Printf("%s%s: %s", prefix, result.WorkerID, result.Action)
	if result.OverridePreserved {
		fmt.Printf(" (manual rate preserved)")
	}
	fmt.Println()
	for _, change := range result.Changes {
		fmt.Printf("    %s: %q -> %q\n", change.Field, change.From, change.To)
	}
}

func writeBackup(s *store.Store, dir string) (string, error) {
	rates, err := s.WageRates().All()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, core.BackupFilename(time.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := core.WriteWageRateCSV(f, rates); err != nil {
		return "", err
	}
	return path, nil
}
