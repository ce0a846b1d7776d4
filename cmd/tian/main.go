package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tianhanzi/tian/pkg/config"
	"github.com/tianhanzi/tian/pkg/curriculum"
	"github.com/tianhanzi/tian/pkg/db"
	"github.com/tianhanzi/tian/pkg/dictionary"
	"github.com/tianhanzi/tian/pkg/export"
	"github.com/tianhanzi/tian/pkg/hsk"
	"github.com/tianhanzi/tian/pkg/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := &cobra.Command{
		Use:           "tian",
		Short:         "Build dependency-ordered hanzi curricula from HSK data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(buildCmd(ctx))
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func buildCmd(ctx context.Context) *cobra.Command {
	var (
		minUnlock int
		weighting string
		noSave    bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the level-assignment pipeline and persist the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if minUnlock > 0 {
				cfg.Curriculum.MinUnlock = minUnlock
			}
			if weighting != "" {
				cfg.Curriculum.Weighting = weighting
			}
			w, err := curriculum.ParseWeighting(cfg.Curriculum.Weighting)
			if err != nil {
				return err
			}

			dict, err := dictionary.LoadFile(cfg.Data.DictionaryPath)
			if err != nil {
				return fmt.Errorf("load dictionary: %w", err)
			}
			repo := hsk.NewRepository(cfg.Data.HSKDir, logger)

			builder := curriculum.NewBuilder(repo, dict, dict, logger)
			builder.Tiers = cfg.Curriculum.Tiers
			builder.MinUnlock = cfg.Curriculum.MinUnlock
			builder.Weighting = w
			builder.Workers = cfg.Curriculum.Workers

			res, err := builder.Build(ctx)
			if err != nil {
				return err
			}
			fmt.Print(res.Report.String())

			if noSave {
				return nil
			}
			conn, err := db.Open(cfg.Data.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := db.SaveResult(conn, res, cfg.Curriculum.Weighting, cfg.Curriculum.MinUnlock, cfg.Curriculum.Tiers); err != nil {
				return fmt.Errorf("save run: %w", err)
			}
			logger.Info("run saved", zap.String("run_id", res.RunID), zap.String("db", cfg.Data.DBPath))
			fmt.Printf("run %s saved to %s\n", res.RunID, cfg.Data.DBPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&minUnlock, "min-unlock", 0, "override the breakpoint threshold")
	cmd.Flags().StringVar(&weighting, "weighting", "", "override the scoring policy (count|tier|frequency)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the report without persisting the run")
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		runID string
		split int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-level populations for a persisted run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			conn, err := db.Open(cfg.Data.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			run, err := resolveRun(conn, runID)
			if err != nil {
				return err
			}

			fmt.Printf("run %s (%s)\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("weighting: %s  min_unlock: %d  tiers: %s  levels: %d\n",
				run.Weighting, run.MinUnlock, run.Tiers, run.Levels)
			fmt.Printf("skipped: %d without definition, %d without decomposition\n",
				run.SkippedNoDefinition, run.SkippedNoDecomposition)
			fmt.Printf("overflow: %d hanzi, %d words\n", run.OverflowHanzi, run.OverflowWords)

			totalComponents := 0
			for _, table := range []string{"components", "hanzi", "vocabulary"} {
				counts, err := db.LevelCounts(conn, run.ID, table)
				if err != nil {
					return err
				}
				fmt.Printf("%s:\n", table)
				for _, lc := range counts {
					fmt.Printf("  level %3d: %4d\n", lc.Level, lc.Count)
					if table == "components" {
						totalComponents += lc.Count
					}
				}
			}

			if split > 0 && run.Levels > 0 {
				fixed := (&curriculum.Report{Components: totalComponents}).FixedSplitLevels(split)
				fmt.Printf("fixed split of %d components/level would need %d levels (dynamic: %d)\n",
					split, fixed, run.Levels)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run id (default: latest)")
	cmd.Flags().IntVar(&split, "split", 5, "components per level for the fixed-split comparison (0 to disable)")
	return cmd
}

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List persisted runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			conn, err := db.Open(cfg.Data.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			runs, err := db.ListRuns(conn)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s  %s  weighting=%s min_unlock=%d levels=%d\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Weighting, r.MinUnlock, r.Levels)
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		runID string
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the leveled tables of a persisted run as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			conn, err := db.Open(cfg.Data.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			run, err := resolveRun(conn, runID)
			if err != nil {
				return err
			}
			outDir := dir
			if outDir == "" {
				outDir = cfg.Data.OutputDir
			}

			components, err := db.ComponentsForRun(conn, run.ID)
			if err != nil {
				return err
			}
			hanziRows, err := db.HanziForRun(conn, run.ID)
			if err != nil {
				return err
			}
			words, err := db.VocabularyForRun(conn, run.ID)
			if err != nil {
				return err
			}

			if err := export.WriteRun(outDir, components, hanziRows, words); err != nil {
				return err
			}
			logger.Info("run exported", zap.String("run_id", run.ID), zap.String("dir", outDir))
			fmt.Printf("exported run %s to %s\n", run.ID, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run id (default: latest)")
	cmd.Flags().StringVar(&dir, "out", "", "output directory (default: config output_dir)")
	return cmd
}

func resolveRun(conn db.DBExecutor, runID string) (db.Run, error) {
	if runID != "" {
		return db.GetRun(conn, runID)
	}
	return db.LatestRun(conn)
}
