package commands

import (
	"fmt"
	"os"
	"sync"

	"github.com/BanisharifM/CFGs/internal/config"
	"github.com/BanisharifM/CFGs/internal/log"
	"github.com/BanisharifM/CFGs/internal/scanner"
	"github.com/BanisharifM/CFGs/pkg/cache"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every OpenMP C file under a benchmark tree",
	Long: `Scans a directory tree (e.g. a BOTS checkout) for C files containing
OpenMP directives and runs the generation pipeline on each. Files are
independent, so they are processed by a pool of workers. Results are
cached by content hash when a cache path is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]

		conf, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if out, _ := cmd.Flags().GetString("output"); out != "" {
			conf.OutputDir = out
		}
		if cmd.Flags().Changed("jobs") {
			conf.Jobs, _ = cmd.Flags().GetInt("jobs")
		}
		if path, _ := cmd.Flags().GetString("cache"); path != "" {
			conf.CachePath = path
		}

		level := log.InfoLevel
		if conf.Verbose {
			level = log.DebugLevel
		}
		logger := log.New(log.Options{Level: level})

		files, err := scanner.New(scanner.DefaultOptions()).Scan(root)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", root, err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no OpenMP files found under %s", root)
		}
		logger.Info("found OpenMP files", "count", len(files))

		var results *cache.ResultCache
		if conf.CachePath != "" {
			results = cache.New(cache.Options{})
			if err := results.LoadFile(conf.CachePath); err != nil {
				logger.Warn("ignoring unreadable cache", "path", conf.CachePath, "error", err)
				results = cache.New(cache.Options{})
			}
		}

		jobs := conf.Jobs
		if jobs < 1 {
			jobs = 1
		}
		if jobs > len(files) {
			jobs = len(files)
		}

		type outcome struct {
			file scanner.FileInfo
			err  error
		}
		work := make(chan scanner.FileInfo)
		outcomes := make(chan outcome)

		var wg sync.WaitGroup
		for w := 0; w < jobs; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for fi := range work {
					outcomes <- outcome{file: fi, err: processFile(fi, conf, results, logger)}
				}
			}()
		}
		go func() {
			for _, fi := range files {
				work <- fi
			}
			close(work)
			wg.Wait()
			close(outcomes)
		}()

		succeeded, failed := 0, 0
		for out := range outcomes {
			if out.err != nil {
				failed++
				logger.Error("processing failed", "file", out.file.Path, "error", out.err)
				continue
			}
			succeeded++
		}

		if results != nil {
			if err := results.SaveFile(conf.CachePath); err != nil {
				logger.Warn("saving cache failed", "error", err)
			}
		}

		fmt.Printf("Batch completed: %d succeeded, %d failed\n", succeeded, failed)
		fmt.Printf("Results in: %s\n", conf.OutputDir)
		if failed > 0 && succeeded == 0 {
			return fmt.Errorf("all %d files failed", failed)
		}
		return nil
	},
}

// processFile runs the pipeline on one discovered file, consulting the
// result cache when enabled.
func processFile(fi scanner.FileInfo, conf *config.Config, results *cache.ResultCache, logger log.Logger) error {
	data, err := os.ReadFile(fi.FullPath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	hash := cache.HashContent(data)
	if results != nil {
		if cached, found := results.Get(hash); found {
			logger.Debug("cache hit", "file", fi.Path, "pattern", cached.Pattern)
			_, err := writeDOTString(cached.DOT, conf.OutputDir, fi.FullPath)
			return err
		}
	}

	res, err := runPipeline(string(data))
	if err != nil {
		return err
	}

	dotPath, err := writeDOT(res.Graph, conf.OutputDir, fi.FullPath)
	if err != nil {
		return err
	}
	logger.Info("generated CFG", "file", fi.Path, "pattern", res.Tag, "dot", dotPath)

	if results != nil {
		results.Set(cache.Result{
			ContentHash: hash,
			Pattern:     string(res.Tag),
			DOT:         res.Graph.DOT(),
			Checks:      res.Report.Checks(),
		})
	}
	return nil
}

func init() {
	batchCmd.Flags().StringP("output", "o", "", "Output directory (overrides config)")
	batchCmd.Flags().Int("jobs", 0, "Worker count (overrides config)")
	batchCmd.Flags().String("cache", "", "Result cache path (overrides config)")
	RootCmd.AddCommand(batchCmd)
}
