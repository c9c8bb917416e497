package region

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgrid/dgrid/cmd/util"
	"github.com/dgrid/dgrid/lib/region"
	"github.com/dgrid/dgrid/rpc/common"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for dGrid servers",
		Long:    "Measures the admin request throughput of a dGrid server. Regions can not be deleted, every run creates a new root region named __perf-<uuid> with its subregions.",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfNumThreads  = 10
	perfRegionCount = 100
	perfSkip        = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. get,create-sub)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "regions"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different regions to read in the get test"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	perfRegionCount = max(1, viper.GetInt("regions"))
	perfNumThreads = max(1, viper.GetInt("threads"))
	perfSkip = util.SplitList(viper.GetString("skip"))

	return nil
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for dGrid servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	c := util.GetCache()
	attrs := region.NewConfig()

	// every run works below its own root region
	root, err := regionAdmin.CreateRootRegion(c, "__perf-"+uuid.NewString(), attrs)
	if err != nil {
		return fmt.Errorf("failed to create perf root region: %w", err)
	}
	fmt.Printf("using root region %s\n\n", root.FullPath)

	fmt.Println("starting tests...")

	results := make(map[string]testing.BenchmarkResult)

	// region names must stay unique across the runs of one benchmark
	var created atomic.Int64

	createResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("create-sub") {
			return
		}

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				name := fmt.Sprintf("create-%d", created.Add(1))
				if _, err := regionAdmin.CreateSubregion(c, root.FullPath, name, attrs); err != nil {
					log.Printf("(create-sub) - error creating region: %v\n", err)
				}
			}
		})
	})

	results["create-sub"] = createResult
	printResult("create-sub", createResult)

	var paths []string
	if !shouldSkip("get") {
		if paths, err = createRegions(root.FullPath, "get", attrs); err != nil {
			return fmt.Errorf("(get) - error preparing regions: %w", err)
		}
	}

	getResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("get") {
			return
		}

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if _, _, err := regionAdmin.GetRegion(c, paths[counter%len(paths)]); err != nil {
					log.Printf("(get) - error getting region: %v\n", err)
				}
				counter++
			}
		})
	})

	results["get"] = getResult
	printResult("get", getResult)

	getMissingResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("get-missing") {
			return
		}

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				path := region.JoinPath(root.FullPath, fmt.Sprintf("missing-%d", counter%100))
				if _, _, err := regionAdmin.GetRegion(c, path); err != nil {
					log.Printf("(get-missing) - error getting region: %v\n", err)
				}
				counter++
			}
		})
	})

	results["get-missing"] = getMissingResult
	printResult("get-missing", getMissingResult)

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, util.GetClientConfig()); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// createRegions creates perfRegionCount subregions below a new region named prefix
// and returns their paths
func createRegions(rootPath, prefix string, attrs region.IAttributes) ([]string, error) {
	c := util.GetCache()
	parent, err := regionAdmin.CreateSubregion(c, rootPath, prefix, attrs)
	if err != nil {
		return nil, err
	}

	paths := make([]string, perfRegionCount)
	for i := range paths {
		info, err := regionAdmin.CreateSubregion(c, parent.FullPath, strconv.Itoa(i), attrs)
		if err != nil {
			return nil, err
		}
		paths[i] = info.FullPath
	}
	return paths, nil
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"CacheID", "Transport", "Threads", "Regions",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for test, result := range results {
		var nsPerOp, opsPerSec float64
		skipped := "true"

		if result.NsPerOp() != 0 {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			strings.Join(config.Transport.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.Transport.RetryCount),
			strconv.Itoa(config.Transport.ConnectionsPerEndpoint),
			strconv.FormatInt(int64(util.GetCache().ID()), 10),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfRegionCount),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
