package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"git.gammaspectra.live/P2Pool/md5sum/config"
	"git.gammaspectra.live/P2Pool/md5sum/preimage"
	"git.gammaspectra.live/P2Pool/md5sum/types"
	"git.gammaspectra.live/P2Pool/md5sum/utils"
)

func main() {
	target := flag.String("target", "", "Comma separated MD5 digests to find preimages for, lowercase hex")
	bound := flag.Uint64("bound", config.DefaultBound, "Number of candidates to try")
	workers := flag.Int("workers", 0, "Search goroutines, 0 uses all CPUs")
	timeout := flag.Duration("timeout", 0, "Stop searching after this long, 0 disables")
	progress := flag.Duration("progress", 0, "Log progress at this interval, 0 disables")
	sequential := flag.Bool("sequential", false, "Single threaded search comparing hex strings, one target only")
	configPath := flag.String("config", "", "Load the search job from a TOML file instead of flags")
	jsonOutput := flag.Bool("json", false, "Print results as JSON")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [-target <md5> | -config <file>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Brute forces short inputs whose MD5 digest matches the targets.\n")
		fmt.Fprintf(os.Stderr, "Candidate i is the little-endian base 256 representation of i.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	utils.SetDebug(*debug)
	utils.LogFile = utils.IsLogLevelDebug()

	var job *config.Search
	if *configPath != "" {
		var err error
		if job, err = config.Load(*configPath); err != nil {
			utils.Fatalf("%s", err)
		}
	} else {
		job = config.Default()
		job.Bound = *bound
		job.Workers = *workers
		job.SetDurations(*timeout, *progress)
		for _, s := range strings.Split(*target, ",") {
			if s = strings.TrimSpace(s); s != "" {
				job.Targets = append(job.Targets, s)
			}
		}
		if err := job.Validate(); err != nil {
			flag.Usage()
			utils.Fatalf("%s", err)
		}
	}

	if *sequential {
		if len(job.Targets) != 1 {
			utils.Fatalf("-sequential takes exactly one target")
		}
		candidate, found := preimage.FindPreimage(job.Targets[0], job.Bound)
		printResults([]preimage.Result{sequentialResult(job.Targets[0], candidate, found)}, *jsonOutput)
		return
	}

	targets, err := job.Digests()
	if err != nil {
		utils.Fatalf("%s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if t := job.Timeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	start := time.Now()
	results, err := preimage.Search(ctx, targets, job.Bound, preimage.Options{
		Workers:          job.Workers,
		ProgressInterval: job.ProgressInterval(),
	})
	if err != nil {
		utils.Logf("Search", "search interrupted after %s: %s", time.Since(start), err)
	} else {
		utils.Debugf("Search", "search finished in %s", time.Since(start))
	}

	printResults(results, *jsonOutput)
}

func sequentialResult(target string, candidate []byte, found bool) preimage.Result {
	r := preimage.Result{Target: types.MustDigestFromString(target), Found: found}
	if found {
		r.Index, _ = preimage.Index(candidate)
		r.Preimage = candidate
	}
	return r
}

func printResults(results []preimage.Result, jsonOutput bool) {
	if jsonOutput {
		buf, err := utils.MarshalJSONIndent(results, "  ")
		if err != nil {
			utils.Panicf("marshal: %s", err)
		}
		fmt.Printf("%s\n", buf)
		return
	}

	for _, r := range results {
		if r.Found {
			fmt.Printf("%s Your string: %q\n", r.Target, []byte(r.Preimage))
		} else {
			fmt.Printf("%s Not found\n", r.Target)
		}
	}
}
