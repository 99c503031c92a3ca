// Command erasure is a CLI shell around lukechampine.com/erasure: it reads
// and writes shards as plain files named <prefix>.d<i> / <prefix>.c<j>, and
// otherwise just wires flag values into the library's Config, Encode, and
// Repair.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"
	"gitlab.com/NebulousLabs/log"
)

func main() {
	os.Exit(run(os.Args, os.Stderr))
}

// run builds and executes the cli.App against args, returning the process
// exit code. Every CLI-level error funnels through here so main can stay a
// one-liner.
func run(args []string, stderr io.Writer) int {
	app := cli.NewApp()
	app.Name = "erasure"
	app.Usage = "Reed-Solomon erasure coding over file shards"
	app.Writer = stderr
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "n", Value: -1, Usage: "data shard count"},
		cli.IntFlag{Name: "m", Value: -1, Usage: "coding shard count"},
		cli.StringFlag{Name: "p", Usage: "shard filename prefix"},
		cli.IntFlag{Name: "w", Value: 8, Usage: "field width: 4, 8, or 16"},
		cli.BoolFlag{Name: "s", Usage: "use the Cauchy distribution matrix (default: corrected Vandermonde)"},
		cli.BoolFlag{Name: "c", Usage: "encode: read prefix.d0..d(k-1), write prefix.c0..c(m-1)"},
		cli.BoolFlag{Name: "r", Usage: "repair: reconstruct any missing prefix.d* from survivors, then encode"},
		cli.BoolFlag{Name: "u", Usage: "run the built-in self-tests and exit"},
		cli.StringFlag{Name: "k", Usage: "optional bbolt manifest recording shard survival state between -r and -c"},
		cli.BoolFlag{Name: "v", Usage: "verbose logging"},
	}

	exitCode := 0
	app.Action = func(c *cli.Context) error {
		code, err := runApp(c, stderr)
		exitCode = code
		return err
	}

	if err := app.Run(args); err != nil {
		fmt.Fprintln(stderr, err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

// runApp does the real work once flags are parsed: self-test, or
// repair-then-encode. It returns the exit code to use alongside any error
// worth printing.
func runApp(c *cli.Context, stderr io.Writer) (int, error) {
	doUtest := c.Bool("u")
	doEncode := c.Bool("c")
	doRepair := c.Bool("r")
	verbose := c.Bool("v")

	if !(doUtest || doEncode || doRepair) {
		cli.ShowAppHelp(c)
		return 1, nil
	}

	logger, err := log.NewLogger(ioutil.Discard)
	if verbose {
		logger, err = log.NewLogger(stderr)
	}
	if err != nil {
		return 1, fmt.Errorf("logger: %w", err)
	}
	defer logger.Close()

	if doUtest {
		if err := selfTest(); err != nil {
			return 1, fmt.Errorf("self-test failed: %w", err)
		}
		fmt.Fprintln(stderr, "self-test passed")
		return 0, nil
	}

	n, m, prefix := c.Int("n"), c.Int("m"), c.String("p")
	if n <= 0 || m <= 0 || prefix == "" {
		cli.ShowAppHelp(c)
		return 1, nil
	}

	kind := vandermondeKind
	if c.Bool("s") {
		kind = cauchyKind
	}

	var man *manifest
	if path := c.String("k"); path != "" {
		mf, err := openManifest(path)
		if err != nil {
			return 1, fmt.Errorf("manifest: %w", err)
		}
		defer mf.Close()
		man = mf
	}

	cfg := cliConfig{
		DataShards:   n,
		ParityShards: m,
		Width:        uint(c.Int("w")),
		Kind:         kind,
		Prefix:       prefix,
		Manifest:     man,
		Logger:       logger,
		Verbose:      verbose,
	}

	if doRepair {
		logger.Println("repairing shards with prefix", cfg.Prefix)
		if err := runRepair(cfg); err != nil {
			return 1, fmt.Errorf("repair: %w", err)
		}
	}

	logger.Println("encoding shards with prefix", cfg.Prefix)
	if err := runEncode(cfg); err != nil {
		return 1, fmt.Errorf("encode: %w", err)
	}
	return 0, nil
}
