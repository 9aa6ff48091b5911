// Program jpull reads JSON documents and prints their values as one
// "path = value" line each, optionally restricted to a JSONPath selection.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jpull"
	"github.com/creachadair/jpull/bufpool"
	"github.com/creachadair/jpull/cmd/jpull/internal/config"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, config.Usage())
		return 0
	} else if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n%s", err, config.Usage())
		return 2
	}

	pool := bufpool.New(cfg.Pool)
	out := bufio.NewWriter(stdout)
	code := 0
	for _, name := range cfg.Inputs {
		if err := flattenFile(name, stdin, out, pool, cfg); err != nil {
			out.Flush()
			fmt.Fprintf(stderr, "jpull: %s: %v\n", name, err)
			code = 1
		}
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintf(stderr, "jpull: write output: %v\n", err)
		code = 1
	}
	if cfg.Stats {
		s := pool.Stats()
		fmt.Fprintf(stderr, "pool: live=%d pooled=%d hits=%d misses=%d grows=%d drops=%d\n",
			s.Live, s.Pooled, s.Hits, s.Misses, s.Grows, s.Drops)
	}
	return code
}

func flattenFile(name string, stdin io.Reader, w io.Writer, pool *bufpool.Pool, cfg *config.Config) error {
	var in io.Reader = stdin
	opts := &jpull.Options{Pool: pool}
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		in = f
		opts.CloseInput = true
	}
	r, err := jpull.NewReader(in, opts)
	if err != nil {
		return err // the input is closed
	}
	defer r.Close()
	return newFlattener(w, cfg.Expr(), cfg.Limit).flatten(r)
}
