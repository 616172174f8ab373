package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bidirectional-renderer/pkg/transport"
)

// Merge reduces several serialized partial results of identical
// configuration into one. Typical use: folding per-pass partials of
// the same work unit that were collected from different workers.
func Merge(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return fmt.Errorf("usage: merge -o <out-file> <result-file> <result-file> ...")
	}

	master, err := readResultFile(ctx.Args().First())
	if err != nil {
		return err
	}

	for _, path := range ctx.Args().Tail() {
		partial, err := readResultFile(path)
		if err != nil {
			return err
		}
		if err := master.Put(partial); err != nil {
			return fmt.Errorf("merging %s: %w", path, err)
		}
		logger.Infof("merged %s", path)
	}

	out, err := os.Create(ctx.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()

	if err := transport.Send(out, master); err != nil {
		return err
	}
	logger.Noticef("wrote %s (%s)", ctx.String("out"), master)
	return nil
}
