package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

// Dump decomposes a serialized work result's strategy banks into one
// image per sampling strategy plus per-depth composites.
func Dump(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("usage: dump -d <out-dir> -s <stem> <result-file>")
	}

	wr, err := readResultFile(ctx.Args().First())
	if err != nil {
		return err
	}

	dir := ctx.String("dir")
	stem := ctx.String("stem")
	if err := wr.DumpStrategies(dir, stem); err != nil {
		// Partial exports are still useful; report what failed
		logger.Warningf("strategy dump incomplete: %v", err)
		return err
	}
	logger.Noticef("dumped strategy decomposition to %s/%s_*", dir, stem)
	return nil
}
