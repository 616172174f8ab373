package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bidirectional-renderer/pkg/renderer"
)

// Develop exports a serialized work result's combined camera and light
// planes as a PNG.
func Develop(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("usage: develop -o <out.png> <result-file>")
	}

	wr, err := readResultFile(ctx.Args().First())
	if err != nil {
		return err
	}

	img := renderer.Develop(wr)

	out, err := os.Create(ctx.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return err
	}
	logger.Noticef("wrote %s (%dx%d)", ctx.String("out"), img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
