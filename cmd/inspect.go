package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bidirectional-renderer/pkg/film"
	"github.com/df07/go-bidirectional-renderer/pkg/transport"
)

// readResultFile loads a serialized work result from disk using the
// stream's own header for configuration.
func readResultFile(path string) (*film.WorkResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return transport.ReceiveNew(f, film.NewBoxFilter(0.5))
}

// Inspect prints a serialized work result's configuration and a
// per-plane summary.
func Inspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("usage: inspect <result-file>")
	}

	wr, err := readResultFile(ctx.Args().First())
	if err != nil {
		return err
	}
	cfg := wr.Config()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Plane", "Shape", "Avg Luminance"})
	table.Append([]string{"Camera", wr.Camera().String(), fmtLuminance(wr.Camera())})
	if wr.Light() != nil {
		table.Append([]string{"Light", wr.Light().String(), fmtLuminance(wr.Light())})
	}
	if cfg.StrategyImages {
		for k := 1; k <= cfg.MaxDepth; k++ {
			for t := 0; t <= k+1; t++ {
				s := k + 1 - t
				plane := wr.StrategyPlane(s, t)
				if plane.Average().IsZero() {
					continue
				}
				table.Append([]string{
					fmt.Sprintf("Strategy k=%d s=%d t=%d", k, s, t),
					plane.String(),
					fmtLuminance(plane),
				})
			}
		}
	}
	table.Render()

	logger.Noticef("%s\nmaxDepth=%d sampleCount=%d crop=%dx%d\n%s",
		wr, cfg.MaxDepth, cfg.SampleCount, cfg.CropWidth, cfg.CropHeight, buf.String())
	return nil
}

func fmtLuminance(plane *film.Plane) string {
	return fmt.Sprintf("%.6f", plane.Average().Luminance())
}
