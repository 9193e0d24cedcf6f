package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/framepipe/pkg/protocol"
)

type genOptions struct {
	width  int
	height int
	bpp    int
	count  int
	stop   bool
}

func newGenCmd() *cobra.Command {
	o := genOptions{width: 64, height: 48, bpp: 8, count: 1}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write synthetic frames to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.count < 0 || o.width < 0 || o.height < 0 || o.bpp < 0 || o.bpp > 255 {
				return fmt.Errorf("invalid frame parameters %dx%dx%d count %d", o.width, o.height, o.bpp, o.count)
			}
			size := protocol.PayloadSize(uint8(o.width/protocol.UnitPixels), uint8(o.height/protocol.UnitPixels), uint8(o.bpp))
			out := bufio.NewWriter(cmd.OutOrStdout())
			w := protocol.NewWriter(out)

			for i := 0; i < o.count; i++ {
				if err := w.WriteFrame(o.width, o.height, o.bpp, genPayload(size, i)); err != nil {
					return fmt.Errorf("frame %d: %w", i+1, err)
				}
			}
			if o.stop {
				if err := w.WriteStop(); err != nil {
					return err
				}
			}
			return out.Flush()
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&o.width, "width", o.width, "frame width in pixels (multiple of 8)")
	fs.IntVar(&o.height, "height", o.height, "frame height in pixels (multiple of 8)")
	fs.IntVar(&o.bpp, "bpp", o.bpp, "bits per pixel")
	fs.IntVar(&o.count, "count", o.count, "number of frames")
	fs.BoolVar(&o.stop, "stop", o.stop, "finish with a stop header")
	return cmd
}

// genPayload returns a deterministic pattern that never contains a header marker.
func genPayload(n, seq int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(0x80 + (i+seq)%0x40)
	}
	return p
}
