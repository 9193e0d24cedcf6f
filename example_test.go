package framepipe_test

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bft-labs/framepipe"
	"github.com/bft-labs/framepipe/pkg/protocol"
)

// ExampleNew reads one 8x8 frame followed by a stop header.
func ExampleNew() {
	var stream bytes.Buffer
	w := protocol.NewWriter(&stream)
	_ = w.WriteFrame(8, 8, 8, make([]byte, protocol.PayloadSize(1, 1, 8)))
	_ = w.WriteStop()

	cfg := framepipe.DefaultConfig()
	cfg.Prefix = "OD: "

	r, err := framepipe.New(cfg, &stream, os.Stdout)
	if err != nil {
		fmt.Printf("failed to create reader: %v\n", err)
		return
	}
	if err := r.Run(); err != nil {
		fmt.Printf("run: %v\n", err)
	}

	// Output:
	// OD: ready
	// OD: reading 64 bytes
	// OD: read: 64
	// OD: ready
	// OD: exiting
}

// Example_desync shows the lines reported for garbage between frames.
func Example_desync() {
	stream := bytes.NewReader([]byte{'x', 'A', 1, 1, 8, 1, 'Q'})
	_ = framepipe.Run(stream, os.Stdout)

	// Output:
	// ready
	// unexpected input (A): 120
	// unexpected input (Z)
	// exiting
}
