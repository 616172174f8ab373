// Package transport ships serialized work results between rendering
// workers and a coordinating process. Results are large (every strategy
// plane is full resolution) but mostly zero away from the assigned
// block, so the wire form is zstd-compressed.
package transport

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-bidirectional-renderer/pkg/film"
)

// Encoders and decoders are expensive to build, so they are pooled and
// reset per call.
var encPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

var decPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

// Send writes a work result to the stream as one compressed frame.
func Send(w io.Writer, wr *film.WorkResult) error {
	enc := encPool.Get().(*zstd.Encoder)
	enc.Reset(w)

	if err := wr.Save(enc); err != nil {
		_ = enc.Close()
		encPool.Put(enc)
		return fmt.Errorf("transport: sending work result: %w", err)
	}
	if err := enc.Close(); err != nil {
		encPool.Put(enc)
		return fmt.Errorf("transport: flushing work result: %w", err)
	}

	encPool.Put(enc)
	return nil
}

// Receive fills an existing work result from the stream. The result's
// configuration must match the sender's; mismatches surface as protocol
// errors from film.WorkResult.Load.
func Receive(r io.Reader, wr *film.WorkResult) error {
	dec := decPool.Get().(*zstd.Decoder)
	if err := dec.Reset(r); err != nil {
		decPool.Put(dec)
		return fmt.Errorf("transport: resetting decoder: %w", err)
	}

	err := wr.Load(dec)
	decPool.Put(dec)
	if err != nil {
		return fmt.Errorf("transport: receiving work result: %w", err)
	}
	return nil
}

// ReceiveNew reads a work result without prior knowledge of the
// sender's configuration, reconstructing it from the stream's header.
func ReceiveNew(r io.Reader, filter film.Filter) (*film.WorkResult, error) {
	dec := decPool.Get().(*zstd.Decoder)
	if err := dec.Reset(r); err != nil {
		decPool.Put(dec)
		return nil, fmt.Errorf("transport: resetting decoder: %w", err)
	}

	wr, err := film.ReadResult(dec, filter)
	decPool.Put(dec)
	if err != nil {
		return nil, fmt.Errorf("transport: receiving work result: %w", err)
	}
	return wr, nil
}
