// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/argus-foundation/argus/lib/codec"
)

// Compression identifies the algorithm used for a chunk payload.
// Wire constants — values never change meaning.
type Compression uint8

const (
	// CompressionNone stores the payload as-is.
	CompressionNone Compression = 0

	// CompressionLZ4 is the fast default for event batches.
	CompressionLZ4 Compression = 1

	// CompressionZstd trades CPU for ratio on large forensic dumps.
	CompressionZstd Compression = 2
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Signer signs a chunk digest. The production implementation delegates
// to TPM hardware and lives out of tree; Unsigned is the in-tree
// stand-in that leaves the signature empty.
type Signer interface {
	// Sign returns a signature over the 32-byte chunk digest.
	Sign(digest [32]byte) ([]byte, error)
}

// Unsigned is a Signer producing no signature. Chunk integrity is
// still verifiable via the digest; authenticity is not.
type Unsigned struct{}

// Sign returns an empty signature.
func (Unsigned) Sign([32]byte) ([]byte, error) { return nil, nil }

// Chunk is a sealed batch of events for forensic export. The payload
// is the canonical CBOR encoding of the event slice, optionally
// compressed; Digest is BLAKE3 over the uncompressed payload, so the
// digest is independent of the compression choice and reproducible
// from the decoded events.
type Chunk struct {
	// Events is the (possibly compressed) CBOR payload.
	Events []byte `cbor:"events"`

	// UncompressedSize is the payload size before compression.
	UncompressedSize uint32 `cbor:"size"`

	// Compression tags the payload encoding.
	Compression Compression `cbor:"compression"`

	// Count is the number of events in the chunk.
	Count uint32 `cbor:"count"`

	// Digest is BLAKE3-256 over the uncompressed CBOR payload.
	Digest [32]byte `cbor:"digest"`

	// Signature is the Signer's output over Digest. Empty when the
	// chunk was sealed with Unsigned.
	Signature []byte `cbor:"signature,omitempty"`
}

// ErrDigestMismatch is returned by OpenChunk when the payload does
// not hash to the recorded digest.
var ErrDigestMismatch = errors.New("telemetry: chunk digest mismatch")

// SealChunk encodes events into a chunk with the given compression
// and signs its digest. Empty event batches cannot be sealed.
func SealChunk(events []Event, compression Compression, signer Signer) (*Chunk, error) {
	if len(events) == 0 {
		return nil, errors.New("telemetry: cannot seal empty chunk")
	}
	if signer == nil {
		signer = Unsigned{}
	}

	payload, err := codec.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("telemetry: encoding chunk events: %w", err)
	}

	digest := blake3.Sum256(payload)
	signature, err := signer.Sign(digest)
	if err != nil {
		return nil, fmt.Errorf("telemetry: signing chunk: %w", err)
	}

	stored, storedCompression, err := compress(payload, compression)
	if err != nil {
		return nil, err
	}

	return &Chunk{
		Events:           stored,
		UncompressedSize: uint32(len(payload)),
		Compression:      storedCompression,
		Count:            uint32(len(events)),
		Digest:           digest,
		Signature:        signature,
	}, nil
}

// OpenChunk decompresses a chunk, verifies its digest, and decodes
// the events. Signature verification is the consumer's concern — it
// needs the signer's public material, which this package does not
// hold.
func OpenChunk(chunk *Chunk) ([]Event, error) {
	payload, err := decompress(chunk.Events, chunk.Compression, int(chunk.UncompressedSize))
	if err != nil {
		return nil, err
	}

	if blake3.Sum256(payload) != chunk.Digest {
		return nil, ErrDigestMismatch
	}

	var events []Event
	if err := codec.Unmarshal(payload, &events); err != nil {
		return nil, fmt.Errorf("telemetry: decoding chunk events: %w", err)
	}
	if uint32(len(events)) != chunk.Count {
		return nil, fmt.Errorf("telemetry: chunk count %d, decoded %d events", chunk.Count, len(events))
	}
	return events, nil
}

// EncodeChunk serializes a sealed chunk to its on-disk CBOR form.
func EncodeChunk(chunk *Chunk) ([]byte, error) {
	return codec.Marshal(chunk)
}

// DecodeChunk parses a chunk from its on-disk CBOR form. The chunk is
// not verified; pass it to OpenChunk.
func DecodeChunk(data []byte) (*Chunk, error) {
	var chunk Chunk
	if err := codec.Unmarshal(data, &chunk); err != nil {
		return nil, fmt.Errorf("telemetry: decoding chunk: %w", err)
	}
	return &chunk, nil
}

// zstd coders are reused across chunks; both are safe for concurrent
// use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("telemetry: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("telemetry: zstd decoder initialization failed: " + err.Error())
	}
}

// compress applies the requested algorithm, falling back to
// CompressionNone when the payload does not shrink.
func compress(payload []byte, compression Compression) ([]byte, Compression, error) {
	switch compression {
	case CompressionNone:
		return payload, CompressionNone, nil

	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(payload))
		destination := make([]byte, bound)
		written, err := lz4.CompressBlock(payload, destination, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("telemetry: lz4 compress: %w", err)
		}
		if written == 0 || written >= len(payload) {
			// Incompressible; store raw.
			return payload, CompressionNone, nil
		}
		return destination[:written], CompressionLZ4, nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(payload, nil)
		if len(compressed) >= len(payload) {
			return payload, CompressionNone, nil
		}
		return compressed, CompressionZstd, nil

	default:
		return nil, 0, fmt.Errorf("telemetry: unsupported compression: %d", compression)
	}
}

func decompress(stored []byte, compression Compression, uncompressedSize int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(stored) != uncompressedSize {
			return nil, fmt.Errorf("telemetry: raw chunk size %d, recorded %d", len(stored), uncompressedSize)
		}
		return stored, nil

	case CompressionLZ4:
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(stored, destination)
		if err != nil {
			return nil, fmt.Errorf("telemetry: lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("telemetry: lz4 decompress: got %d bytes, recorded %d", read, uncompressedSize)
		}
		return destination, nil

	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(stored, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("telemetry: zstd decompress: %w", err)
		}
		if len(result) != uncompressedSize {
			return nil, fmt.Errorf("telemetry: zstd decompress: got %d bytes, recorded %d", len(result), uncompressedSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("telemetry: unsupported compression: %d", compression)
	}
}
