// Package export serializes the entity stream for downstream ingestion.
//
// The primary format is JSONL: one record per line, field names following the
// serialized record contract. Large runs can compress the stream with zstd.
// A YAML manifest carries run metadata and the extraction counters.
package export

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"cxxtract/internal/model"
	"cxxtract/internal/uri"
)

// Options configures the record sink.
type Options struct {
	// Compress wraps the stream in a zstd encoder.
	Compress bool
	// PointIDs attaches the deterministic vector-store point ID
	// (uuid5 of the global URI) to every record.
	PointIDs bool
}

// WriteJSONL writes entities as JSON lines in stream order.
func WriteJSONL(w io.Writer, entities []model.ExtractedEntity, opts Options) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	for i := range entities {
		if opts.PointIDs {
			record := entities[i].ToMap()
			record["point_id"] = uri.DeterministicUUID(entities[i].GlobalURI)
			if err := enc.Encode(record); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(&entities[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes entities to a JSONL file, compressed when opts.Compress is
// set or the path ends in .zst.
func WriteFile(path string, entities []model.ExtractedEntity, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if opts.Compress || strings.HasSuffix(path, ".zst") {
		opts.Compress = true
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return err
		}
		if err := WriteJSONL(enc, entities, opts); err != nil {
			enc.Close()
			f.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	if err := WriteJSONL(f, entities, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSONL reads a JSONL stream (for verification and round-trips in
// downstream tooling). No compression is detected here: the caller wraps a
// compressed stream in a decoder before passing it in.
func ReadJSONL(r io.Reader) ([]model.ExtractedEntity, error) {
	var out []model.ExtractedEntity
	dec := json.NewDecoder(r)
	for {
		var e model.ExtractedEntity
		if err := dec.Decode(&e); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, err
		}
		out = append(out, e)
	}
}
