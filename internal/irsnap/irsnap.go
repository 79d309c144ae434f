// Package irsnap serializes and replays a CPS graph (internal/cir.World) to
// msgpack bytes, grounded on the teacher's disk cache (internal/driver's
// DiskCache/DiskPayload): a schema-versioned struct, encoded with
// msgpack.NewEncoder/Decoder, written to a temp file and atomically renamed
// into place. It backs the emitter's determinism property directly: two
// snapshots taken from independent runs over the same AST must decode to an
// identical graph, and Encode's own output for both runs must match
// byte-for-byte.
package irsnap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"articc/internal/cir"
	"articc/internal/types"
)

const schemaVersion uint16 = 1

// Snapshot is the on-disk/in-memory serialized form of one module's CPS
// graph: every cir.Def node plus the type interner snapshot needed to
// resolve the TypeIDs those nodes carry.
type Snapshot struct {
	Schema uint16
	Defs   []cir.Def
	Types  []byte
}

// Encode captures world's full node list and its type interner into a
// Snapshot and serializes it to msgpack bytes.
func Encode(world *cir.World) ([]byte, error) {
	typeBytes, err := world.Types.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("irsnap: snapshot types: %w", err)
	}
	snap := Snapshot{
		Schema: schemaVersion,
		Defs:   world.Defs(),
		Types:  typeBytes,
	}
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&snap); err != nil {
		return nil, fmt.Errorf("irsnap: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode restores a cir.World from bytes produced by Encode.
func Decode(data []byte) (*cir.World, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("irsnap: decode: %w", err)
	}
	if snap.Schema != schemaVersion {
		return nil, fmt.Errorf("irsnap: snapshot schema %d unsupported (want %d)", snap.Schema, schemaVersion)
	}
	tin, err := types.RestoreInterner(snap.Types)
	if err != nil {
		return nil, fmt.Errorf("irsnap: restore types: %w", err)
	}
	return cir.LoadWorld(tin, snap.Defs), nil
}

// Save writes world's snapshot to path, replacing any existing file
// atomically via a temp-file-then-rename, matching the teacher's
// DiskCache.Put.
func Save(path string, world *cir.World) error {
	data, err := Encode(world)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("irsnap: mkdir %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "irsnap-*.mp")
	if err != nil {
		return fmt.Errorf("irsnap: create temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("irsnap: write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("irsnap: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("irsnap: rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}

// Load reads and decodes a snapshot previously written by Save.
func Load(path string) (*cir.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("irsnap: read %s: %w", path, err)
	}
	return Decode(data)
}
