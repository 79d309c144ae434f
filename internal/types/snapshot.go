package types

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

const interSnapshotSchema uint16 = 1

// interSnapshot mirrors Interner's storage as exported fields, msgpack-coded
// the same way the teacher's disk cache codes its DiskPayload (dcache.go): a
// flat struct of slices, versioned by a schema field for safe invalidation.
type interSnapshot struct {
	Schema   uint16
	Types    []Type
	Builtins Builtins
	Fns      []FnInfo
	Structs  []StructInfo
	Unions   []UnionInfo
	Aliases  []AliasInfo
	Params   []TypeParamInfo
	Foralls  []ForallInfo
	Tuples   []TupleInfo
}

// Snapshot encodes the interner's full state to msgpack bytes. Two
// snapshots taken from interners built the same way from the same input
// are byte-identical, which internal/irsnap's idempotence check relies on.
func (in *Interner) Snapshot() ([]byte, error) {
	snap := interSnapshot{
		Schema:   interSnapshotSchema,
		Types:    in.types,
		Builtins: in.builtins,
		Fns:      in.fns,
		Structs:  in.structs,
		Unions:   in.unions,
		Aliases:  in.aliases,
		Params:   in.params,
		Foralls:  in.foralls,
		Tuples:   in.tuples,
	}
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&snap); err != nil {
		return nil, fmt.Errorf("types: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// RestoreInterner decodes a snapshot produced by Snapshot into a live
// Interner. The structural index is rebuilt by replaying typeKey over every
// stored descriptor in allocation order, reproducing exactly the map
// internRaw would have built call by call.
func RestoreInterner(data []byte) (*Interner, error) {
	var snap interSnapshot
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("types: decode snapshot: %w", err)
	}
	if snap.Schema != interSnapshotSchema {
		return nil, fmt.Errorf("types: snapshot schema %d unsupported (want %d)", snap.Schema, interSnapshotSchema)
	}
	in := &Interner{
		types:    snap.Types,
		index:    make(map[typeKey]TypeID, len(snap.Types)),
		builtins: snap.Builtins,
		fns:      snap.Fns,
		structs:  snap.Structs,
		unions:   snap.Unions,
		aliases:  snap.Aliases,
		params:   snap.Params,
		foralls:  snap.Foralls,
		tuples:   snap.Tuples,
	}
	for i, t := range in.types {
		id, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("types: restored index overflow: %w", err))
		}
		in.index[typeKey(t)] = TypeID(id)
	}
	return in, nil
}
