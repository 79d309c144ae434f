package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the language's primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Nothing TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Float   TypeID
	Char    TypeID
	Mem     TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors for
// structural kinds, and by straightforward allocation for nominal ones.
// Nominal side tables (structs/unions/aliases/params/foralls/fns/tuples)
// are append-only arenas indexed by Type.Payload.
//
// Invalid is interned first and lands on TypeID 0, the same value as
// NoTypeID: an unresolved type slot and the error type read identically,
// which is exactly the absorption behaviour check.cpp relies on.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins

	fns     []FnInfo
	structs []StructInfo
	unions  []UnionInfo
	aliases []AliasInfo
	params  []TypeParamInfo
	foralls []ForallInfo
	tuples  []TupleInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.fns = append(in.fns, FnInfo{})
	in.structs = append(in.structs, StructInfo{})
	in.unions = append(in.unions, UnionInfo{})
	in.aliases = append(in.aliases, AliasInfo{})
	in.params = append(in.params, TypeParamInfo{})
	in.foralls = append(in.foralls, ForallInfo{})
	in.tuples = append(in.tuples, TupleInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Nothing = in.Intern(Type{Kind: KindNothing})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.Mem = in.Intern(Type{Kind: KindMem})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided structural descriptor has a stable TypeID.
// Nominal kinds (Struct/Union/Alias/GenericParam/Forall) must go through
// their Register* constructor instead, since each declaration site needs
// its own identity regardless of structural shape.
func (in *Interner) Intern(t Type) TypeID {
	switch t.Kind {
	case KindStruct, KindUnion, KindAlias, KindGenericParam, KindForall:
		panic("types: nominal kind must use its Register* constructor")
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to storage without consulting the map,
// used both by Intern's miss path and by nominal Register* constructors
// (whose identity is the Payload slot, not the structural key).
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32
	Payload uint32
}
