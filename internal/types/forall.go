package types

import (
	"fmt"

	"fortio.org/safecast"
)

// ForallInfo stores metadata for a polymorphic type scheme: a set of bound
// type parameters closing over a body type that mentions them. Function and
// let declarations with type parameters carry a Forall as their declared
// type; instantiation substitutes Params with concrete arguments inside Body.
type ForallInfo struct {
	Params []TypeID // KindGenericParam TypeIDs bound by this scheme
	Body   TypeID
}

// RegisterForall allocates a new polymorphic type scheme.
func (in *Interner) RegisterForall(params []TypeID, body TypeID) TypeID {
	slot := in.appendForallInfo(ForallInfo{Params: cloneTypeArgs(params), Body: body})
	return in.internRaw(Type{Kind: KindForall, Payload: slot})
}

// ForallInfo returns metadata for the provided forall TypeID.
func (in *Interner) ForallInfo(id TypeID) (*ForallInfo, bool) {
	if id == NoTypeID {
		return nil, false
	}
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindForall {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.foralls) {
		return nil, false
	}
	return &in.foralls[tt.Payload], true
}

func (in *Interner) appendForallInfo(info ForallInfo) uint32 {
	if in.foralls == nil {
		in.foralls = append(in.foralls, ForallInfo{})
	}
	in.foralls = append(in.foralls, ForallInfo{
		Params: cloneTypeArgs(info.Params),
		Body:   info.Body,
	})
	slot, err := safecast.Conv[uint32](len(in.foralls) - 1)
	if err != nil {
		panic(fmt.Errorf("forall info overflow: %w", err))
	}
	return slot
}
