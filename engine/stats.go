package engine

import "github.com/rs/zerolog"

// Stats counts what the last search did.
type Stats struct {
	Nodes     uint64
	Leaves    uint64
	TTLookups uint64
	TTHits    uint64
	TTStores  uint64
	Cutoffs   uint64
}

func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("leaves", s.Leaves).
		Uint64("tt_lookups", s.TTLookups).
		Uint64("tt_hits", s.TTHits).
		Uint64("tt_stores", s.TTStores).
		Uint64("cutoffs", s.Cutoffs)
}
