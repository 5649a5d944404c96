package domain

import (
	"encoding/json"
	"time"
)

// CurrencyBlock holds per-venue quote sets for one currency. DerivedFrom is empty
// for the primary currency.
type CurrencyBlock struct {
	DerivedFrom string
	Venues      map[string]QuoteSet
}

func (b CurrencyBlock) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(b.Venues)+1)
	for name, qs := range b.Venues {
		m[name] = qs
	}
	if b.DerivedFrom != "" {
		m["derivedFrom"] = b.DerivedFrom
	}
	return json.Marshal(m)
}

// Snapshot is the combined quote table published at /p2p.
type Snapshot struct {
	Timestamp  time.Time
	Primary    string
	Currencies map[string]CurrencyBlock
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Currencies)+1)
	for code, b := range s.Currencies {
		m[code] = b
	}
	m["timestamp"] = s.Timestamp.UnixMilli()
	return json.Marshal(m)
}
