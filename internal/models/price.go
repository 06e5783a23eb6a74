package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PricePair holds the quoted sell and buy price for one denomination.
type PricePair struct {
	Sell float64 `json:"sell"`
	Buy  float64 `json:"buy"`
}

// Denomination is a standard gold weight (grams) with its current quote.
// Label keeps the weight exactly as quoted upstream ("0.5", "1", "10").
type Denomination struct {
	Label  string
	Weight decimal.Decimal
	PricePair
}

// PriceTable is the set of quoted denominations, ordered by ascending weight.
// On the wire it is a JSON object keyed by weight label; the upstream source
// emits keys in ascending weight order and the ordering is meaningful (the
// portfolio valuation uses the first, i.e. smallest, denomination), so the
// table is kept as an ordered slice rather than a map.
type PriceTable []Denomination

// First returns the smallest quoted denomination.
func (t PriceTable) First() (Denomination, bool) {
	if len(t) == 0 {
		return Denomination{}, false
	}
	return t[0], true
}

func (t PriceTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.PricePair)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *PriceTable) UnmarshalJSON(data []byte) error {
	var raw map[string]PricePair
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	table := make(PriceTable, 0, len(raw))
	for label, pair := range raw {
		weight, err := decimal.NewFromString(label)
		if err != nil {
			return fmt.Errorf("invalid weight denomination %q: %w", label, err)
		}
		table = append(table, Denomination{Label: label, Weight: weight, PricePair: pair})
	}
	sort.Slice(table, func(i, j int) bool {
		return table[i].Weight.LessThan(table[j].Weight)
	})
	*t = table
	return nil
}

// PriceSnapshot is a full replacement of the current market price table.
// Error is set in-payload when the upstream scrape failed; the HTTP transport
// still reports success in that case, mirroring the upstream contract.
type PriceSnapshot struct {
	LastUpdate string     `json:"last_update,omitempty"`
	Data       PriceTable `json:"data,omitempty"`
	Error      string     `json:"error,omitempty"`
}
