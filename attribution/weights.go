// Package attribution assigns fractional IHC credit to journey
// touchpoints using a static channel-weight table.
package attribution

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ChannelWeight holds one channel's Initializer/Holder/Closer role
// weights. Weights are supplied, not learned.
type ChannelWeight struct {
	Channel           string
	InitializerWeight float64
	HolderWeight      float64
	CloserWeight      float64
}

// WeightTable indexes channel weights by exact channel label.
type WeightTable map[string]ChannelWeight

// The reference file carries these headers, spaces included.
var weightHeader = []string{"channel", "initializer weight", "holder weight", "closer weight"}

// LoadWeights reads the channel-weight reference CSV.
func LoadWeights(path string) (WeightTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weights: %w", err)
	}
	defer f.Close()
	return ReadWeights(f)
}

// ReadWeights parses a channel-weight table. The header row is
// required; a malformed weight value is a hard error since every
// credit downstream depends on it.
func ReadWeights(r io.Reader) (WeightTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("weights: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("weights: read header: %w", err)
	}
	if len(header) < len(weightHeader) {
		return nil, fmt.Errorf("weights: bad header %v", header)
	}
	for i, want := range weightHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("weights: bad header column %q (want %q)", header[i], want)
		}
	}

	table := WeightTable{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, fmt.Errorf("weights: read row: %w", err)
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("weights: short row %v", row)
		}

		cw := ChannelWeight{Channel: strings.TrimSpace(row[0])}
		vals := [3]*float64{&cw.InitializerWeight, &cw.HolderWeight, &cw.CloserWeight}
		for i, dst := range vals {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("weights: channel %q: bad %s %q: %w",
					cw.Channel, weightHeader[i+1], row[i+1], err)
			}
			*dst = v
		}
		table[cw.Channel] = cw
	}
}
