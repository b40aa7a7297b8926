package tschart

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Datapoint is a single sample. Time is a unix timestamp in milliseconds.
type Datapoint struct {
	Value float64
	Time  int64
}

func NewDatapoint(v float64, t time.Time) Datapoint {
	return Datapoint{
		Value: v,
		Time:  t.UnixMilli(),
	}
}

func (d Datapoint) Missing() bool {
	return math.IsNaN(d.Value)
}

// MarshalJSON encodes the datapoint as a [value, timestamp] pair.
func (d Datapoint) MarshalJSON() ([]byte, error) {
	var value any = d.Value
	if d.Missing() {
		value = nil
	}
	return json.Marshal([]any{value, d.Time})
}

func (d *Datapoint) UnmarshalJSON(b []byte) error {
	var pair []*float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("datapoint: expected [value, timestamp], got %d element(s)", len(pair))
	}
	if pair[1] == nil {
		return fmt.Errorf("datapoint: timestamp is null")
	}
	d.Value = math.NaN()
	if pair[0] != nil {
		d.Value = *pair[0]
	}
	d.Time = int64(*pair[1])
	return nil
}

// Serie is a named sequence of datapoints ordered by time.
type Serie struct {
	Target     string      `json:"target"`
	Alias      string      `json:"alias"`
	Datapoints []Datapoint `json:"datapoints"`
	Visible    bool        `json:"visible"`
}

func NewSerie(target, alias string, points ...Datapoint) Serie {
	return Serie{
		Target:     target,
		Alias:      alias,
		Datapoints: points,
		Visible:    true,
	}
}

// Title returns the alias of the serie or its target when no alias is set.
func (s Serie) Title() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Target
}

func (s Serie) Empty() bool {
	return len(s.Datapoints) == 0
}

// Nearest returns the datapoint whose timestamp is the closest to ts.
func (s Serie) Nearest(ts float64) (Datapoint, bool) {
	if s.Empty() {
		return Datapoint{}, false
	}
	var (
		lo = 0
		hi = len(s.Datapoints) - 1
	)
	for lo < hi {
		mid := (lo + hi) / 2
		if float64(s.Datapoints[mid].Time) < ts {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo > 0 {
		prev, curr := s.Datapoints[lo-1], s.Datapoints[lo]
		if ts-float64(prev.Time) <= float64(curr.Time)-ts {
			return prev, true
		}
	}
	return s.Datapoints[lo], true
}

func (s *Serie) UnmarshalJSON(b []byte) error {
	type serie Serie
	tmp := serie{Visible: true}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*s = Serie(tmp)
	return nil
}
