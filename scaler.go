package tschart

import (
	"time"
)

const (
	placeholderYMax = 100
	placeholderYMin = 0
	placeholderXMin = 0
	placeholderXMax = 1
)

type Domain struct {
	fst float64
	lst float64
}

func NumberDomain(f, t float64) Domain {
	return Domain{
		fst: f,
		lst: t,
	}
}

func TimeDomain(f, t time.Time) Domain {
	return NumberDomain(float64(f.UnixMilli()), float64(t.UnixMilli()))
}

func (d Domain) Fst() float64 {
	return d.fst
}

func (d Domain) Lst() float64 {
	return d.lst
}

func (d Domain) Diff(v float64) float64 {
	return v - d.fst
}

func (d Domain) Extend() float64 {
	return d.lst - d.fst
}

func (d Domain) Mid() float64 {
	return d.fst + d.Extend()/2
}

// Values returns c+1 evenly spaced values from fst to lst.
func (d Domain) Values(c int) []float64 {
	if c <= 0 {
		return []float64{d.fst, d.lst}
	}
	var (
		all  = make([]float64, c)
		step = d.Extend() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = d.fst + float64(i)*step
	}
	all = append(all, d.lst)
	return all
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return r.T
}

func (r Range) Min() float64 {
	return r.F
}

func (r Range) Mid() float64 {
	return r.F + r.Len()/2
}

// Scaler maps a domain onto a pixel range and back.
type Scaler interface {
	Scale(float64) float64
	Invert(float64) float64
	Space() float64
	Values(int) []float64
	Domain() Domain
	Range() Range
	// Placeholder reports whether the scaler was built without data.
	Placeholder() bool
}

type numberScaler struct {
	rg          Range
	dom         Domain
	placeholder bool
}

func NumberScaler(dom Domain, rg Range) Scaler {
	return numberScaler{
		rg:  rg,
		dom: dom,
	}
}

func (n numberScaler) Scale(v float64) float64 {
	if n.dom.Extend() == 0 {
		return n.rg.Mid()
	}
	return n.rg.F + n.dom.Diff(v)*n.Space()
}

func (n numberScaler) Invert(px float64) float64 {
	if n.dom.Extend() == 0 || n.rg.Len() == 0 {
		return n.dom.Mid()
	}
	return n.dom.fst + (px-n.rg.F)/n.Space()
}

func (n numberScaler) Space() float64 {
	ext := n.dom.Extend()
	if ext == 0 {
		return 0
	}
	return n.rg.Len() / ext
}

func (n numberScaler) Values(c int) []float64 {
	return n.dom.Values(c)
}

func (n numberScaler) Domain() Domain {
	return n.dom
}

func (n numberScaler) Range() Range {
	return n.rg
}

func (n numberScaler) Placeholder() bool {
	return n.placeholder
}

// TimeScaler is a scaler whose domain is made of unix timestamps in
// milliseconds.
type TimeScaler struct {
	numberScaler
	loc *time.Location
}

func NewTimeScaler(dom Domain, rg Range, loc *time.Location) TimeScaler {
	if loc == nil {
		loc = time.UTC
	}
	return TimeScaler{
		numberScaler: numberScaler{
			rg:  rg,
			dom: dom,
		},
		loc: loc,
	}
}

func (s TimeScaler) Time(px float64) time.Time {
	return time.UnixMilli(int64(s.Invert(px))).In(s.loc)
}

func (s TimeScaler) At(t time.Time) float64 {
	return s.Scale(float64(t.UnixMilli()))
}

func (s TimeScaler) Location() *time.Location {
	return s.loc
}

type Scales struct {
	X Scaler
	Y Scaler
}

// NewScales builds the x and y scalers from the computed extents. The y
// domain is inverted so that larger values are drawn higher. Undefined
// extents fall back to the [0, 1] and [100, 0] placeholder domains.
func NewScales(ext Extents, width, height float64, loc *time.Location) Scales {
	var s Scales
	if ext.HasValue {
		s.Y = NumberScaler(NumberDomain(ext.Value.Max, ext.Value.Min), NewRange(0, height))
	} else {
		s.Y = numberScaler{
			rg:          NewRange(0, height),
			dom:         NumberDomain(placeholderYMax, placeholderYMin),
			placeholder: true,
		}
	}
	if ext.HasTime {
		dom := NumberDomain(float64(ext.Time.Start), float64(ext.Time.End))
		s.X = NewTimeScaler(dom, NewRange(0, width), loc)
	} else {
		s.X = numberScaler{
			rg:          NewRange(0, width),
			dom:         NumberDomain(placeholderXMin, placeholderXMax),
			placeholder: true,
		}
	}
	return s
}
