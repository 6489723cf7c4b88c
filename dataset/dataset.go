// Package dataset writes labeled numeric samples as Caffe Datum records into a
// durable key-value store.
package dataset

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrClosed   = errors.New("dataset: writer closed")
	ErrNotFound = errors.New("dataset: key not found")
)

type (
	// Shape is the (channels, height, width) triple of a sample array.
	Shape struct {
		Channels int32 `json:"channels"`
		Height   int32 `json:"height"`
		Width    int32 `json:"width"`
	}

	Sample struct {
		Shape  Shape     `json:"shape"`
		Values []float32 `json:"values"`
		Label  int32     `json:"label"`
	}

	// InstanceProvider is anything that can hand out a training instance.
	InstanceProvider interface {
		Array() (Shape, []float32)
		Label() int32
	}

	Entry struct {
		Key   string
		Value []byte
	}

	// Store is the durable key-value capability the Writer commits to.
	// WriteBatch must apply all entries or none of them.
	Store interface {
		WriteBatch(ctx context.Context, entries []Entry, sync bool) error
		Get(ctx context.Context, key string) ([]byte, error)
		Close() error
	}
)

func (s Shape) Size() int {
	return int(s.Channels) * int(s.Height) * int(s.Width)
}

// NewSample copies the array and label out of p.
func NewSample(p InstanceProvider) (Sample, error) {
	shape, values := p.Array()
	if shape.Channels < 0 || shape.Height < 0 || shape.Width < 0 {
		return Sample{}, fmt.Errorf("new sample: negative dimension in %+v", shape)
	}
	if len(values) != shape.Size() {
		return Sample{}, fmt.Errorf("new sample: shape %+v needs %d values, got %d", shape, shape.Size(), len(values))
	}

	return Sample{Shape: shape, Values: values, Label: p.Label()}, nil
}

func (s Sample) Datum() Datum {
	return Datum{
		Channels:  s.Shape.Channels,
		Height:    s.Shape.Height,
		Width:     s.Shape.Width,
		Label:     s.Label,
		FloatData: s.Values,
	}
}

// SampleFromDatum is the inverse of Sample.Datum.
func SampleFromDatum(d Datum) (Sample, error) {
	s := Sample{
		Shape:  Shape{Channels: d.Channels, Height: d.Height, Width: d.Width},
		Values: d.FloatData,
		Label:  d.Label,
	}
	if len(s.Values) != s.Shape.Size() {
		return Sample{}, fmt.Errorf("sample from datum: shape %+v needs %d values, got %d", s.Shape, s.Shape.Size(), len(s.Values))
	}
	return s, nil
}

// DummyInstance is an all-zero 1x5x300 word-vector window with label 0.
type DummyInstance struct{}

const (
	dummyChannels   = 1
	dummyWindowSize = 5
	dummyVectorSize = 300
)

func (DummyInstance) Array() (Shape, []float32) {
	shape := Shape{Channels: dummyChannels, Height: dummyWindowSize, Width: dummyVectorSize}
	return shape, make([]float32, shape.Size())
}

func (DummyInstance) Label() int32 { return 0 }
