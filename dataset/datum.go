package dataset

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of caffe.Datum.
const (
	fieldChannels  protowire.Number = 1
	fieldHeight    protowire.Number = 2
	fieldWidth     protowire.Number = 3
	fieldData      protowire.Number = 4
	fieldLabel     protowire.Number = 5
	fieldFloatData protowire.Number = 6
	fieldEncoded   protowire.Number = 7
)

// Datum mirrors the caffe.Datum message.
type Datum struct {
	Channels  int32
	Height    int32
	Width     int32
	Data      []byte
	Label     int32
	FloatData []float32
	Encoded   bool
}

// Marshal encodes d the way proto2 does for caffe.Datum: scalar fields are
// always present and float_data is written unpacked.
func (d Datum) Marshal() []byte {
	b := make([]byte, 0, 16+len(d.Data)+5*len(d.FloatData))

	b = appendInt32(b, fieldChannels, d.Channels)
	b = appendInt32(b, fieldHeight, d.Height)
	b = appendInt32(b, fieldWidth, d.Width)
	if len(d.Data) > 0 {
		b = protowire.AppendTag(b, fieldData, protowire.BytesType)
		b = protowire.AppendBytes(b, d.Data)
	}
	b = appendInt32(b, fieldLabel, d.Label)
	for _, f := range d.FloatData {
		b = protowire.AppendTag(b, fieldFloatData, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(f))
	}
	if d.Encoded {
		b = protowire.AppendTag(b, fieldEncoded, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

// UnmarshalDatum decodes a serialized caffe.Datum. Unknown fields are skipped
// and float_data is accepted in both packed and unpacked form.
func UnmarshalDatum(b []byte) (Datum, error) {
	var d Datum
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Datum{}, fmt.Errorf("unmarshal datum: tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType && (num == fieldChannels || num == fieldHeight ||
			num == fieldWidth || num == fieldLabel || num == fieldEncoded):
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			if n < 0 {
				break
			}
			switch num {
			case fieldChannels:
				d.Channels = int32(v)
			case fieldHeight:
				d.Height = int32(v)
			case fieldWidth:
				d.Width = int32(v)
			case fieldLabel:
				d.Label = int32(v)
			case fieldEncoded:
				d.Encoded = protowire.DecodeBool(v)
			}
		case num == fieldData && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				d.Data = append([]byte(nil), v...)
			}
		case num == fieldFloatData && typ == protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			if n >= 0 {
				d.FloatData = append(d.FloatData, math.Float32frombits(v))
			}
		case num == fieldFloatData && typ == protowire.BytesType:
			var packed []byte
			packed, n = protowire.ConsumeBytes(b)
			for n >= 0 && len(packed) > 0 {
				v, m := protowire.ConsumeFixed32(packed)
				if m < 0 {
					n = m
					break
				}
				d.FloatData = append(d.FloatData, math.Float32frombits(v))
				packed = packed[m:]
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return Datum{}, fmt.Errorf("unmarshal datum: field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return d, nil
}

func (d Datum) String() string {
	return fmt.Sprintf("channels: %d\nheight: %d\nwidth: %d\nlabel: %d\nfloat_data: %d values\n",
		d.Channels, d.Height, d.Width, d.Label, len(d.FloatData))
}
