package protocol

import (
	"fmt"
	"math"
	"sort"
)

// ValueTag identifies the shape of an encoded value.
type ValueTag uint8

const (
	ValueNull   ValueTag = 0x00
	ValueBool   ValueTag = 0x01
	ValueInt    ValueTag = 0x02
	ValueFloat  ValueTag = 0x03
	ValueString ValueTag = 0x04
	ValueArray  ValueTag = 0x05
	ValueMap    ValueTag = 0x06
)

// EncodeValue appends an attribute or event value. Values use the shapes
// attribute values are normalized to; map keys are written in sorted order
// so equal values encode to equal bytes.
func EncodeValue(e *Encoder, v any) error {
	switch val := v.(type) {
	case nil:
		e.WriteByte(byte(ValueNull))
	case bool:
		e.WriteByte(byte(ValueBool))
		e.WriteBool(val)
	case int:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(int64(val))
	case int8:
		return EncodeValue(e, int(val))
	case int16:
		return EncodeValue(e, int(val))
	case int32:
		return EncodeValue(e, int(val))
	case int64:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(val)
	case uint:
		return encodeUint(e, uint64(val))
	case uint8:
		return encodeUint(e, uint64(val))
	case uint16:
		return encodeUint(e, uint64(val))
	case uint32:
		return encodeUint(e, uint64(val))
	case uint64:
		return encodeUint(e, val)
	case float32:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(float64(val))
	case float64:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(val)
	case string:
		e.WriteByte(byte(ValueString))
		e.WriteString(val)
	case []any:
		e.WriteByte(byte(ValueArray))
		e.WriteUvarint(uint64(len(val)))
		for _, item := range val {
			if err := EncodeValue(e, item); err != nil {
				return err
			}
		}
	case map[string]any:
		e.WriteByte(byte(ValueMap))
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.WriteUvarint(uint64(len(keys)))
		for _, k := range keys {
			e.WriteString(k)
			if err := EncodeValue(e, val[k]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("protocol: cannot encode value of type %T", v)
	}
	return nil
}

func encodeUint(e *Encoder, v uint64) error {
	if v > math.MaxInt64 {
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(float64(v))
		return nil
	}
	return EncodeValue(e, int64(v))
}

// DecodeValue reads a value written by EncodeValue. Integers decode as int.
func DecodeValue(d *Decoder) (any, error) {
	return decodeValue(d, 0)
}

func decodeValue(d *Decoder, depth int) (any, error) {
	if depth > MaxValueDepth {
		return nil, ErrMaxDepthExceeded
	}
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	switch ValueTag(tag) {
	case ValueNull:
		return nil, nil

	case ValueBool:
		return d.ReadBool()

	case ValueInt:
		v, err := d.ReadSvarint()
		return int(v), err

	case ValueFloat:
		return d.ReadFloat64()

	case ValueString:
		return d.ReadString()

	case ValueArray:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		arr := make([]any, count)
		for i := range arr {
			if arr[i], err = decodeValue(d, depth+1); err != nil {
				return nil, err
			}
		}
		return arr, nil

	case ValueMap:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		obj := make(map[string]any, count)
		for i := 0; i < count; i++ {
			key, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			if obj[key], err = decodeValue(d, depth+1); err != nil {
				return nil, err
			}
		}
		return obj, nil
	}
	return nil, ErrUnknownTag
}
