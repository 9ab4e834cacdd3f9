package vccodec

import (
	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vctypes"
	"github.com/veritas-lang/veritas/internal/vcwire"
)

// typeTag is the per-shape byte of the Type grammar, kept external to and
// versioned separately from the Constant/Code grammars (spec §4.D:
// "typePool[i]: encoded per Type grammar (external, schema-versioned)").
type typeTag uint8

const (
	typeTagVoid typeTag = iota
	typeTagAny
	typeTagNull
	typeTagBool
	typeTagByte
	typeTagChar
	typeTagInt
	typeTagRational
	typeTagString
	typeTagList
	typeTagSet
	typeTagMap
	typeTagTuple
	typeTagRecord
	typeTagReference
	typeTagFunction
	typeTagMethod
	typeTagUnion
	typeTagIntersection
	typeTagNegation
	typeTagNominal
	typeTagRecursive
)

func encodeType(w *vcwire.Writer, t vctypes.Type) {
	switch v := t.(type) {
	case vctypes.Primitive:
		w.U1(uint8(primitiveTag(v.Kind())))
	case vctypes.List:
		w.U1(uint8(typeTagList))
		encodeType(w, v.Elem)
	case vctypes.Set:
		w.U1(uint8(typeTagSet))
		encodeType(w, v.Elem)
	case vctypes.Map:
		w.U1(uint8(typeTagMap))
		encodeType(w, v.Key)
		encodeType(w, v.Value)
	case vctypes.Tuple:
		w.U1(uint8(typeTagTuple))
		w.UV(uint64(len(v.Elems)))

		for _, e := range v.Elems {
			encodeType(w, e)
		}
	case vctypes.Record:
		w.U1(uint8(typeTagRecord))
		w.U1(boolByte(v.Open))
		w.UV(uint64(len(v.Fields)))

		for _, f := range v.Fields {
			writeString(w, f.Name)
			encodeType(w, f.Type)
		}
	case vctypes.Reference:
		w.U1(uint8(typeTagReference))
		encodeType(w, v.Elem)
	case vctypes.Function:
		w.U1(uint8(typeTagFunction))
		encodeTypeList(w, v.Params)
		encodeType(w, v.Return)
		encodeTypeList(w, v.Throws)
	case vctypes.Method:
		w.U1(uint8(typeTagMethod))
		w.U1(boolByte(v.Receiver != nil))

		if v.Receiver != nil {
			encodeType(w, v.Receiver)
		}

		encodeTypeList(w, v.Params)
		encodeType(w, v.Return)
		encodeTypeList(w, v.Throws)
	case vctypes.Union:
		w.U1(uint8(typeTagUnion))
		encodeTypeList(w, v.Options)
	case vctypes.Intersection:
		w.U1(uint8(typeTagIntersection))
		encodeTypeList(w, v.Options)
	case vctypes.Negation:
		w.U1(uint8(typeTagNegation))
		encodeType(w, v.Elem)
	case vctypes.Nominal:
		w.U1(uint8(typeTagNominal))
		writeQualifiedName(w, v.Name)
	case vctypes.Recursive:
		w.U1(uint8(typeTagRecursive))
		writeString(w, v.Label)
		encodeType(w, v.Body)
	default:
		vcerr.InternalFailure("unreachable type shape in encodeType", zeroSpan())
	}
}

func decodeType(r *vcwire.Reader) (vctypes.Type, error) {
	tag, ok := r.U1()
	if !ok {
		return nil, vcerr.Corrupt("truncated type: missing tag byte", map[string]any{"pos": r.Pos()})
	}

	if p, ok := primitiveFromTag(typeTag(tag)); ok {
		return p, nil
	}

	switch typeTag(tag) {
	case typeTagList:
		elem, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		return vctypes.List{Elem: elem}, nil
	case typeTagSet:
		elem, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Set{Elem: elem}, nil
	case typeTagMap:
		key, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		val, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Map{Key: key, Value: val}, nil
	case typeTagTuple:
		elems, err := decodeTypeList(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Tuple{Elems: elems}, nil
	case typeTagRecord:
		openByte, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated record type open flag", map[string]any{"pos": r.Pos()})
		}

		n, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated record type field count", map[string]any{"pos": r.Pos()})
		}

		fields := make([]vctypes.Field, n)

		for i := range fields {
			name, err := readString(r)
			if err != nil {
				return nil, err
			}

			ft, err := decodeType(r)
			if err != nil {
				return nil, err
			}

			fields[i] = vctypes.Field{Name: name, Type: ft}
		}

		return vctypes.Record{Fields: fields, Open: openByte != 0}, nil
	case typeTagReference:
		elem, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Reference{Elem: elem}, nil
	case typeTagFunction:
		params, err := decodeTypeList(r)
		if err != nil {
			return nil, err
		}

		ret, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		throws, err := decodeTypeList(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Function{Params: params, Return: ret, Throws: throws}, nil
	case typeTagMethod:
		hasReceiver, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated method type receiver flag", map[string]any{"pos": r.Pos()})
		}

		var recv vctypes.Type

		if hasReceiver != 0 {
			var err error

			recv, err = decodeType(r)
			if err != nil {
				return nil, err
			}
		}

		params, err := decodeTypeList(r)
		if err != nil {
			return nil, err
		}

		ret, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		throws, err := decodeTypeList(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Method{Receiver: recv, Params: params, Return: ret, Throws: throws}, nil
	case typeTagUnion:
		opts, err := decodeTypeList(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Union{Options: opts}, nil
	case typeTagIntersection:
		opts, err := decodeTypeList(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Intersection{Options: opts}, nil
	case typeTagNegation:
		elem, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Negation{Elem: elem}, nil
	case typeTagNominal:
		qn, err := readQualifiedName(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Nominal{Name: qn}, nil
	case typeTagRecursive:
		label, err := readString(r)
		if err != nil {
			return nil, err
		}

		body, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		return vctypes.Recursive{Label: label, Body: body}, nil
	default:
		return nil, vcerr.Corrupt("unknown type tag", map[string]any{"tag": tag, "pos": r.Pos()})
	}
}

func encodeTypeList(w *vcwire.Writer, ts []vctypes.Type) {
	w.UV(uint64(len(ts)))

	for _, t := range ts {
		encodeType(w, t)
	}
}

func decodeTypeList(r *vcwire.Reader) ([]vctypes.Type, error) {
	n, ok := r.UV()
	if !ok {
		return nil, vcerr.Corrupt("truncated type list count", map[string]any{"pos": r.Pos()})
	}

	out := make([]vctypes.Type, n)

	for i := range out {
		t, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		out[i] = t
	}

	return out, nil
}

func primitiveTag(k vctypes.Kind) typeTag {
	switch k {
	case vctypes.KindVoid:
		return typeTagVoid
	case vctypes.KindAny:
		return typeTagAny
	case vctypes.KindNull:
		return typeTagNull
	case vctypes.KindBool:
		return typeTagBool
	case vctypes.KindByte:
		return typeTagByte
	case vctypes.KindChar:
		return typeTagChar
	case vctypes.KindInt:
		return typeTagInt
	case vctypes.KindRational:
		return typeTagRational
	case vctypes.KindString:
		return typeTagString
	default:
		return typeTagVoid
	}
}

func primitiveFromTag(tag typeTag) (vctypes.Type, bool) {
	switch tag {
	case typeTagVoid:
		return vctypes.Void, true
	case typeTagAny:
		return vctypes.Any, true
	case typeTagNull:
		return vctypes.Null, true
	case typeTagBool:
		return vctypes.Bool, true
	case typeTagByte:
		return vctypes.Byte, true
	case typeTagChar:
		return vctypes.Char, true
	case typeTagInt:
		return vctypes.Int, true
	case typeTagRational:
		return vctypes.Rational, true
	case typeTagString:
		return vctypes.String, true
	default:
		return nil, false
	}
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}

	return 0
}
