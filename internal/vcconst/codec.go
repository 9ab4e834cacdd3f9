package vcconst

import (
	"math/big"

	"github.com/veritas-lang/veritas/internal/vcattr"
	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vcwire"
)

// Tag is the single byte identifying a Constant's shape in the binary
// format, per spec §4.D's Constant grammar.
type Tag uint8

const (
	TagNull Tag = iota
	TagFalse
	TagTrue
	TagByte
	TagChar
	TagInt
	TagReal
	TagString
	TagList
	TagSet
	TagTuple
	TagRecord
)

// Encode appends c's binary encoding to w, recursing on composite shapes.
func Encode(w *vcwire.Writer, c Constant) {
	switch v := c.(type) {
	case Null:
		w.U1(uint8(TagNull))
	case Bool:
		if v.Value {
			w.U1(uint8(TagTrue))
		} else {
			w.U1(uint8(TagFalse))
		}
	case Byte:
		w.U1(uint8(TagByte))
		w.U1(v.Value)
	case Char:
		w.U1(uint8(TagChar))
		w.UV(uint64(v.Value))
	case Int:
		w.U1(uint8(TagInt))
		encodeBigInt(w, v.Value)
	case Real:
		w.U1(uint8(TagReal))
		encodeBigInt(w, v.Num)
		encodeBigInt(w, v.Denom)
	case String:
		w.U1(uint8(TagString))

		runes := []rune(v.Value)
		w.U2(uint16(len(runes)))

		for _, r := range runes {
			w.UV(uint64(r))
		}
	case List:
		w.U1(uint8(TagList))
		w.U2(uint16(len(v.Elems)))

		for _, e := range v.Elems {
			Encode(w, e)
		}
	case Set:
		w.U1(uint8(TagSet))
		w.U2(uint16(len(v.Elems)))

		for _, e := range v.Elems {
			Encode(w, e)
		}
	case Tuple:
		w.U1(uint8(TagTuple))
		w.U2(uint16(len(v.Elems)))

		for _, e := range v.Elems {
			Encode(w, e)
		}
	case Record:
		w.U1(uint8(TagRecord))
		w.U2(uint16(len(v.Fields)))

		for _, f := range v.Fields {
			nameBytes := []byte(f.Name)
			w.U2(uint16(len(nameBytes)))
			w.Raw(nameBytes)
			Encode(w, f.Value)
		}
	default:
		vcerr.InternalFailure("unreachable constant shape in Encode", vcattr.Span{})
	}
}

// Decode reads one Constant from r, or returns a CorruptFile error when the
// tag is unrecognized or the input is truncated.
func Decode(r *vcwire.Reader) (Constant, error) {
	tag, ok := r.U1()
	if !ok {
		return nil, vcerr.Corrupt("truncated constant: missing tag byte", map[string]any{"pos": r.Pos()})
	}

	switch Tag(tag) {
	case TagNull:
		return Null{}, nil
	case TagFalse:
		return Bool{Value: false}, nil
	case TagTrue:
		return Bool{Value: true}, nil
	case TagByte:
		b, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated byte constant", map[string]any{"pos": r.Pos()})
		}

		return Byte{Value: b}, nil
	case TagChar:
		v, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated char constant", map[string]any{"pos": r.Pos()})
		}

		return Char{Value: rune(v)}, nil
	case TagInt:
		v, err := decodeBigInt(r)
		if err != nil {
			return nil, err
		}

		return Int{Value: v}, nil
	case TagReal:
		num, err := decodeBigInt(r)
		if err != nil {
			return nil, err
		}

		denom, err := decodeBigInt(r)
		if err != nil {
			return nil, err
		}

		return Real{Num: num, Denom: denom}, nil
	case TagString:
		n, ok := r.U2()
		if !ok {
			return nil, vcerr.Corrupt("truncated string constant length", map[string]any{"pos": r.Pos()})
		}

		runes := make([]rune, n)

		for i := range runes {
			v, ok := r.UV()
			if !ok {
				return nil, vcerr.Corrupt("truncated string constant code unit", map[string]any{"pos": r.Pos(), "index": i})
			}

			runes[i] = rune(v)
		}

		return String{Value: string(runes)}, nil
	case TagList:
		elems, err := decodeElems(r, "list")
		if err != nil {
			return nil, err
		}

		return List{Elems: elems}, nil
	case TagSet:
		elems, err := decodeElems(r, "set")
		if err != nil {
			return nil, err
		}

		return Set{Elems: elems}, nil
	case TagTuple:
		elems, err := decodeElems(r, "tuple")
		if err != nil {
			return nil, err
		}

		return Tuple{Elems: elems}, nil
	case TagRecord:
		n, ok := r.U2()
		if !ok {
			return nil, vcerr.Corrupt("truncated record constant field count", map[string]any{"pos": r.Pos()})
		}

		fields := make([]Field, n)

		for i := range fields {
			nameLen, ok := r.U2()
			if !ok {
				return nil, vcerr.Corrupt("truncated record field name length", map[string]any{"pos": r.Pos(), "index": i})
			}

			nameBytes, ok := r.Raw(int(nameLen))
			if !ok {
				return nil, vcerr.Corrupt("truncated record field name", map[string]any{"pos": r.Pos(), "index": i})
			}

			value, err := Decode(r)
			if err != nil {
				return nil, err
			}

			fields[i] = Field{Name: string(nameBytes), Value: value}
		}

		return Record{Fields: fields}, nil
	default:
		return nil, vcerr.Corrupt("unknown constant tag", map[string]any{"tag": tag, "pos": r.Pos()})
	}
}

func decodeElems(r *vcwire.Reader, shape string) ([]Constant, error) {
	n, ok := r.U2()
	if !ok {
		return nil, vcerr.Corrupt("truncated "+shape+" constant element count", map[string]any{"pos": r.Pos()})
	}

	elems := make([]Constant, n)

	for i := range elems {
		e, err := Decode(r)
		if err != nil {
			return nil, err
		}

		elems[i] = e
	}

	return elems, nil
}

// encodeBigInt writes v as a length-prefixed, minimal big-endian two's
// complement byte sequence (spec §4.D: "Int is a signed big-endian two's
// complement byte sequence").
func encodeBigInt(w *vcwire.Writer, v *big.Int) {
	b := twosComplementBytes(v)
	w.U2(uint16(len(b)))
	w.Raw(b)
}

func decodeBigInt(r *vcwire.Reader) (*big.Int, error) {
	n, ok := r.U2()
	if !ok {
		return nil, vcerr.Corrupt("truncated integer length", map[string]any{"pos": r.Pos()})
	}

	b, ok := r.Raw(int(n))
	if !ok {
		return nil, vcerr.Corrupt("truncated integer payload", map[string]any{"pos": r.Pos()})
	}

	return fromTwosComplementBytes(b), nil
}

func twosComplementBytes(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0}
	}

	if v.Sign() > 0 {
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}

		return b
	}

	nBytes := v.BitLen()/8 + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	tc := new(big.Int).Add(mod, v)
	b := tc.Bytes()

	for len(b) < nBytes {
		b = append([]byte{0}, b...)
	}

	return b
}

func fromTwosComplementBytes(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}

	if b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b)
	}

	tc := new(big.Int).SetBytes(b)
	mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))

	return new(big.Int).Sub(tc, mod)
}
