package vccodec

import (
	"strconv"

	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vctypes"
	"github.com/veritas-lang/veritas/internal/vcwire"
)

func writeRegister(w *vcwire.Writer, r vcir.Register) { w.U1(uint8(r)) }

func readRegister(r *vcwire.Reader) (vcir.Register, error) {
	v, ok := r.U1()
	if !ok {
		return 0, vcerr.Corrupt("truncated register operand", map[string]any{"pos": r.Pos()})
	}

	return vcir.Register(v), nil
}

func writeRegisters(w *vcwire.Writer, rs []vcir.Register) {
	w.U1(uint8(len(rs)))

	for _, r := range rs {
		writeRegister(w, r)
	}
}

func readRegisters(r *vcwire.Reader) ([]vcir.Register, error) {
	n, ok := r.U1()
	if !ok {
		return nil, vcerr.Corrupt("truncated register list count", map[string]any{"pos": r.Pos()})
	}

	out := make([]vcir.Register, n)

	for i := range out {
		reg, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		out[i] = reg
	}

	return out, nil
}

func encodeOpcode(w *vcwire.Writer, pw *poolWriter, c vcir.Code, i int, labelToIndex map[vcir.Label]int) error {
	target := func(l vcir.Label) (uint8, error) { return offsetTo(l, i, labelToIndex) }

	switch v := c.(type) {
	case vcir.Convert:
		w.U1(uint8(tagConvert))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Invert:
		w.U1(uint8(tagInvert))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Negate:
		w.U1(uint8(tagNegate))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Move:
		w.U1(uint8(tagMove))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Assign:
		w.U1(uint8(tagAssign))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Dereference:
		w.U1(uint8(tagDereference))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.LengthOf:
		w.U1(uint8(tagLengthOf))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Debug:
		w.U1(uint8(tagDebug))
		writeRegister(w, v.Source)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.IfCmp:
		off, err := target(v.Target)
		if err != nil {
			return err
		}

		w.U1(uint8(tagIfCmp))
		writeRegister(w, v.Source1)
		writeRegister(w, v.Source2)
		w.U1(uint8(v.Cmp))
		w.U1(off)
	case vcir.Arithmetic:
		w.U1(uint8(tagArithmetic))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source1)
		writeRegister(w, v.Source2)
		w.U1(uint8(v.Op))
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.IndexOf:
		w.U1(uint8(tagIndexOf))
		writeRegister(w, v.Target)
		writeRegister(w, v.Source1)
		writeRegister(w, v.Source2)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.ListConstruct:
		w.U1(uint8(tagListConstruct))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.SetConstruct:
		w.U1(uint8(tagSetConstruct))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.MapConstruct:
		w.U1(uint8(tagMapConstruct))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.TupleConstruct:
		w.U1(uint8(tagTupleConstruct))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.RecordConstruct:
		w.U1(uint8(tagRecordConstruct))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
		w.U1(uint8(len(v.Fields)))

		for _, f := range v.Fields {
			w.UV(uint64(pw.internString(f)))
		}
	case vcir.FieldLoad:
		w.U1(uint8(tagFieldLoad))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
		w.UV(uint64(pw.internString(v.Field)))
	case vcir.TupleLoad:
		w.U1(uint8(tagTupleLoad))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
		w.UV(uint64(v.Index))
	case vcir.Const:
		w.U1(uint8(tagConst))
		writeRegister(w, v.Target)
		w.UV(uint64(pw.internType(v.Type)))
		w.UV(uint64(pw.internConstant(v.Value)))
	case vcir.DirectInvoke:
		w.U1(uint8(tagDirectInvoke))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
		w.UV(uint64(pw.internName(v.Name)))
	case vcir.IndirectInvoke:
		w.U1(uint8(tagIndirectInvoke))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Update:
		w.U1(uint8(tagUpdate))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))

		if v.Field != "" {
			w.U1(1)
			w.UV(uint64(pw.internString(v.Field)))
		} else {
			w.U1(0)
			w.UV(uint64(v.Index))
		}
	case vcir.NewObject:
		w.U1(uint8(tagNewObject))
		writeRegister(w, v.Target)
		writeRegisters(w, v.Sources)
		w.UV(uint64(pw.internType(v.Type)))
	case vcir.Goto:
		off, err := target(v.Target)
		if err != nil {
			return err
		}

		w.U1(uint8(tagGoto))
		w.U1(off)
	case vcir.IfType:
		off, err := target(v.Target)
		if err != nil {
			return err
		}

		w.U1(uint8(tagIfType))
		writeRegister(w, v.Operand)
		w.UV(uint64(pw.internType(v.Type)))
		w.U1(off)
	case vcir.Switch:
		offs := make([]uint8, len(v.Cases))

		for j, cs := range v.Cases {
			off, err := target(cs.Target)
			if err != nil {
				return err
			}

			offs[j] = off
		}

		defOff, err := target(v.Default)
		if err != nil {
			return err
		}

		w.U1(uint8(tagSwitch))
		writeRegister(w, v.Operand)
		w.U1(uint8(len(v.Cases)))

		for j, cs := range v.Cases {
			w.UV(uint64(pw.internConstant(cs.Value)))
			w.U1(offs[j])
		}

		w.U1(defOff)
	case vcir.Return:
		w.U1(uint8(tagReturn))
		writeRegisters(w, v.Sources)
	case vcir.Throw:
		w.U1(uint8(tagThrow))
		writeRegister(w, v.Source)
	case vcir.Fail:
		w.U1(uint8(tagFail))
	case vcir.Nop:
		w.U1(uint8(tagNop))
	case vcir.Loop:
		off, err := target(v.End)
		if err != nil {
			return err
		}

		w.U1(uint8(tagLoop))
		writeRegisters(w, v.Modified)
		w.U1(off)
	case vcir.ForAll:
		off, err := target(v.End)
		if err != nil {
			return err
		}

		w.U1(uint8(tagForAll))
		writeRegister(w, v.IndexVar)
		writeRegister(w, v.Source)
		writeRegisters(w, v.Modified)
		w.U1(off)
	case vcir.LoopEnd:
		w.U1(uint8(tagLoopEnd))
	case vcir.TryCatch:
		catchOff, err := target(v.Target)
		if err != nil {
			return err
		}

		endOff, err := target(v.End)
		if err != nil {
			return err
		}

		w.U1(uint8(tagTryCatch))
		writeRegisters(w, v.Modified)
		w.U1(catchOff)
		w.U1(endOff)
	case vcir.AssertOrAssume:
		off, err := target(v.End)
		if err != nil {
			return err
		}

		w.U1(uint8(tagAssertOrAssume))
		w.U1(boolByte(v.IsAssert))
		writeRegisters(w, v.Modified)
		w.U1(off)
	default:
		vcerr.InternalFailure("unreachable opcode shape in encodeOpcode", zeroSpan())
	}

	return nil
}

func placeholder(i, offset int) vcir.Label {
	return vcir.Label(strconv.Itoa(i + offset))
}

func decodeOpcode(r *vcwire.Reader, pr *poolReader, i int) (vcir.Code, error) {
	tag, ok := r.U1()
	if !ok {
		return nil, vcerr.Corrupt("truncated opcode tag", map[string]any{"pos": r.Pos()})
	}

	readOffsetTarget := func() (vcir.Label, error) {
		off, ok := r.U1()
		if !ok {
			return "", vcerr.Corrupt("truncated branch offset", map[string]any{"pos": r.Pos()})
		}

		return placeholder(i, int(off)), nil
	}

	switch codeTag(tag) {
	case tagConvert, tagInvert, tagNegate, tagMove, tagAssign, tagDereference, tagLengthOf:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		source, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		switch codeTag(tag) {
		case tagConvert:
			return vcir.Convert{Target: target, Source: source, Type: typ}, nil
		case tagInvert:
			return vcir.Invert{Target: target, Source: source, Type: typ}, nil
		case tagNegate:
			return vcir.Negate{Target: target, Source: source, Type: typ}, nil
		case tagMove:
			return vcir.Move{Target: target, Source: source, Type: typ}, nil
		case tagAssign:
			return vcir.Assign{Target: target, Source: source, Type: typ}, nil
		case tagDereference:
			if _, ok := typ.(vctypes.Reference); !ok {
				return nil, vcerr.Corrupt("dereference of a non-reference type", map[string]any{"pos": r.Pos(), "type": typ.String()})
			}

			return vcir.Dereference{Target: target, Source: source, Type: typ}, nil
		default:
			return vcir.LengthOf{Target: target, Source: source, Type: typ}, nil
		}
	case tagDebug:
		source, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		return vcir.Debug{Source: source, Type: typ}, nil
	case tagIfCmp:
		s1, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		s2, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		cmp, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated comparator", map[string]any{"pos": r.Pos()})
		}

		lbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.IfCmp{Source1: s1, Source2: s2, Cmp: vcir.Comparator(cmp), Target: lbl}, nil
	case tagArithmetic:
		t, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		s1, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		s2, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		op, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated arithmetic operator", map[string]any{"pos": r.Pos()})
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		return vcir.Arithmetic{Target: t, Source1: s1, Source2: s2, Op: vcir.ArithOp(op), Type: typ}, nil
	case tagIndexOf:
		t, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		s1, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		s2, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		return vcir.IndexOf{Target: t, Source1: s1, Source2: s2, Type: typ}, nil
	case tagListConstruct, tagSetConstruct, tagMapConstruct, tagTupleConstruct, tagIndirectInvoke, tagNewObject:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		sources, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		switch codeTag(tag) {
		case tagListConstruct:
			return vcir.ListConstruct{Target: target, Sources: sources, Type: typ}, nil
		case tagSetConstruct:
			return vcir.SetConstruct{Target: target, Sources: sources, Type: typ}, nil
		case tagMapConstruct:
			return vcir.MapConstruct{Target: target, Sources: sources, Type: typ}, nil
		case tagTupleConstruct:
			return vcir.TupleConstruct{Target: target, Sources: sources, Type: typ}, nil
		case tagIndirectInvoke:
			return vcir.IndirectInvoke{Target: target, Sources: sources, Type: typ}, nil
		default:
			return vcir.NewObject{Target: target, Sources: sources, Type: typ}, nil
		}
	case tagRecordConstruct:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		sources, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		numFields, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated field count", map[string]any{"pos": r.Pos()})
		}

		fields := make([]string, numFields)

		for j := range fields {
			idx, ok := r.UV()
			if !ok {
				return nil, vcerr.Corrupt("truncated field name index", map[string]any{"pos": r.Pos()})
			}

			s, err := pr.resolveString(int(idx))
			if err != nil {
				return nil, err
			}

			fields[j] = s
		}

		return vcir.RecordConstruct{Target: target, Sources: sources, Fields: fields, Type: typ}, nil
	case tagFieldLoad:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		sources, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		fieldIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated field name index", map[string]any{"pos": r.Pos()})
		}

		field, err := pr.resolveString(int(fieldIdx))
		if err != nil {
			return nil, err
		}

		return vcir.FieldLoad{Target: target, Sources: sources, Field: field, Type: typ}, nil
	case tagTupleLoad:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		sources, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		index, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated tuple index", map[string]any{"pos": r.Pos()})
		}

		return vcir.TupleLoad{Target: target, Sources: sources, Index: int(index), Type: typ}, nil
	case tagConst:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		constIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated constant operand", map[string]any{"pos": r.Pos()})
		}

		value, err := pr.resolveConstant(int(constIdx))
		if err != nil {
			return nil, err
		}

		return vcir.Const{Target: target, Value: value, Type: typ}, nil
	case tagDirectInvoke:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		sources, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		nameIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated name operand", map[string]any{"pos": r.Pos()})
		}

		name, err := pr.resolveName(int(nameIdx))
		if err != nil {
			return nil, err
		}

		return vcir.DirectInvoke{Target: target, Sources: sources, Name: name, Type: typ}, nil
	case tagUpdate:
		target, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		sources, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		hasField, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated update field flag", map[string]any{"pos": r.Pos()})
		}

		var (
			field string
			index uint64
		)

		if hasField != 0 {
			idx, ok := r.UV()
			if !ok {
				return nil, vcerr.Corrupt("truncated update field index", map[string]any{"pos": r.Pos()})
			}

			field, err = pr.resolveString(int(idx))
			if err != nil {
				return nil, err
			}
		} else {
			index, ok = r.UV()
			if !ok {
				return nil, vcerr.Corrupt("truncated update index", map[string]any{"pos": r.Pos()})
			}
		}

		return vcir.Update{Target: target, Sources: sources, Field: field, Index: int(index), Type: typ}, nil
	case tagGoto:
		lbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.Goto{Target: lbl}, nil
	case tagIfType:
		operand, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type operand", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		lbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.IfType{Operand: operand, Type: typ, Target: lbl}, nil
	case tagSwitch:
		operand, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		numCases, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated switch case count", map[string]any{"pos": r.Pos()})
		}

		cases := make([]vcir.SwitchCase, numCases)

		for j := range cases {
			constIdx, ok := r.UV()
			if !ok {
				return nil, vcerr.Corrupt("truncated switch case constant", map[string]any{"pos": r.Pos()})
			}

			value, err := pr.resolveConstant(int(constIdx))
			if err != nil {
				return nil, err
			}

			lbl, err := readOffsetTarget()
			if err != nil {
				return nil, err
			}

			cases[j] = vcir.SwitchCase{Value: value, Target: lbl}
		}

		def, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.Switch{Operand: operand, Cases: cases, Default: def}, nil
	case tagReturn:
		sources, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		return vcir.Return{Sources: sources}, nil
	case tagThrow:
		source, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		return vcir.Throw{Source: source}, nil
	case tagFail:
		return vcir.Fail{}, nil
	case tagNop:
		return vcir.Nop{}, nil
	case tagLoop:
		modified, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		lbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.Loop{Modified: modified, End: lbl}, nil
	case tagForAll:
		indexVar, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		source, err := readRegister(r)
		if err != nil {
			return nil, err
		}

		modified, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		lbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.ForAll{IndexVar: indexVar, Source: source, Modified: modified, End: lbl}, nil
	case tagLoopEnd:
		return vcir.LoopEnd{}, nil
	case tagTryCatch:
		modified, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		catchLbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		endLbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.TryCatch{Target: catchLbl, Modified: modified, End: endLbl}, nil
	case tagAssertOrAssume:
		isAssert, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated assert/assume flag", map[string]any{"pos": r.Pos()})
		}

		modified, err := readRegisters(r)
		if err != nil {
			return nil, err
		}

		lbl, err := readOffsetTarget()
		if err != nil {
			return nil, err
		}

		return vcir.AssertOrAssume{IsAssert: isAssert != 0, Modified: modified, End: lbl}, nil
	default:
		return nil, vcerr.Corrupt("unknown opcode tag", map[string]any{"tag": tag, "pos": r.Pos()})
	}
}
