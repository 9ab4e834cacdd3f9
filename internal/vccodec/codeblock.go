package vccodec

import (
	"strconv"

	"github.com/veritas-lang/veritas/internal/vcattr"
	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcwire"
)

// codeTag is the per-opcode byte of the code-block grammar (spec §4.D).
// LabelMarker is deliberately absent: label positions are never written
// directly, only implied by the forward branch offsets that target them,
// and are materialized on read (spec §4.D, "labels are materialized
// lazily on read").
type codeTag uint8

const (
	tagConvert codeTag = iota
	tagInvert
	tagNegate
	tagMove
	tagAssign
	tagDereference
	tagLengthOf
	tagDebug
	tagIfCmp
	tagArithmetic
	tagIndexOf
	tagListConstruct
	tagSetConstruct
	tagMapConstruct
	tagTupleConstruct
	tagRecordConstruct
	tagFieldLoad
	tagTupleLoad
	tagConst
	tagDirectInvoke
	tagIndirectInvoke
	tagUpdate
	tagNewObject
	tagGoto
	tagIfType
	tagSwitch
	tagReturn
	tagThrow
	tagFail
	tagNop
	tagLoop
	tagForAll
	tagLoopEnd
	tagTryCatch
	tagAssertOrAssume
)

// encodeCodeBlock writes block's real (non-LabelMarker) opcodes, resolving
// every label reference to a forward offset in instruction-index units.
// LabelMarker entries themselves are never written — their positions are
// implied by the offsets that target them and are re-materialized on
// decode — so block.Validate's rule that a LabelMarker carries no
// attributes is what stands between that and silently losing them.
func encodeCodeBlock(w *vcwire.Writer, pw *poolWriter, block vcir.Block) error {
	if err := block.Validate(); err != nil {
		return err
	}

	entries := block.Entries()

	labelToIndex := map[vcir.Label]int{}

	real := make([]vcir.Entry, 0, len(entries))
	runningIndex := 0

	for _, e := range entries {
		if lm, ok := e.Code.(vcir.LabelMarker); ok {
			labelToIndex[lm.Name] = runningIndex
			continue
		}

		real = append(real, e)
		runningIndex++
	}

	w.UV(uint64(len(real)))

	for i, e := range real {
		if err := encodeOpcode(w, pw, e.Code, i, labelToIndex); err != nil {
			return err
		}

		encodeAttributes(w, e.Attributes)
	}

	return nil
}

func offsetTo(label vcir.Label, i int, labelToIndex map[vcir.Label]int) (uint8, error) {
	target, ok := labelToIndex[label]
	if !ok {
		return 0, vcerr.Corrupt("branch targets a label with no definition in this block", map[string]any{"label": string(label)})
	}

	delta := target - i
	if delta <= 0 || delta > 255 {
		return 0, vcerr.Corrupt("forward branch offset out of encodable range", map[string]any{"label": string(label), "delta": delta})
	}

	return uint8(delta), nil
}

func encodeAttributes(w *vcwire.Writer, attrs []vcattr.Attribute) {
	w.UV(uint64(len(attrs)))

	for _, a := range attrs {
		w.U1(uint8(a.Tag))
		w.UV(uint64(len(a.Payload)))
		w.Raw(a.Payload)
	}
}

func decodeAttributes(r *vcwire.Reader) ([]vcattr.Attribute, error) {
	n, ok := r.UV()
	if !ok {
		return nil, vcerr.Corrupt("truncated attribute count", map[string]any{"pos": r.Pos()})
	}

	if n == 0 {
		return nil, nil
	}

	attrs := make([]vcattr.Attribute, n)

	for i := range attrs {
		tag, ok := r.U1()
		if !ok {
			return nil, vcerr.Corrupt("truncated attribute tag", map[string]any{"pos": r.Pos()})
		}

		plen, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated attribute payload length", map[string]any{"pos": r.Pos()})
		}

		payload, ok := r.Raw(int(plen))
		if !ok {
			return nil, vcerr.Corrupt("truncated attribute payload", map[string]any{"pos": r.Pos()})
		}

		attrs[i] = vcattr.Attribute{Tag: vcattr.Tag(tag), Payload: append([]byte(nil), payload...)}
	}

	return attrs, nil
}

func decodeCodeBlock(r *vcwire.Reader, pr *poolReader) (vcir.Block, error) {
	n, ok := r.UV()
	if !ok {
		return vcir.Block{}, vcerr.Corrupt("truncated code-block opcode count", map[string]any{"pos": r.Pos()})
	}

	codes := make([]vcir.Code, n)
	attrs := make([][]vcattr.Attribute, n)

	for i := range codes {
		c, err := decodeOpcode(r, pr, i)
		if err != nil {
			return vcir.Block{}, err
		}

		codes[i] = c

		a, err := decodeAttributes(r)
		if err != nil {
			return vcir.Block{}, err
		}

		attrs[i] = a
	}

	targets := map[int]bool{}

	for _, c := range codes {
		for _, l := range vcir.AllLabelRefs(c) {
			idx, err := strconv.Atoi(string(l))
			if err != nil {
				continue
			}

			targets[idx] = true
		}
	}

	labelFor := map[int]vcir.Label{}
	relabelMap := map[vcir.Label]vcir.Label{}

	for idx := range targets {
		fresh := vcir.FreshLabel()
		labelFor[idx] = fresh
		relabelMap[vcir.Label(strconv.Itoa(idx))] = fresh
	}

	entries := make([]vcir.Entry, 0, int(n)+len(labelFor))

	for i := 0; i <= int(n); i++ {
		if lbl, ok := labelFor[i]; ok {
			entries = append(entries, vcir.Entry{Code: vcir.LabelMarker{Name: lbl}})
		}

		if i < int(n) {
			entries = append(entries, vcir.Entry{Code: codes[i].Relabel(relabelMap), Attributes: attrs[i]})
		}
	}

	return vcir.NewBlock(entries), nil
}
