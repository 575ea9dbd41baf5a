// internal/game/tt.go
package game

// ------------------------------------------------------------
//  置换表（Transposition Table）
// ------------------------------------------------------------
//
// negamax 没有 α/β 界，结果只取决于 (局面, 走子方, 深度)，
// 所以表里存的是精确的最佳着和分值，命中即可直接返回。

// DefaultTTBits sizes the table of a new Searcher: 1<<DefaultTTBits slots.
const DefaultTTBits = 14

type ttEntry struct {
	key   uint64 // SuperBoard.Hash()
	id    CellState
	depth int16
	used  bool
	ok    bool // false: 该局面 id 无棋可走
	best  Move
}

// ttTable is a fixed-size, always-replace-if-not-shallower table owned by one
// Searcher. It is not safe for concurrent use.
type ttTable struct {
	entries []ttEntry
	mask    uint64
}

func newTTTable(bits int) *ttTable {
	if bits <= 0 {
		return nil
	}
	size := 1 << bits
	return &ttTable{mask: uint64(size - 1), entries: make([]ttEntry, size)}
}

// slot 把走子方混进下标，避免同一局面 A/B 互相覆盖
func (t *ttTable) slot(key uint64, id CellState) *ttEntry {
	return &t.entries[(key^uint64(id)*0x9e3779b97f4a7c15)&t.mask]
}

// probe 只接受深度完全相同的条目：浅层和深层的结果并不通用
func (t *ttTable) probe(key uint64, id CellState, depth int) (best Move, ok, hit bool) {
	e := t.slot(key, id)
	if !e.used || e.key != key || e.id != id || int(e.depth) != depth {
		return Move{}, false, false
	}
	return e.best, e.ok, true
}

// store 以“深度更深者优先”策略覆盖
func (t *ttTable) store(key uint64, id CellState, depth int, best Move, ok bool) {
	e := t.slot(key, id)
	if e.used && e.key != key && int(e.depth) > depth {
		return
	}
	*e = ttEntry{key: key, id: id, depth: int16(depth), used: true, ok: ok, best: best}
}

// TTHitRate returns hits/probes in percent for the last search.
func (st SearchStats) TTHitRate() float64 {
	if st.TTProbes == 0 {
		return 0
	}
	return float64(st.TTHits) / float64(st.TTProbes) * 100
}
