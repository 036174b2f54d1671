package compiler

import (
	"fmt"

	"fortio.org/safecast"

	"tokiwen/internal/ast"
	"tokiwen/internal/program"
)

// dataManager lays out the data segment: globals first, then the
// intermediate region sized to its high-watermark, then the string pool.
// SET always stores 8 bytes, so when a pool follows, the region is widened
// until a store to its deepest slot stays inside it.
//
// The stack records which expression node currently owns each intermediate
// slot. It only lives while one expression is being compiled.
type dataManager struct {
	varSize   uint64
	watermark uint64
	reach     uint64 // end of an 8 byte store to the deepest slot so far
	vars      map[uint64]program.Variable

	stack []*ast.Node
	tip   uint64

	pool    []byte
	strings map[string]uint64
}

func newDataManager() *dataManager {
	return &dataManager{
		vars:    make(map[uint64]program.Variable),
		strings: make(map[string]uint64),
	}
}

// addVariable records a global. Addresses come from the symbol table; only
// the total is accumulated here.
func (d *dataManager) addVariable(v program.Variable) {
	d.varSize += v.Size
	d.vars[v.Address] = v
}

// ensure grows the intermediate region to hold size bytes.
func (d *dataManager) ensure(size int64) {
	if size <= 0 {
		return
	}
	if u := unsigned(size); u > d.watermark {
		d.watermark = u
	}
}

// push gives n the next slot and returns its address.
func (d *dataManager) push(n *ast.Node) operand {
	at := d.tip
	d.reach = max(d.reach, at+storeWidth)
	d.stack = append(d.stack, n)
	d.tip += n.Type.Size()
	return intermediate(at)
}

// pop releases the top slot and returns the address it had.
func (d *dataManager) pop() operand {
	last := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.tip -= last.Type.Size()
	return intermediate(d.tip)
}

// peek returns the address of the top slot.
func (d *dataManager) peek() operand {
	last := d.stack[len(d.stack)-1]
	return intermediate(d.tip - last.Type.Size())
}

func (d *dataManager) depth() int { return len(d.stack) }

// reset drops whatever an expression left behind.
func (d *dataManager) reset() {
	d.stack = d.stack[:0]
	d.tip = 0
}

// intern places s in the pool, NUL terminated, once per distinct value.
func (d *dataManager) intern(s string) uint64 {
	if off, ok := d.strings[s]; ok {
		return off
	}
	off := uint64(len(d.pool))
	d.pool = append(d.pool, s...)
	d.pool = append(d.pool, 0)
	d.strings[s] = off
	return off
}

// storeWidth is how many bytes SET writes whatever the slot size.
const storeWidth = 8

func (d *dataManager) intermediatesStart() uint64 { return d.varSize }

// regionSize is the watermark, padded only when the pool has to follow it.
func (d *dataManager) regionSize() uint64 {
	if len(d.pool) == 0 {
		return d.watermark
	}
	return max(d.watermark, d.reach)
}

func (d *dataManager) poolStart() uint64 { return d.varSize + d.regionSize() }

func (d *dataManager) size() uint64 {
	return d.poolStart() + uint64(len(d.pool))
}

// segment builds the zeroed data segment with the pool copied in.
func (d *dataManager) segment() []byte {
	data := make([]byte, d.size())
	copy(data[d.poolStart():], d.pool)
	return data
}

func signed(v uint64) int64 {
	s, err := safecast.Conv[int64](v)
	if err != nil {
		panic(fmt.Errorf("size overflow: %w", err))
	}
	return s
}

func unsigned(v int64) uint64 {
	u, err := safecast.Conv[uint64](v)
	if err != nil {
		panic(fmt.Errorf("negative size: %w", err))
	}
	return u
}
