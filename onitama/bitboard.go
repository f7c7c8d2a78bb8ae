package onitama

import (
	"math/bits"
	"strings"
)

const (
	Size   = 5
	Cells  = Size * Size
	Center = Cells / 2

	full Bitboard = 1<<Cells - 1
)

// Bitboard is a 25 bit occupancy set, bit i being cell i in row-major order
// from the top-left corner.
type Bitboard uint32

// Board builds a bitboard from row-major 0/1 cells, top row first.
func Board(cells ...int) Bitboard {
	var b Bitboard
	for i, c := range cells {
		if c != 0 {
			b = b.Set(i)
		}
	}
	return b
}

func (b Bitboard) Has(i int) bool {
	return b&(1<<i) != 0
}

func (b Bitboard) Set(i int) Bitboard {
	return b | 1<<i
}

func (b Bitboard) Clear(i int) Bitboard {
	return b &^ (1 << i)
}

func (b Bitboard) Count() int {
	return bits.OnesCount32(uint32(b))
}

// Cells lists the set cells in ascending order.
func (b Bitboard) Cells() []int {
	cells := make([]int, 0, b.Count())
	for rest := b; rest != 0; rest &= rest - 1 {
		cells = append(cells, bits.TrailingZeros32(uint32(rest)))
	}
	return cells
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for i := 0; i < Cells; i++ {
		if b.Has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if i%Size == Size-1 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Reverse rotates b by 180 degrees: cell i moves to cell 24-i.
func Reverse(b Bitboard) Bitboard {
	return Bitboard(bits.Reverse32(uint32(b)) >> (32 - Cells))
}

// Shift moves a pattern anchored at Center so that it is anchored at center.
// Bits that would leave the board or land on a different row delta than they
// had around Center are dropped, never wrapped.
func Shift(pattern Bitboard, center int) Bitboard {
	var shifted Bitboard
	rowDelta := center/Size - Center/Size
	colDelta := center%Size - Center%Size
	for _, i := range pattern.Cells() {
		row := i/Size + rowDelta
		col := i%Size + colDelta
		if row < 0 || row >= Size || col < 0 || col >= Size {
			continue
		}
		shifted = shifted.Set(row*Size + col)
	}
	return shifted
}
