// This file is part of Pipesim.
//
// Pipesim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pipesim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pipesim.  If not, see <https://www.gnu.org/licenses/>.

package program

import (
	"fmt"
	"sort"

	"github.com/pipesim/pipesim/curated"
)

// Label identifies a basic block of a program.
type Label string

// Halt is the label returned by a block to end the program.
const Halt Label = ""

// Block performs the instructions of one basic block and returns the label
// of the next block.
type Block func() Label

// State returned by the continueCheck function of Run().
type State int

// List of valid states.
const (
	Running State = iota
	Ending
)

// UndefinedLabel is returned by Run() if a block is not defined.
const UndefinedLabel = "program: %s: undefined label (%s)"

// BlockSpan is the number of bytes of instruction memory given to each
// block.
const BlockSpan = 256

// Program is a routine of the simulated instruction set expressed as a set of
// basic blocks. Control flow between blocks is decided by the label each
// block returns.
//
// Every block has an address in instruction memory. Blocks are placed
// BlockSpan bytes apart in the order in which they were first defined.
type Program struct {
	Name  string
	Entry Label

	blocks map[Label]Block
	addrs  map[Label]uint32
}

// NewProgram is the preferred method of initialisation for the Program type.
func NewProgram(name string, entry Label) *Program {
	return &Program{
		Name:   name,
		Entry:  entry,
		blocks: make(map[Label]Block),
		addrs:  make(map[Label]uint32),
	}
}

func (prg *Program) String() string {
	return fmt.Sprintf("%s (%d blocks)", prg.Name, len(prg.blocks))
}

// Define a block. Redefining a label replaces the previous block.
func (prg *Program) Define(label Label, blk Block) *Program {
	if label == Halt {
		panic(fmt.Sprintf("program: %s: halt label cannot be defined", prg.Name))
	}
	if _, ok := prg.addrs[label]; !ok {
		prg.addrs[label] = uint32(len(prg.addrs) * BlockSpan)
	}
	prg.blocks[label] = blk
	return prg
}

// Address returns the instruction address of the block. The second return
// value is false if the label is not defined.
func (prg *Program) Address(label Label) (uint32, bool) {
	a, ok := prg.addrs[label]
	return a, ok
}

// Labels returns the defined labels in alphabetical order.
func (prg *Program) Labels() []Label {
	l := make([]Label, 0, len(prg.blocks))
	for k := range prg.blocks {
		l = append(l, k)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}

// Run the program from the entry label until a block returns Halt.
//
// The continueCheck function is called before each block with the label of
// that block. The program stops early if it returns Ending or an error. A nil
// continueCheck always continues.
//
// Returns the number of blocks performed.
func (prg *Program) Run(continueCheck func(next Label) (State, error)) (int, error) {
	if continueCheck == nil {
		continueCheck = func(_ Label) (State, error) { return Running, nil }
	}

	var n int

	next := prg.Entry
	for next != Halt {
		blk, ok := prg.blocks[next]
		if !ok {
			return n, curated.Errorf(UndefinedLabel, prg.Name, next)
		}

		state, err := continueCheck(next)
		if err != nil {
			return n, err
		}
		if state == Ending {
			return n, nil
		}

		next = blk()
		n++
	}

	return n, nil
}
