package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Build parameters recorded alongside a compiled scene.
type BuildInfo struct {
	ID              string
	SplitMethod     string
	MaxPrimsPerLeaf uint32
	CreatedAt       time.Time
}

type Scene struct {
	Info BuildInfo

	// Flattened BVH in depth-first order.
	BvhNodeList []LinearNode

	// Primitive records in BVH order.
	PrimitiveList []Primitive

	// PrimitiveLookup[newPos] = original primitive index.
	PrimitiveLookup []uint32
}

// Check that the node list forms a traversable tree whose leaves cover the
// ordered primitive list exactly once and that the lookup is a permutation.
func (sc *Scene) Validate() error {
	primCount := len(sc.PrimitiveLookup)
	if len(sc.PrimitiveList) != 0 && len(sc.PrimitiveList) != primCount {
		return fmt.Errorf("%w: %d primitive records but %d lookup entries", ErrInvalidTree, len(sc.PrimitiveList), primCount)
	}

	seen := make([]bool, primCount)
	for _, orig := range sc.PrimitiveLookup {
		if int(orig) >= primCount || seen[orig] {
			return fmt.Errorf("%w: duplicate or out of range index %d", ErrInvalidLookup, orig)
		}
		seen[orig] = true
	}

	nodeCount := len(sc.BvhNodeList)
	if nodeCount == 0 {
		if primCount != 0 {
			return fmt.Errorf("%w: %d primitives but no nodes", ErrInvalidTree, primCount)
		}
		return nil
	}

	covered := make([]bool, primCount)
	visited := 0
	stack := []uint32{0}
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited++
		if visited > nodeCount {
			return fmt.Errorf("%w: node %d reachable more than once", ErrInvalidTree, index)
		}

		node := &sc.BvhNodeList[index]
		if node.IsLeaf() {
			first, count := node.GetPrimitives()
			if int(first)+int(count) > primCount {
				return fmt.Errorf("%w: leaf %d references primitives past the end of the list", ErrInvalidTree, index)
			}
			for p := first; p < first+count; p++ {
				if covered[p] {
					return fmt.Errorf("%w: primitive slot %d referenced by multiple leaves", ErrInvalidTree, p)
				}
				covered[p] = true
			}
			continue
		}

		left := index + 1
		right := node.SecondChildOffset
		if right <= index || int(right) >= nodeCount || int(left) >= nodeCount {
			return fmt.Errorf("%w: interior node %d has invalid children (%d, %d)", ErrInvalidTree, index, left, right)
		}
		stack = append(stack, right, left)
	}

	if visited != nodeCount {
		return fmt.Errorf("%w: %d of %d nodes reachable from the root", ErrInvalidTree, visited, nodeCount)
	}
	for p, ok := range covered {
		if !ok {
			return fmt.Errorf("%w: primitive slot %d not covered by any leaf", ErrInvalidTree, p)
		}
	}
	return nil
}

// Count leaf and interior nodes.
func (sc *Scene) NodeCounts() (leafs, interior int) {
	for index := range sc.BvhNodeList {
		if sc.BvhNodeList[index].IsLeaf() {
			leafs++
		} else {
			interior++
		}
	}
	return leafs, interior
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	leafs, interior := sc.NodeCounts()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})
	table.Append([]string{"BVH", "---", strconv.Itoa(len(sc.BvhNodeList)), fmtBytes(len(sc.BvhNodeList) * NodeStride)})
	table.Append([]string{"", "Leaf nodes", strconv.Itoa(leafs), fmtBytes(leafs * NodeStride)})
	table.Append([]string{"", "Interior nodes", strconv.Itoa(interior), fmtBytes(interior * NodeStride)})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Primitives", "---", strconv.Itoa(len(sc.PrimitiveList)), fmtSize(sc.PrimitiveList, sc.PrimitiveLookup)})
	table.Append([]string{"", "Records", strconv.Itoa(len(sc.PrimitiveList)), fmtSize(sc.PrimitiveList)})
	table.Append([]string{"", "Lookup", strconv.Itoa(len(sc.PrimitiveLookup)), fmtSize(sc.PrimitiveLookup)})
	table.SetFooter([]string{"Total", " ", " ", strings.TrimLeft(fmtBytes(len(sc.BvhNodeList)*NodeStride+sizeOf(sc.PrimitiveList, sc.PrimitiveLookup)), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	return fmtBytes(sizeOf(items...))
}

func sizeOf(items ...interface{}) int {
	totalBytes := 0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += int(t.Elem().Size()) * v.Len()
	}
	return totalBytes
}

func fmtBytes(count int) string {
	totalBytes := float32(count)
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", count)
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
