package yj1

import (
	"errors"
	"fmt"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

// node はハフマン木のノードです。
// 子ノードの位置はツリー上の位置ではなく、ノード自身の値から計算されます。
type node struct {
	value byte
	leaf  bool
	left  int
	right int
}

// huffmanTree はノード0を根とする配列上のハフマン木です
type huffmanTree []node

var errTreeWalk = errors.New("huffman walk left the tree")

// buildTree はヘッダ直後のリテラル表とフラグ列から木を構築し、
// 最初のサブブロックの開始オフセットを返します。
func buildTree(data []byte, h Header) (huffmanTree, int, error) {
	const op = "yj1.buildTree"

	treeLen := int(h.TreeLength) * 2
	flagBytes := ((treeLen + 15) >> 4) << 1
	end := HeaderSize + treeLen + flagBytes
	if end > len(data) {
		return nil, 0, codecerr.Data(op, "tree needs %d bytes, have %d", end, len(data))
	}

	tree := make(huffmanTree, treeLen+1)
	tree[0] = node{left: 1, right: 2}

	flags := NewBitReader(data[HeaderSize+treeLen : end])
	for i := 1; i <= treeLen; i++ {
		bit, err := flags.Read(1)
		if err != nil {
			return nil, 0, codecerr.Data(op, "read flag %d: %v", i, err)
		}
		n := node{value: data[15+i], leaf: bit == 0}
		if !n.leaf {
			n.left = int(n.value)<<1 + 1
			n.right = n.left + 1
		}
		tree[i] = n
	}
	return tree, end, nil
}

// decode は根から1ビットずつ辿り、葉のリテラルを返します
func (t huffmanTree) decode(br *BitReader) (byte, error) {
	n := 0
	for !t[n].leaf {
		bit, err := br.Read(1)
		if err != nil {
			return 0, err
		}
		if bit != 0 {
			n = t[n].right
		} else {
			n = t[n].left
		}
		if n >= len(t) {
			return 0, fmt.Errorf("%w: node %d of %d", errTreeWalk, n, len(t))
		}
	}
	return t[n].value, nil
}
