package unionfind

import (
	"errors"
	"fmt"
)

// 构造和访问失败时返回的哨兵错误，调用方用 errors.Is 判断
var (
	ErrInvalidSize     = errors.New("unionfind: size 必须为正数")
	ErrIndexOutOfRange = errors.New("unionfind: 元素编号越界")
)

// UnionFind 是并查集结构，支持路径压缩和按秩合并
// 元素是 [0, n) 范围内的整数编号，集合只会合并不会拆分
//
// 注意：Find/Connected 虽然语义上是查询，但路径压缩会改写内部的
// parent 数组，所以并发使用时必须由调用方对整个结构加锁，
// 不能把它们当成只读操作
type UnionFind struct {
	parent []int
	rank   []int // 仅对根节点有意义，是树高的上界，不是集合大小
	count  int   // 当前剩余的集合数量
}

// New 初始化并查集，元素范围为 [0, n)，初始时每个元素自成一个集合
func New(n int) (*UnionFind, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]int, n),
		count:  n,
	}, nil
}

// checkIndex 统一做边界校验，失败的调用不会改动任何内部状态
func (uf *UnionFind) checkIndex(x int) error {
	if x < 0 || x >= len(uf.parent) {
		return fmt.Errorf("%w: %d 不在 [0, %d) 内", ErrIndexOutOfRange, x, len(uf.parent))
	}
	return nil
}

// find 查找根节点（带路径压缩），调用前编号必须已经校验过
func (uf *UnionFind) find(x int) int {
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x])
	}
	return uf.parent[x]
}

// Find 查找元素所在集合的根节点（代表元）
func (uf *UnionFind) Find(p int) (int, error) {
	if err := uf.checkIndex(p); err != nil {
		return 0, err
	}
	return uf.find(p), nil
}

// Union 合并两个元素所在的集合（按秩合并）
// 两个元素已经在同一集合时什么都不做
func (uf *UnionFind) Union(p, q int) error {
	// 两个编号都校验完再动状态
	if err := uf.checkIndex(p); err != nil {
		return err
	}
	if err := uf.checkIndex(q); err != nil {
		return err
	}

	rootP := uf.find(p)
	rootQ := uf.find(q)
	if rootP == rootQ {
		return nil // 已经在同一个集合
	}

	// 矮树挂到高树下面，树高才有 O(log n) 的上界
	switch {
	case uf.rank[rootP] < uf.rank[rootQ]:
		uf.parent[rootP] = rootQ
	case uf.rank[rootP] > uf.rank[rootQ]:
		uf.parent[rootQ] = rootP
	default:
		// 秩相等时固定让第一个参数的根存活，秩加一
		uf.parent[rootQ] = rootP
		uf.rank[rootP]++
	}
	uf.count--
	return nil
}

// Connected 判断两个元素是否在同一个集合
func (uf *UnionFind) Connected(p, q int) (bool, error) {
	rootP, err := uf.Find(p)
	if err != nil {
		return false, err
	}
	rootQ, err := uf.Find(q)
	if err != nil {
		return false, err
	}
	return rootP == rootQ, nil
}

// Count 返回当前剩余的集合数量
func (uf *UnionFind) Count() int {
	return uf.count
}

// Len 返回元素总数 n
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}
