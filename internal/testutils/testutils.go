package testutils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mohae/deepcopy"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Finder 是测试关心的最小查询面，pkg/unionfind 的结构和
// 这里的 Reference 参照实现都满足它
type Finder interface {
	Find(p int) (int, error)
	Len() int
}

// Reference 是不带路径压缩的朴素并查集参照实现
// 合并规则（按秩、秩相等时第一个参数的根存活）和正式实现保持一致，
// 用来验证压缩只影响性能、不影响任何连通性结果
type Reference struct {
	parent []int
	rank   []int
	count  int
}

// NewReference 构造 n 个单元素集合的参照实现
func NewReference(n int) *Reference {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &Reference{parent: parent, rank: make([]int, n), count: n}
}

// Find 沿 parent 链走到根，不做任何压缩
func (r *Reference) Find(p int) (int, error) {
	if p < 0 || p >= len(r.parent) {
		return 0, fmt.Errorf("reference: 编号越界: %d", p)
	}
	for r.parent[p] != p {
		p = r.parent[p]
	}
	return p, nil
}

func (r *Reference) Union(p, q int) error {
	rootP, err := r.Find(p)
	if err != nil {
		return err
	}
	rootQ, err := r.Find(q)
	if err != nil {
		return err
	}
	if rootP == rootQ {
		return nil
	}
	switch {
	case r.rank[rootP] < r.rank[rootQ]:
		r.parent[rootP] = rootQ
	case r.rank[rootP] > r.rank[rootQ]:
		r.parent[rootQ] = rootP
	default:
		r.parent[rootQ] = rootP
		r.rank[rootP]++
	}
	r.count--
	return nil
}

func (r *Reference) Connected(p, q int) (bool, error) {
	rootP, err := r.Find(p)
	if err != nil {
		return false, err
	}
	rootQ, err := r.Find(q)
	if err != nil {
		return false, err
	}
	return rootP == rootQ, nil
}

func (r *Reference) Count() int { return r.count }

func (r *Reference) Len() int { return len(r.parent) }

// PartitionSignature 把当前的划分归一化成与代表元编号无关的形式：
// 每个集合是一行 "a,b,c"（成员升序），所有行再整体排序
// 两个结构连通性完全一致 当且仅当 签名相同
func PartitionSignature(f Finder) ([]string, error) {
	groups := map[int][]int{}
	for i := 0; i < f.Len(); i++ {
		root, err := f.Find(i)
		if err != nil {
			return nil, err
		}
		groups[root] = append(groups[root], i)
	}

	sig := make([]string, 0, len(groups))
	for _, members := range groups {
		sort.Ints(members)
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = fmt.Sprintf("%d", m)
		}
		sig = append(sig, strings.Join(parts, ","))
	}
	sort.Strings(sig)
	return sig, nil
}

// ClonePartition 深拷贝一份签名，避免测试里把期望值和实际值
// 指向同一个底层切片后互相污染
func ClonePartition(sig []string) []string {
	return deepcopy.Copy(sig).([]string)
}

// DiffPartitions 对比两个划分签名，相同返回空串，
// 不同返回带差异标注的可读文本，方便测试失败时定位
func DiffPartitions(want, got []string) string {
	wantText := strings.Join(want, "\n")
	gotText := strings.Join(got, "\n")
	if wantText == gotText {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(wantText, gotText, false)

	var b strings.Builder
	b.WriteString("划分不一致:\n")
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "-%s\n", d.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+%s\n", d.Text)
		}
	}
	return b.String()
}

// FormatPartitionTable 把划分签名排成对齐的两列表格（组号、成员），
// 宽度用 runewidth 计算，混入中文标题也不会错位
func FormatPartitionTable(sig []string) string {
	header := "组"
	width := runewidth.StringWidth(header)
	for i := range sig {
		label := fmt.Sprintf("#%d", i)
		if w := runewidth.StringWidth(label); w > width {
			width = w
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s 成员\n", runewidth.FillRight(header, width))
	for i, members := range sig {
		fmt.Fprintf(&b, "%s %s\n", runewidth.FillRight(fmt.Sprintf("#%d", i), width), members)
	}
	return b.String()
}
