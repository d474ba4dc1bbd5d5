package graph

import (
	"fmt"
	"strconv"
	"strings"

	"union_tool/pkg/resultjson"
	"union_tool/pkg/treeprinter"
	"union_tool/pkg/unionfind"

	"github.com/awalterschulze/gographviz"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/google/btree"
)

// nameItem 让节点名可以放进 google/btree
type nameItem string

func (a nameItem) Less(b btree.Item) bool { return a < b.(nameItem) }

// NodeIndex 给节点名分配稠密的整数编号
// 编号按名字的字典序分配（靠 btree 的有序遍历），
// 这样同样的输入总是得到同样的编号和输出顺序
type NodeIndex struct {
	tree  *btree.BTree
	ids   map[string]int
	names []string
}

func NewNodeIndex() *NodeIndex {
	return &NodeIndex{tree: btree.New(2)}
}

// Add 注册一个节点名，重复注册无副作用
func (ix *NodeIndex) Add(name string) {
	ix.tree.ReplaceOrInsert(nameItem(name))
	ix.ids = nil // 编号失效，下次访问时重建
	ix.names = nil
}

func (ix *NodeIndex) build() {
	if ix.ids != nil {
		return
	}
	ix.ids = make(map[string]int, ix.tree.Len())
	ix.names = make([]string, 0, ix.tree.Len())
	ix.tree.Ascend(func(i btree.Item) bool {
		name := string(i.(nameItem))
		ix.ids[name] = len(ix.names)
		ix.names = append(ix.names, name)
		return true
	})
}

// ID 返回节点名对应的编号
func (ix *NodeIndex) ID(name string) (int, bool) {
	ix.build()
	id, ok := ix.ids[name]
	return id, ok
}

// Name 返回编号对应的节点名
func (ix *NodeIndex) Name(id int) string {
	ix.build()
	return ix.names[id]
}

func (ix *NodeIndex) Len() int {
	return ix.tree.Len()
}

// Edge 是模型里的一条无向边
type Edge struct {
	Src    string
	Dst    string
	Weight float64
}

// Model 是跑并查集算法的输入：一批节点和一批无向边
// 并查集本身不存图（它只认整数编号），图结构都归这里管
type Model struct {
	Index *NodeIndex
	Edges []Edge
}

// FromDOT 解析 DOT 文本构造模型，边上的 weight 属性作为权重（缺省 1）
func FromDOT(data []byte) (*Model, error) {
	ast, err := gographviz.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("无法解析 DOT 输入: %w", err)
	}
	g := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, g); err != nil {
		return nil, fmt.Errorf("无法分析 DOT 图: %w", err)
	}

	m := &Model{Index: NewNodeIndex()}
	for _, node := range g.Nodes.Nodes {
		m.Index.Add(node.Name)
	}
	for _, e := range g.Edges.Edges {
		weight := 1.0
		if w, ok := e.Attrs[gographviz.Attr("weight")]; ok {
			// DOT 属性值可能带引号
			parsed, err := strconv.ParseFloat(strings.Trim(w, `"`), 64)
			if err != nil {
				return nil, fmt.Errorf("边 %s--%s 的 weight 属性非法: %q", e.Src, e.Dst, w)
			}
			weight = parsed
		}
		m.Index.Add(e.Src)
		m.Index.Add(e.Dst)
		m.Edges = append(m.Edges, Edge{Src: e.Src, Dst: e.Dst, Weight: weight})
	}
	if m.Index.Len() == 0 {
		return nil, fmt.Errorf("DOT 输入中没有任何节点")
	}
	return m, nil
}

// FromEdgeList 从 JSON 边列表构造模型
func FromEdgeList(el *resultjson.EdgeList) *Model {
	m := &Model{Index: NewNodeIndex()}
	for _, n := range el.Nodes {
		m.Index.Add(n)
	}
	for _, e := range el.Edges {
		m.Index.Add(e.Src)
		m.Index.Add(e.Dst)
		m.Edges = append(m.Edges, Edge{Src: e.Src, Dst: e.Dst, Weight: e.Weight})
	}
	return m
}

// newSets 建好并查集并把所有边合并进去
func (m *Model) newSets() (*unionfind.UnionFind, error) {
	uf, err := unionfind.New(m.Index.Len())
	if err != nil {
		return nil, err
	}
	for _, e := range m.Edges {
		src, _ := m.Index.ID(e.Src)
		dst, _ := m.Index.ID(e.Dst)
		if err := uf.Union(src, dst); err != nil {
			return nil, err
		}
	}
	return uf, nil
}

// Components 返回所有连通分量，分量内按名排序，
// 分量间按第一个成员排序
func (m *Model) Components() ([][]string, error) {
	uf, err := m.newSets()
	if err != nil {
		return nil, err
	}

	byRoot := map[int][]string{}
	order := []int{}
	for i := 0; i < uf.Len(); i++ {
		root, err := uf.Find(i)
		if err != nil {
			return nil, err
		}
		if _, ok := byRoot[root]; !ok {
			order = append(order, root)
		}
		// 编号本来就是按名序分配的，顺着编号遍历成员天然有序
		byRoot[root] = append(byRoot[root], m.Index.Name(i))
	}

	comps := make([][]string, 0, len(order))
	for _, root := range order {
		comps = append(comps, byRoot[root])
	}
	return comps, nil
}

// CycleEdge 按输入顺序逐条合并边，返回第一条两端已经连通的边
// （也就是 Kruskal 意义上第一条成环的边），自环也算
func (m *Model) CycleEdge() (Edge, bool, error) {
	uf, err := unionfind.New(m.Index.Len())
	if err != nil {
		return Edge{}, false, err
	}
	for _, e := range m.Edges {
		src, _ := m.Index.ID(e.Src)
		dst, _ := m.Index.ID(e.Dst)
		same, err := uf.Connected(src, dst)
		if err != nil {
			return Edge{}, false, err
		}
		if same {
			return e, true, nil
		}
		if err := uf.Union(src, dst); err != nil {
			return Edge{}, false, err
		}
	}
	return Edge{}, false, nil
}

// MST 是 Kruskal 的结果，Spanning 表示森林是否是一棵树（图连通）
type MST struct {
	Edges       []Edge
	TotalWeight float64
	Spanning    bool
}

// Kruskal 求最小生成森林
// 边按权重从小到大出堆，成环的边（两端已连通）直接丢弃
func (m *Model) Kruskal() (*MST, error) {
	uf, err := unionfind.New(m.Index.Len())
	if err != nil {
		return nil, err
	}

	// 权重相同的边按端点名做次级排序，保证结果稳定
	heap := binaryheap.NewWith(func(a, b interface{}) int {
		ea, eb := a.(Edge), b.(Edge)
		switch {
		case ea.Weight < eb.Weight:
			return -1
		case ea.Weight > eb.Weight:
			return 1
		case ea.Src != eb.Src:
			return strings.Compare(ea.Src, eb.Src)
		default:
			return strings.Compare(ea.Dst, eb.Dst)
		}
	})
	for _, e := range m.Edges {
		heap.Push(e)
	}

	mst := &MST{}
	for !heap.Empty() {
		v, _ := heap.Pop()
		e := v.(Edge)
		src, _ := m.Index.ID(e.Src)
		dst, _ := m.Index.ID(e.Dst)
		same, err := uf.Connected(src, dst)
		if err != nil {
			return nil, err
		}
		if same {
			continue
		}
		if err := uf.Union(src, dst); err != nil {
			return nil, err
		}
		mst.Edges = append(mst.Edges, e)
		mst.TotalWeight += e.Weight
	}
	mst.Spanning = uf.Count() == 1
	return mst, nil
}

// Forest 把每个连通分量渲染成一棵树：代表元是根，其余成员是叶子
func (m *Model) Forest() ([]*treeprinter.Node, error) {
	comps, err := m.Components()
	if err != nil {
		return nil, err
	}
	roots := make([]*treeprinter.Node, 0, len(comps))
	for _, members := range comps {
		root := &treeprinter.Node{Data: members[0]}
		for _, name := range members[1:] {
			root.Children = append(root.Children, &treeprinter.Node{Data: name})
		}
		roots = append(roots, root)
	}
	return roots, nil
}
