package unionfind

import (
	"errors"
	"math/rand"
	"testing"

	"union_tool/internal/testutils"
)

func mustNew(t *testing.T, n int) *UnionFind {
	t.Helper()
	uf, err := New(n)
	if err != nil {
		t.Fatalf("New(%d) 失败: %v", n, err)
	}
	return uf
}

func mustUnion(t *testing.T, uf *UnionFind, p, q int) {
	t.Helper()
	if err := uf.Union(p, q); err != nil {
		t.Fatalf("Union(%d, %d) 失败: %v", p, q, err)
	}
}

func mustConnected(t *testing.T, uf *UnionFind, p, q int) bool {
	t.Helper()
	same, err := uf.Connected(p, q)
	if err != nil {
		t.Fatalf("Connected(%d, %d) 失败: %v", p, q, err)
	}
	return same
}

func TestNewInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		if _, err := New(n); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d) 期望 ErrInvalidSize, 实际 %v", n, err)
		}
	}

	uf := mustNew(t, 1)
	if uf.Count() != 1 {
		t.Errorf("New(1) 的 Count 期望 1, 实际 %d", uf.Count())
	}
}

// 初始状态：每个元素自成一个集合
func TestInitialState(t *testing.T) {
	const n = 6
	uf := mustNew(t, n)

	if uf.Count() != n {
		t.Errorf("初始 Count 期望 %d, 实际 %d", n, uf.Count())
	}
	if uf.Len() != n {
		t.Errorf("Len 期望 %d, 实际 %d", n, uf.Len())
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := i == j
			if got := mustConnected(t, uf, i, j); got != want {
				t.Errorf("初始 Connected(%d, %d) 期望 %v, 实际 %v", i, j, want, got)
			}
		}
	}
}

// 固定场景：10 个元素按固定顺序合并，核对每一步的连通性和集合数，
// 顺带核对内部的挂接方向和秩
func TestWorkedScenario(t *testing.T) {
	uf := mustNew(t, 10)
	if uf.Count() != 10 {
		t.Fatalf("初始 Count 期望 10, 实际 %d", uf.Count())
	}

	mustUnion(t, uf, 2, 5)
	if !mustConnected(t, uf, 2, 5) {
		t.Errorf("union(2,5) 后 2 和 5 应当连通")
	}
	if uf.Count() != 9 {
		t.Errorf("union(2,5) 后 Count 期望 9, 实际 %d", uf.Count())
	}
	// 秩相等时第一个参数的根存活
	if uf.parent[5] != 2 || uf.rank[2] != 1 {
		t.Errorf("union(2,5) 后期望 parent[5]=2, rank[2]=1, 实际 parent[5]=%d, rank[2]=%d",
			uf.parent[5], uf.rank[2])
	}

	mustUnion(t, uf, 2, 8)
	if !mustConnected(t, uf, 5, 8) {
		t.Errorf("union(2,8) 后 5 和 8 应当连通")
	}
	if uf.Count() != 8 {
		t.Errorf("union(2,8) 后 Count 期望 8, 实际 %d", uf.Count())
	}
	// 矮树挂到高树下，秩不变
	if uf.parent[8] != 2 || uf.rank[2] != 1 {
		t.Errorf("union(2,8) 后期望 parent[8]=2, rank[2]=1")
	}

	mustUnion(t, uf, 4, 6)
	if uf.Count() != 7 {
		t.Errorf("union(4,6) 后 Count 期望 7, 实际 %d", uf.Count())
	}

	mustUnion(t, uf, 4, 2)
	if !mustConnected(t, uf, 6, 8) {
		t.Errorf("union(4,2) 后 6 和 8 应当连通")
	}
	if uf.Count() != 6 {
		t.Errorf("union(4,2) 后 Count 期望 6, 实际 %d", uf.Count())
	}
	if uf.parent[2] != 4 || uf.rank[4] != 2 {
		t.Errorf("union(4,2) 后期望 parent[2]=4, rank[4]=2, 实际 parent[2]=%d, rank[4]=%d",
			uf.parent[2], uf.rank[4])
	}

	mustUnion(t, uf, 9, 5)
	if !mustConnected(t, uf, 9, 2) {
		t.Errorf("union(9,5) 后 9 和 2 应当连通")
	}
	if uf.Count() != 5 {
		t.Errorf("union(9,5) 后 Count 期望 5, 实际 %d", uf.Count())
	}
	root9, _ := uf.Find(9)
	root2, _ := uf.Find(2)
	if root9 != root2 {
		t.Errorf("union(9,5) 后 Find(9)=%d 和 Find(2)=%d 应当相同", root9, root2)
	}
}

// 重复合并同一对元素不改变任何观测结果
func TestUnionIdempotent(t *testing.T) {
	uf := mustNew(t, 5)
	mustUnion(t, uf, 0, 1)
	countAfterFirst := uf.Count()
	sigAfterFirst, err := testutils.PartitionSignature(uf)
	if err != nil {
		t.Fatal(err)
	}

	mustUnion(t, uf, 0, 1)
	mustUnion(t, uf, 1, 0)
	if uf.Count() != countAfterFirst {
		t.Errorf("重复 union 后 Count 期望 %d, 实际 %d", countAfterFirst, uf.Count())
	}
	sigAfterRepeat, err := testutils.PartitionSignature(uf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := testutils.DiffPartitions(sigAfterFirst, sigAfterRepeat); diff != "" {
		t.Errorf("重复 union 改变了划分:\n%s", diff)
	}
}

func TestSymmetryAndTransitivity(t *testing.T) {
	uf := mustNew(t, 8)
	mustUnion(t, uf, 0, 3)
	mustUnion(t, uf, 3, 7)
	mustUnion(t, uf, 4, 5)

	for p := 0; p < 8; p++ {
		for q := 0; q < 8; q++ {
			if mustConnected(t, uf, p, q) != mustConnected(t, uf, q, p) {
				t.Errorf("Connected(%d,%d) 和 Connected(%d,%d) 不对称", p, q, q, p)
			}
		}
	}

	// 0~3 连通, 3~7 连通 => 0~7 连通
	if !mustConnected(t, uf, 0, 7) {
		t.Errorf("传递性失效: 0 和 7 应当连通")
	}
	if mustConnected(t, uf, 0, 4) {
		t.Errorf("0 和 4 不应当连通")
	}
}

// Count 单调不增，且只有真正合并两个集合时才减一
func TestCountMonotonic(t *testing.T) {
	uf := mustNew(t, 6)

	steps := []struct {
		p, q      int
		wantCount int
	}{
		{0, 1, 5}, // 真合并
		{0, 1, 5}, // 已连通, 不变
		{1, 2, 4},
		{2, 0, 4}, // 已连通, 不变
		{3, 4, 3},
		{4, 0, 2},
		{5, 5, 2}, // 自己和自己, 不变
	}
	prev := uf.Count()
	for _, s := range steps {
		mustUnion(t, uf, s.p, s.q)
		got := uf.Count()
		if got > prev {
			t.Errorf("union(%d,%d) 后 Count 上升了: %d -> %d", s.p, s.q, prev, got)
		}
		if got != s.wantCount {
			t.Errorf("union(%d,%d) 后 Count 期望 %d, 实际 %d", s.p, s.q, s.wantCount, got)
		}
		prev = got
	}
}

// 越界调用统一报 ErrIndexOutOfRange，并且不污染任何状态
func TestOutOfRangeRejection(t *testing.T) {
	const n = 4
	uf := mustNew(t, n)
	mustUnion(t, uf, 0, 2)

	before, err := testutils.PartitionSignature(uf)
	if err != nil {
		t.Fatal(err)
	}
	before = testutils.ClonePartition(before)
	countBefore := uf.Count()

	if _, err := uf.Find(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Find(-1) 期望 ErrIndexOutOfRange, 实际 %v", err)
	}
	if _, err := uf.Find(n); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Find(%d) 期望 ErrIndexOutOfRange, 实际 %v", n, err)
	}
	if err := uf.Union(n, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Union(%d, 0) 期望 ErrIndexOutOfRange, 实际 %v", n, err)
	}
	if err := uf.Union(0, -2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Union(0, -2) 期望 ErrIndexOutOfRange, 实际 %v", err)
	}
	if _, err := uf.Connected(0, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Connected(0, -1) 期望 ErrIndexOutOfRange, 实际 %v", err)
	}

	if uf.Count() != countBefore {
		t.Errorf("越界调用改变了 Count: %d -> %d", countBefore, uf.Count())
	}
	after, err := testutils.PartitionSignature(uf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := testutils.DiffPartitions(before, after); diff != "" {
		t.Errorf("越界调用改变了划分:\n%s\n%s", diff, testutils.FormatPartitionTable(after))
	}
}

// 路径压缩只影响性能：随机操作序列下和不压缩的参照实现逐步对齐
func TestCompressionTransparency(t *testing.T) {
	const n = 64
	const ops = 512

	uf := mustNew(t, n)
	ref := testutils.NewReference(n)
	rng := rand.New(rand.NewSource(42)) // 固定种子保证可复现

	for i := 0; i < ops; i++ {
		p, q := rng.Intn(n), rng.Intn(n)
		switch rng.Intn(3) {
		case 0:
			mustUnion(t, uf, p, q)
			if err := ref.Union(p, q); err != nil {
				t.Fatal(err)
			}
		case 1:
			got := mustConnected(t, uf, p, q)
			want, err := ref.Connected(p, q)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Fatalf("第 %d 步 Connected(%d,%d) 期望 %v, 实际 %v", i, p, q, want, got)
			}
		default:
			if _, err := uf.Find(p); err != nil {
				t.Fatal(err)
			}
		}

		if uf.Count() != ref.Count() {
			t.Fatalf("第 %d 步 Count 不一致: 实现 %d, 参照 %d", i, uf.Count(), ref.Count())
		}
	}

	wantSig, err := testutils.PartitionSignature(ref)
	if err != nil {
		t.Fatal(err)
	}
	gotSig, err := testutils.PartitionSignature(uf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := testutils.DiffPartitions(wantSig, gotSig); diff != "" {
		t.Errorf("最终划分和参照实现不一致:\n%s", diff)
	}
}

// 压缩后被访问路径上的节点直接指向根
func TestPathCompressionFlattens(t *testing.T) {
	uf := mustNew(t, 5)
	// 手工摆出一条链 0<-1<-2<-3<-4，绕过 Union 的按秩挂接
	for i := 1; i < 5; i++ {
		uf.parent[i] = i - 1
	}
	uf.count = 1

	root, err := uf.Find(4)
	if err != nil {
		t.Fatal(err)
	}
	if root != 0 {
		t.Fatalf("Find(4) 期望根 0, 实际 %d", root)
	}
	for i := 0; i < 5; i++ {
		if uf.parent[i] != 0 {
			t.Errorf("压缩后 parent[%d] 期望 0, 实际 %d", i, uf.parent[i])
		}
	}
}
