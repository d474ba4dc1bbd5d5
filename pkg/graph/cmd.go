package graph

import (
	"fmt"
	"io"
	"os"
	"strings"

	"union_tool/pkg/errorutil"
	"union_tool/pkg/logutil"
	"union_tool/pkg/resultjson"
	"union_tool/pkg/treeprinter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// CLIOptions 是各子命令共享的输入输出选项
type CLIOptions struct {
	Input      string
	Kind       string // dot | json
	OutType    string // txt | json
	OutFile    string
	JSONFormat resultjson.JSONFormat
	Unicode    bool
}

// 所有子命令的输入面是一样的，flag 统一在这里挂
func addCommonFlags(cmd *cobra.Command, opts *CLIOptions) {
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "-", "输入文件，- 表示标准输入")
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "dot", "输入格式(dot|json)")
	cmd.Flags().StringVarP(&opts.OutType, "type", "t", "txt", "输出类型(txt|json)")
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", "-", "结果输出文件，- 表示标准输出")
	opts.JSONFormat = resultjson.JSONFormatMulti
	cmd.Flags().VarP(&opts.JSONFormat, "jsonformat", "f", "JSON 输出格式(one|multi)")
}

// loadModel 读输入并按 kind 构造模型
func (opts *CLIOptions) loadModel() (*Model, error) {
	var raw []byte
	var err error
	if opts.Input == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(opts.Input)
	}
	if err != nil {
		return nil, errorutil.NewExitErrorWithMessage(
			errorutil.CodeMissingInput,
			fmt.Sprintf("读取输入 %s 失败", opts.Input), err)
	}

	switch opts.Kind {
	case "json":
		el, err := resultjson.ParseEdgeList(raw)
		if err != nil {
			return nil, err
		}
		return FromEdgeList(el), nil
	case "dot":
		m, err := FromDOT(raw)
		if err != nil {
			return nil, errorutil.NewExitError(errorutil.CodeInvalidData, err)
		}
		return m, nil
	default:
		return nil, errorutil.NewExitErrorWithMessage(
			errorutil.CodeInvalidUsage,
			fmt.Sprintf("未知的输入格式: %s", opts.Kind), nil)
	}
}

// emit 按 -t 选择人类可读文本或 JSON 结果
func (opts *CLIOptions) emit(text string, b *resultjson.Builder) error {
	switch opts.OutType {
	case "txt":
		return resultjson.WriteResult(opts.OutFile, strings.TrimRight(text, "\n"))
	case "json":
		doc, err := b.Doc(opts.JSONFormat)
		if err != nil {
			return err
		}
		return resultjson.WriteResult(opts.OutFile, doc)
	default:
		return errorutil.NewExitErrorWithMessage(
			errorutil.CodeInvalidUsage,
			fmt.Sprintf("未知的输出类型: %s", opts.OutType), nil)
	}
}

// ComponentsCmd 求连通分量
func ComponentsCmd() *cobra.Command {
	opts := &CLIOptions{}

	cmd := &cobra.Command{
		Use:   "components",
		Short: "计算图的连通分量",
		Long: `计算图的连通分量
Examples:

gounion components -i demo.dot
gounion components -k json -i edges.json -t json -f one`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadModel()
			if err != nil {
				return err
			}
			comps, err := m.Components()
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}
			logutil.Info("节点 %s 个, 边 %s 条, 连通分量 %s 个",
				humanize.Comma(int64(m.Index.Len())),
				humanize.Comma(int64(len(m.Edges))),
				humanize.Comma(int64(len(comps))))

			var text strings.Builder
			fmt.Fprintf(&text, "共 %s 个节点, %s 个连通分量\n",
				humanize.Comma(int64(m.Index.Len())),
				humanize.Comma(int64(len(comps))))
			for i, members := range comps {
				fmt.Fprintf(&text, "#%d: %s\n", i, strings.Join(members, ", "))
			}

			b := resultjson.NewBuilder("components").
				Set("node_count", m.Index.Len()).
				Set("group_count", len(comps)).
				Set("components", comps)
			return opts.emit(text.String(), b)
		},
	}
	addCommonFlags(cmd, opts)
	return cmd
}

// MSTCmd 用 Kruskal 求最小生成森林
func MSTCmd() *cobra.Command {
	opts := &CLIOptions{}

	cmd := &cobra.Command{
		Use:   "mst",
		Short: "用 Kruskal 算法求最小生成森林",
		Long: `用 Kruskal 算法求最小生成森林，边权取 DOT 的 weight 属性
或 JSON 边列表的 weight 字段，缺省为 1
Examples:

gounion mst -i weighted.dot
gounion mst -k json -i edges.json -t json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadModel()
			if err != nil {
				return err
			}
			mst, err := m.Kruskal()
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}

			var text strings.Builder
			fmt.Fprintf(&text, "选中 %s 条边, 总权重 %g\n",
				humanize.Comma(int64(len(mst.Edges))), mst.TotalWeight)
			if !mst.Spanning {
				text.WriteString("(图不连通, 结果是生成森林)\n")
			}
			edges := make([]map[string]any, 0, len(mst.Edges))
			for _, e := range mst.Edges {
				fmt.Fprintf(&text, "%s -- %s [%g]\n", e.Src, e.Dst, e.Weight)
				edges = append(edges, map[string]any{
					"src": e.Src, "dst": e.Dst, "weight": e.Weight,
				})
			}

			b := resultjson.NewBuilder("mst").
				Set("edge_count", len(mst.Edges)).
				Set("total_weight", mst.TotalWeight).
				Set("spanning", mst.Spanning).
				Set("edges", edges)
			return opts.emit(text.String(), b)
		},
	}
	addCommonFlags(cmd, opts)
	return cmd
}

// CycleCmd 检测按输入顺序加边时第一条成环的边
func CycleCmd() *cobra.Command {
	opts := &CLIOptions{}

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "检测图中是否有环（第一条成环的边）",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadModel()
			if err != nil {
				return err
			}
			edge, found, err := m.CycleEdge()
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}

			var text string
			b := resultjson.NewBuilder("cycle").Set("found", found)
			if found {
				text = fmt.Sprintf("存在环, 成环的边: %s -- %s", edge.Src, edge.Dst)
				b = b.Set("edge.src", edge.Src).Set("edge.dst", edge.Dst)
			} else {
				text = "无环"
			}
			return opts.emit(text, b)
		},
	}
	addCommonFlags(cmd, opts)
	return cmd
}

// ForestCmd 把连通分量渲染成树形文本
func ForestCmd() *cobra.Command {
	opts := &CLIOptions{}

	cmd := &cobra.Command{
		Use:   "forest",
		Short: "把每个连通分量渲染成一棵树",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadModel()
			if err != nil {
				return err
			}
			roots, err := m.Forest()
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}

			style := treeprinter.StyleASCII
			if opts.Unicode {
				style = treeprinter.StyleUnicode
			}
			text := treeprinter.PrintForest(roots, style, nil)

			comps, err := m.Components()
			if err != nil {
				return errorutil.NewExitError(errorutil.CodeInternalErr, err)
			}
			b := resultjson.NewBuilder("forest").
				Set("group_count", len(comps)).
				Set("components", comps)
			return opts.emit(text, b)
		},
	}
	addCommonFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.Unicode, "unicode", "u", false, "使用 unicode 制表符")
	return cmd
}
