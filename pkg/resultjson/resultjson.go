package resultjson

import (
	"fmt"
	"os"

	"union_tool/pkg/errorutil"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// JSONFormat 控制输出是单行还是带缩进的多行
type JSONFormat string

const (
	JSONFormatOne   JSONFormat = "one"
	JSONFormatMulti JSONFormat = "multi"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可：
func (f *JSONFormat) String() string { return string(*f) }

func (f *JSONFormat) Set(val string) error {
	switch val {
	case string(JSONFormatOne), string(JSONFormatMulti):
		*f = JSONFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的 jsonformat 值: %s", val)
	}
}

func (f *JSONFormat) Type() string {
	return "jsonformat" // 这个字符串用于帮助文档与类型提示
}

// 列出所有的合法值
func (JSONFormat) Values() []string {
	return []string{
		string(JSONFormatOne),
		string(JSONFormatMulti),
	}
}

// Edge 是输入边列表里的一条边，权重缺省为 1
type Edge struct {
	Src    string
	Dst    string
	Weight float64
}

// EdgeList 是 JSON 边列表输入解析后的结果
// 格式示例:
//
//	{
//	    "nodes": ["a", "b", "c"],
//	    "edges": [{"src": "a", "dst": "b", "weight": 2}]
//	}
//
// nodes 可以省略，端点会自动注册成节点
type EdgeList struct {
	Nodes []string
	Edges []Edge
}

// ParseEdgeList 用 gjson 解析边列表输入，不合法的输入返回 CodeInvalidData
func ParseEdgeList(raw []byte) (*EdgeList, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errorutil.NewExitErrorWithMessage(
			errorutil.CodeInvalidData, "输入不是合法的 JSON", nil)
	}

	var el EdgeList
	seen := map[string]bool{}
	addNode := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			el.Nodes = append(el.Nodes, name)
		}
	}

	gjson.GetBytes(raw, "nodes").ForEach(func(_, v gjson.Result) bool {
		addNode(v.String())
		return true
	})

	var badEdge error
	gjson.GetBytes(raw, "edges").ForEach(func(_, v gjson.Result) bool {
		src := v.Get("src").String()
		dst := v.Get("dst").String()
		if src == "" || dst == "" {
			badEdge = errorutil.NewExitErrorWithMessage(
				errorutil.CodeInvalidData,
				fmt.Sprintf("边缺少 src/dst 字段: %s", v.Raw), nil)
			return false
		}
		weight := 1.0
		if w := v.Get("weight"); w.Exists() {
			weight = w.Float()
		}
		addNode(src)
		addNode(dst)
		el.Edges = append(el.Edges, Edge{Src: src, Dst: dst, Weight: weight})
		return true
	})
	if badEdge != nil {
		return nil, badEdge
	}

	if len(el.Nodes) == 0 {
		return nil, errorutil.NewExitErrorWithMessage(
			errorutil.CodeMissingInput, "输入中没有任何节点", nil)
	}
	return &el, nil
}

// Builder 用 sjson 逐步拼出结果 JSON，避免为每种结果都定义一套结构体
type Builder struct {
	doc string
	err error
}

func NewBuilder(action string) *Builder {
	b := &Builder{doc: "{}"}
	return b.Set("action", action)
}

func (b *Builder) Set(path string, value any) *Builder {
	if b.err != nil {
		return b
	}
	b.doc, b.err = sjson.Set(b.doc, path, value)
	return b
}

// Doc 返回按要求格式化后的最终 JSON
func (b *Builder) Doc(format JSONFormat) (string, error) {
	if b.err != nil {
		return "", errorutil.NewExitError(errorutil.CodeInternalErr, b.err)
	}
	if format == JSONFormatOne {
		return string(pretty.Ugly([]byte(b.doc))), nil
	}
	return string(pretty.Pretty([]byte(b.doc))), nil
}

// WriteResult 把结果写到文件，"-" 或空路径表示标准输出
func WriteResult(path, doc string) error {
	if path == "" || path == "-" {
		fmt.Println(doc)
		return nil
	}
	if err := os.WriteFile(path, []byte(doc+"\n"), 0644); err != nil {
		return errorutil.NewExitError(errorutil.CodeIOError, err)
	}
	return nil
}
