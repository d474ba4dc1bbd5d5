package treeprinter

import (
	"fmt"
	"strings"
)

const (
	StyleASCII   = 0
	StyleUnicode = 1
)

// Node 是多叉树节点，Data 可以是任意类型
type Node struct {
	Data     any
	Children []*Node
}

// Printer 是多叉树打印器的配置结构
type Printer struct {
	Root     *Node
	Style    int                // StyleASCII 或 StyleUnicode
	FormatFn func(*Node) string // 可选的自定义格式化函数
}

// Print 把多叉树渲染成缩进的文本形式
func Print(printer Printer) string {
	if printer.Root == nil {
		return "tree is empty\n"
	}

	connector := "'-- "
	branch := ".-- "
	space := "|   "
	if printer.Style == StyleUnicode {
		connector = "└── "
		branch = "├── "
		space = "│   "
	}

	var b strings.Builder

	var dfs func(node *Node, prefix string, isLast bool)
	dfs = func(node *Node, prefix string, isLast bool) {
		if node == nil {
			return
		}

		// 没有 FormatFn 就用 Data 的默认字符串
		label := fmt.Sprintf("%v", node.Data)
		if printer.FormatFn != nil {
			label = printer.FormatFn(node)
		}

		lead := branch
		if isLast {
			lead = connector
		}
		fmt.Fprintf(&b, "%s%s%s\n", prefix, lead, label)

		for i, child := range node.Children {
			newPrefix := prefix
			if isLast {
				newPrefix += "    "
			} else {
				newPrefix += space
			}
			dfs(child, newPrefix, i == len(node.Children)-1)
		}
	}

	dfs(printer.Root, "", true)
	return b.String()
}

// PrintForest 依次渲染一组互不相交的树
func PrintForest(roots []*Node, style int, format func(*Node) string) string {
	var b strings.Builder
	for _, r := range roots {
		b.WriteString(Print(Printer{Root: r, Style: style, FormatFn: format}))
	}
	return b.String()
}
