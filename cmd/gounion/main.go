package main

import (
	"fmt"
	"os"

	"union_tool/pkg/errorutil"
	"union_tool/pkg/graph"
	"union_tool/pkg/logutil"

	"github.com/spf13/cobra"
)

const TOOL_VERSION = "1.0.0+20260829"

func main() {
	var rootCmd = &cobra.Command{
		Use:   "gounion",
		Short: fmt.Sprintf("Gounion v%s 基于并查集的图连通性工具，支持 components/mst/cycle/forest 子命令", TOOL_VERSION),
		Long: "        ___        \n" +
			"       (o o)        __ _   ___   _   _  _ __  (_)  ___   _ __  \n" +
			"       | O \\       / _` | / _ \\ | | | || '_ \\ | | / _ \\ | '_ \\ \n" +
			"       \\    \\     | (_| || (_) || |_| || | | || || (_) || | | |\n" +
			"        `~~~'      \\__, | \\___/  \\__,_||_| |_||_| \\___/ |_| |_|\n" +
			"                   |___/                                       \n" +
			fmt.Sprintf("\nGounion v%s 基于并查集的图连通性工具，支持 components/mst/cycle/forest 子命令\n", TOOL_VERSION),
	}

	rootCmd.AddCommand(graph.ComponentsCmd())
	rootCmd.AddCommand(graph.MSTCmd())
	rootCmd.AddCommand(graph.CycleCmd())
	rootCmd.AddCommand(graph.ForestCmd())

	var logFile string
	logLevel := logutil.WARN

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	rootCmd.PersistentFlags().VarP(&logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "gounion.log", "日志文件名(默认gounion.log，stdout 表示标准输出)")
	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunE返回的错误内容
	rootCmd.SilenceErrors = true

	// 等待Cobra的flag解析完成后
	// PersistentPreRunE 回调，这个钩子会在用户的命令解析完成、flag 值填充后执行
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logutil.InitLogger(logFile, logLevel)
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		logutil.Error("命令执行失败: %v", err)
		msg, code := errorutil.FormatErrorAndCode(err)
		fmt.Fprintln(os.Stderr, msg)
		logutil.CloseLogger()
		os.Exit(code)
	}

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(0)
}
