// Command maxflow 计算流网络从节点 0 到节点 n-1 的最大流。
//
//	maxflow solve  [flags] [file]   求解一个实例（默认读取 stdin）
//	maxflow verify [flags] [file]   并发运行全部求解方式与参考解法并比较结果
//	maxflow gen    [flags]          生成随机实例
//	maxflow serve  [flags]          启动 HTTP 求解服务
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/wyfcoding/maxflow/bootstrap"
	"github.com/wyfcoding/maxflow/graphio"
)

const serviceName = "maxflow"

var version = "dev"

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error
}

var commands = []command{
	{"solve", "compute the maximum flow of one instance", runSolve},
	{"verify", "cross-check all solvers on one instance", runVerify},
	{"gen", "write a random instance", runGen},
	{"serve", "run the HTTP solver service", runServe},
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	if args[0] == "version" {
		fmt.Fprintln(stdout, version)
		return 0
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		if err := c.run(ctx, args[1:], stdin, stdout); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return 0
			}
			fmt.Fprintf(stderr, "maxflow %s: %v\n", c.name, err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(stderr, "maxflow: unknown command %q\n", args[0])
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: maxflow <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "  %-8s %s\n", "version", "print the version")
}

// newFlagSet 创建子命令的 FlagSet 并注册通用参数。
func newFlagSet(name string, b *bootstrap.Bootstrapper) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	b.RegisterFlags(fs)
	return fs
}

// solverFlags 注册求解参数。
func solverFlags(fs *pflag.FlagSet) {
	fs.StringP("mode", "m", "sequential", "execution mode: sequential, parallel or phased")
	bootstrap.AddFlag(fs, "mode", "solver.mode")
	fs.IntP("workers", "w", 4, "worker count for parallel and phased modes")
	bootstrap.AddFlag(fs, "workers", "solver.workers")
	fs.Bool("verify", false, "check the max-flow properties after solving")
	bootstrap.AddFlag(fs, "verify", "solver.verify")
	fs.Bool("trace-ops", false, "log every push and relabel at debug level")
	bootstrap.AddFlag(fs, "trace-ops", "solver.trace_ops")
}

// readInstance 从位置参数指定的文件读取实例，未指定或为 "-" 时读取 stdin。
func readInstance(fs *pflag.FlagSet, stdin io.Reader) (*graphio.Instance, error) {
	path := fs.Arg(0)
	if path == "" || path == "-" {
		return graphio.Read(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return graphio.Read(f)
}
