package preflow

import "github.com/wyfcoding/maxflow/xerrors"

// invariant 在 cond 不成立时以内部错误 panic。调用点都位于推送/重标号的临界区内。
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(xerrors.ErrInvariant.With(format, args...))
	}
}
