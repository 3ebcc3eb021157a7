package preflow

import (
	"context"
	"log/slog"
)

// Observer 接收每一次推送与重标号。回调在相关锁仍被持有时执行，
// 因此同一节点上的回调顺序与状态变更顺序一致；并发模式下实现必须是并发安全的。
type Observer interface {
	Pushed(from, to int, amount int64)
	Relabeled(node, height int)
}

type nopObserver struct{}

func (nopObserver) Pushed(int, int, int64) {}
func (nopObserver) Relabeled(int, int)     {}

// LogObserver 以 debug 级别记录每一次操作。
func LogObserver(logger *slog.Logger) Observer {
	return &logObserver{logger: logger}
}

type logObserver struct {
	logger *slog.Logger
}

func (o *logObserver) Pushed(from, to int, amount int64) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "push",
		slog.Int("from", from), slog.Int("to", to), slog.Int64("amount", amount))
}

func (o *logObserver) Relabeled(node, height int) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "relabel",
		slog.Int("node", node), slog.Int("height", height))
}

// MultiObserver 依次转发给多个 Observer。
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) Pushed(from, to int, amount int64) {
	for _, o := range m {
		o.Pushed(from, to, amount)
	}
}

func (m multiObserver) Relabeled(node, height int) {
	for _, o := range m {
		o.Relabeled(node, height)
	}
}
