package preflow

import (
	"log/slog"

	"github.com/sourcegraph/conc"
)

// runParallel 启动 workers 个 worker 共享同一张图与同一个工作表，直到全局静默。
//
// 每个活跃节点要么在工作表中恰好出现一次，要么正被恰好一个 worker 处理：
// 节点只在余量由零变正时被推送方加入，或由正在处理它的 worker 重新加入。
// 因此重标号前扫描得出的“无可推送边”结论在扫描结束后依然成立：
// 其他 worker 只能抬高邻居的高度，或在邻居更高时增大朝向该邻居的剩余容量。
func (en *engine) runParallel(initial []int, workers int, logger *slog.Logger) (counters, uint64) {
	wl := newSharedWorklist()
	for _, id := range initial {
		wl.push(id)
	}

	per := make([]counters, workers)
	var wg conc.WaitGroup
	for w := range workers {
		wg.Go(func() {
			var c counters
			defer func() {
				if r := recover(); r != nil {
					// 不变量被破坏：放行其余 worker 后把 panic 交给 Wait 的调用者
					wl.abort()
					panic(r)
				}
				per[w] = c
			}()
			for {
				id, ok := wl.take()
				if !ok {
					break
				}
				wl.done(en.discharge(id, &c))
			}
			logger.Debug("preflow worker exiting", "worker", w, "discharges", c.discharges, "pushes", c.pushes, "relabels", c.relabels)
		})
	}
	wg.Wait()

	var total counters
	for _, c := range per {
		total.add(c)
	}
	return total, wl.waits
}
