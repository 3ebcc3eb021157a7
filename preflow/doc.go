// Package preflow 使用 Goldberg–Tarjan 预流推进（push-relabel）算法计算有容量图中从源点到汇点的最大流。
//
// 图中的每条边都是双向可用的：边 (u, v, c) 上的流量 f 以 u→v 为正方向，满足 -c ≤ f ≤ c。
// 从 u 一侧推送时剩余容量为 c-f，从 v 一侧推送时为 c+f。源点固定为 0，汇点固定为 n-1。
//
// 提供三种执行方式：
//
//   - Sequential：单线程 FIFO 工作表驱动。
//   - Parallel：固定数量的 worker 共享同一张图与同一个工作表，按节点/边细粒度加锁并发推进，
//     通过在途计数实现静默检测（quiescence）来判断终止。
//   - Phased：批同步方式，每一轮由 worker 在冻结的图上并发计算操作，再由协调者顺序应用。
//
// 加锁顺序：先按节点编号升序获取两个端点的锁，再获取边锁；重标号只持有自身节点锁；
// 持有图锁时从不获取工作表锁以外的任何锁，而工作表锁只在释放图锁之后获取。
//
// 算法内部的不变量（推送量为正、推送后余量非负、|f| ≤ c）以 panic 形式断言，违反即视为程序缺陷。
package preflow
