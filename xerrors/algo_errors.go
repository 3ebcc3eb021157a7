package xerrors

var (
	// ErrInvalidGraph 图的规模非法（节点数不足等）。
	ErrInvalidGraph = New(ErrInvalidArg, 400101, "invalid graph", "a flow network needs at least a source and a sink", nil)
	// ErrEdgeOutOfRange 边的端点越界。
	ErrEdgeOutOfRange = New(ErrInvalidArg, 400102, "edge endpoint out of range", "node ids are 0-based and below the node count", nil)
	// ErrNegativeCapacity 边容量为负。
	ErrNegativeCapacity = New(ErrInvalidArg, 400103, "negative capacity", "capacities must be non-negative integers", nil)
	// ErrMalformedInput 输入文本无法解析。
	ErrMalformedInput = New(ErrInvalidArg, 400104, "malformed input", "expected n m c p followed by m triples u v c", nil)
	// ErrInvalidOption 求解参数非法。
	ErrInvalidOption = New(ErrInvalidArg, 400105, "invalid solver option", "", nil)
	// ErrGraphTooLarge 节点数或边数超过配置上限。
	ErrGraphTooLarge = New(ErrTooLarge, 413101, "graph too large", "node or edge count exceeds the configured limit", nil)
	// ErrBusy 求解并发额度已耗尽。
	ErrBusy = New(ErrLimitExceeded, 429101, "solver busy", "too many concurrent solves", nil)
	// ErrInvariant 预流不变量被破坏，属于程序缺陷。
	ErrInvariant = New(ErrInternal, 500101, "preflow invariant violated", "", nil)
	// ErrCheckFailed 求解结束后的校验未通过。
	ErrCheckFailed = New(ErrInternal, 500102, "max-flow check failed", "", nil)
	// ErrFlowMismatch 不同求解方式得到的流值不一致。
	ErrFlowMismatch = New(ErrInternal, 500103, "flow mismatch", "solvers disagree on the maximum flow", nil)
)
