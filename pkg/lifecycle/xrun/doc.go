// Package xrun 管理进程内多个长期运行服务的启动与协调关闭。
//
// [Group] 基于 errgroup：任一服务返回错误或收到信号时，所有服务的
// context 被取消。[Run] 额外注册信号监听，收到信号后返回 [*SignalError]。
//
// 服务适配器：
//   - [PoolService]：启动 worker pool，ctx 取消后先 RequestStop 再 Wait
//   - [HTTPServer]：ListenAndServe + 优雅 Shutdown
//   - [Ticker]：周期执行
//
// 典型用法：
//
//	pool := xworker.MustNew(xworker.WithWorkers(4))
//	err := xrun.Run(ctx,
//	    xrun.PoolService(pool),
//	    xrun.HTTPServer(&http.Server{Addr: ":9090"}, 5*time.Second),
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 正常的信号退出
//	}
package xrun
