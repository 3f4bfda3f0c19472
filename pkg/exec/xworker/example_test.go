package xworker_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/omeyang/xworker/pkg/exec/xworker"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

func ExamplePool() {
	p, err := xworker.New(xworker.WithWorkers(2), xworker.WithLogger(xlog.Discard()))
	if err != nil {
		panic(err)
	}
	p.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	p.DoWork(func() {
		defer wg.Done()
		fmt.Println("hello from worker")
	})
	wg.Wait()

	fmt.Println("stopped:", p.Stop())
	fmt.Println("started:", p.Started())
	// Output:
	// hello from worker
	// stopped: true
	// started: false
}

func ExamplePool_RequestStop() {
	p := xworker.MustNew(xworker.WithLogger(xlog.Discard()))
	p.Start()

	// RequestStop 可在信号处理中调用，不会阻塞
	fmt.Println("requested:", p.RequestStop())
	fmt.Println("accepting:", p.DoWork(func() {}))
	fmt.Println("waited:", p.Wait())
	fmt.Println("waited again:", p.Wait())
	// Output:
	// requested: true
	// accepting: false
	// waited: true
	// waited again: false
}

func ExampleSubmitRetry() {
	p, _ := xworker.NewDedicated(xworker.WithLogger(xlog.Discard()))
	p.Start()
	defer p.Stop()

	results := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		if err := xworker.SubmitRetry(context.Background(), p, func() { results <- i * i }); err != nil {
			fmt.Println("error:", err)
		}
	}
	fmt.Println(<-results, <-results, <-results)
	// Output:
	// 1 4 9
}

func ExampleInline() {
	e := xworker.NewInline(xworker.WithLogger(xlog.Discard()))
	e.Start()
	e.DoWork(func() { fmt.Println("ran inline") })
	e.Stop()
	// Output:
	// ran inline
}
