package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/logger"
)

// Job 一次完整的采集+分析周期
type Job func(ctx context.Context) error

// Scheduler 基于 cron 周期执行任务
type Scheduler struct {
	cron   *cron.Cron
	logger cron.Logger
	spec   string
	job    Job
	wg     sync.WaitGroup
}

// New 创建调度器，spec 支持标准 cron 表达式和 @every 写法
func New(spec string, job Job) *Scheduler {
	cronLogger := cron.PrintfLogger(logger.Log)
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger)),
		logger: cronLogger,
		spec:   spec,
		job:    job,
	}
}

// Start 注册任务并启动调度，同时立即执行一次。
// 立即执行与定时触发共用同一个 SkipIfStillRunning 包装，同一时刻最多一轮在跑。
func (s *Scheduler) Start(ctx context.Context) error {
	wrapped := cron.NewChain(cron.Recover(s.logger), cron.SkipIfStillRunning(s.logger)).
		Then(cron.FuncJob(func() { s.runCycle(ctx) }))

	if _, err := s.cron.AddJob(s.spec, wrapped); err != nil {
		return fmt.Errorf("cron add job %q: %w", s.spec, err)
	}

	s.cron.Start()
	logger.Log.Infof("定时任务已启动，周期: %s", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		wrapped.Run()
	}()
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	logger.Log.Info("定时任务已停止")
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	logger.Log.Info("🌰 本轮任务开始")
	if err := s.job(ctx); err != nil {
		logger.Log.Errorf("本轮任务失败: %v", err)
		return
	}
	logger.Log.Info("本轮任务完成")
}
