package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/logger"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/scheduler"
)

var scheduleFlags struct {
	spec string
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run collect and analyze periodically until interrupted",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleFlags.spec, "spec", "", "Cron spec, overrides schedule.spec from config (e.g. \"@every 6h\")")
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := newEngine(ctx)
	if err != nil {
		return err
	}

	spec := cfg.Schedule.Spec
	if scheduleFlags.spec != "" {
		spec = scheduleFlags.spec
	}

	s := scheduler.New(spec, e.Run)
	if err := s.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Log.Info("收到退出信号，正在停止...")
	s.Stop()
	return nil
}
