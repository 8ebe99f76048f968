package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/config"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/engine"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/logger"
)

// version 构建时通过 -ldflags 注入
var version = "dev"

var rootFlags struct {
	configPath string
	envFile    string
}

// cfg 在 PersistentPreRunE 中加载，供各子命令使用
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "agent_pulse",
	Short: "Track the AI agent bounty market on GitHub",
	Long:  "agent_pulse collects bounty and job issues from GitHub search\nand asks an LLM for a market pulse report.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "configs/config.yaml", "Path to config file")
	pf.StringVar(&rootFlags.envFile, "env-file", ".env", "Path to dotenv file with credentials (ignored when absent)")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.Version = version
}

// setup 加载 .env、配置文件并初始化日志
func setup(cmd *cobra.Command, _ []string) error {
	if rootFlags.envFile != "" {
		err := godotenv.Load(rootFlags.envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %q: %w", rootFlags.envFile, err)
		}
	}

	c, err := config.LoadConfig(rootFlags.configPath)
	if err != nil {
		return fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := logger.InitLogger(c.Log.Level, c.Log.File); err != nil {
		return fmt.Errorf("无法初始化日志: %w", err)
	}
	cfg = c
	return nil
}

func newEngine(ctx context.Context) (*engine.Engine, error) {
	return engine.NewEngine(ctx, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Log.Error(err)
		os.Exit(1)
	}
}
