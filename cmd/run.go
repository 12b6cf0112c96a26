package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haierkeys/fast-note-web/pkg/fileurl"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // 项目根目录
	port    string // 启动端口
	runMode string // 启动模式
	config  string // 指定要使用的配置文件路径
}

// configCandidates 未指定 -c 时按顺序查找的配置文件
var configCandidates = []string{
	"config/config-dev.yaml",
	"config.yaml",
	"config/config.yaml",
}

// resolveConfig 查找配置文件，都不存在时写出内置的默认配置
func resolveConfig(runEnv *runFlags) error {
	if len(runEnv.config) > 0 {
		return nil
	}
	for _, f := range configCandidates {
		if fileurl.IsExist(f) {
			runEnv.config = f
			return nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	runEnv.config = "config/config.yaml"

	if _, err := fileurl.WriteFileIfAbsent(runEnv.config, []byte(configDefault), 0644); err != nil {
		return err
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", runEnv.config))
	return nil
}

// watchConfig 配置文件写入时重建 Server
func watchConfig(runEnv *runFlags, current func() *Server, replace func(*Server)) {
	w := watcher.New()

	// 每个监听周期至多接收 1 个事件
	w.SetMaxEvents(1)

	// 只通知写入事件。
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				s := current()
				s.logger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
				s.sc.SendCloseSignal(nil)
				if err := s.sc.WaitClosed(); err != nil {
					s.logger.Warn("previous server closed with error", zap.Error(err))
				}

				// 重新初始化 server
				ns, err := NewServer(runEnv)
				if err != nil {
					bootstrapLogger.Error("service restart err", zap.Error(err))
					continue
				}
				replace(ns)

			case err := <-w.Error:
				current().logger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	if err := w.Add(runEnv.config); err != nil {
		current().logger.Error("config watcher file error", zap.Error(err))
		return
	}

	if err := w.Start(time.Second * 5); err != nil {
		current().logger.Error("config watcher start error", zap.Error(err))
	}
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port] [-m mode]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			if err := resolveConfig(runEnv); err != nil {
				bootstrapLogger.Error("config file auto create error", zap.Error(err))
				return
			}

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("web service start err", zap.Error(err))
				return
			}

			servers := make(chan *Server, 1)
			servers <- s
			current := func() *Server {
				cur := <-servers
				servers <- cur
				return cur
			}
			replace := func(ns *Server) {
				<-servers
				servers <- ns
			}

			go watchConfig(runEnv, current, replace)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			s = current()
			s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			s.sc.SendCloseSignal(nil)

			// 等待所有关闭处理器完成（包括 App Container 的优雅关闭）
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				s.logger.Info("Service has been shut down gracefully.")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}
