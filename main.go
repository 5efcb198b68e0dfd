/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-12-10 15:40:12
 * @LastEditTime: 2025-12-10 15:40:12
 * @LastEditors: 安知鱼
 */
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anzhiyu-c/anheyu-news/cmd/server"
)

func main() {
	app, cleanup, err := server.NewApp()
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}
	defer cleanup()

	// 收到终止信号时先停调度器再退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("收到终止信号，开始优雅停机...")
		app.Stop()
		cleanup()
		os.Exit(0)
	}()

	if err := app.Run(); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
