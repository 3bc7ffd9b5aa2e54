/*
This is the demo driver for the gyre engine: it reads commands such as
"sphere 5", "project z" or "start" from stdin and renders every frame
through the configured backends.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/gyre/engine"
	"github.com/spaghettifunk/gyre/engine/assets"
	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/platform"
	"github.com/spaghettifunk/gyre/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	flag.Parse()

	config := engine.DefaultApplicationConfig()
	if *configPath != "" {
		c, err := engine.LoadApplicationConfig(*configPath)
		if err != nil {
			core.LogFatal("loading %s: %s", *configPath, err)
		}
		config = c
	}

	loop := platform.NewEventLoop(0)
	tb := testbed.NewTestGame(config)

	e, err := engine.New(tb.Game, loop)
	if err != nil {
		panic(err)
	}
	if err := e.Initialize(); err != nil {
		panic(err)
	}
	tb.Attach(e)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		core.LogInfo("signal received, shutting down")
		cancel()
	}()

	if *configPath != "" {
		watcher, err := assets.NewConfigWatcher(*configPath, func(path string) {
			c, err := engine.LoadApplicationConfig(path)
			if err != nil {
				core.LogError("reloading %s: %s", path, err)
				return
			}
			if err := loop.Post(func() { _ = e.ApplyConfig(c) }); err != nil {
				core.LogWarn("config reload dropped: %s", err)
			}
		})
		if err != nil {
			core.LogError("config watcher disabled: %s", err)
		} else {
			if err := watcher.Start(); err != nil {
				core.LogError("config watcher disabled: %s", err)
			}
			defer watcher.Close()
		}
	}

	go testbed.ReadCommands(os.Stdin, loop, e, os.Stdout, cancel)

	if err := loop.Run(ctx); err != nil {
		core.LogError(err.Error())
	}
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
}
