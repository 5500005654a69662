package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ludokit/statetree"
	"github.com/ludokit/statetree/metrics"
	"github.com/ludokit/statetree/realtime"
)

// Demo: a patrolling enemy character at 60 FPS with structured logging and
// Prometheus metrics on :9108/metrics.

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	m, err := statetree.NewBuilder("Patrol").
		State("Patrol").
		Enter(func(statetree.Message) { fmt.Println("patrolling") }).
		Done().
		State("Chase").
		Enter(func(msg statetree.Message) {
			target, _ := msg.String("target")
			fmt.Println("chasing", target)
		}).
		Done().
		State("Attack").Done().
		State("Attack/Windup").
		Enter(func(statetree.Message) { fmt.Println("winding up") }).
		Done().
		State("Attack/Strike").
		Enter(func(statetree.Message) { fmt.Println("strike!") }).
		Done().
		Options(
			statetree.WithID("enemy-01"),
			statetree.WithLogger(logger),
			statetree.WithObserver(collector),
		).
		Build()
	if err != nil {
		logger.Fatal("build machine", zap.Error(err))
	}

	d := realtime.NewDriver(m, realtime.Config{
		TickRate:    16667 * time.Microsecond,
		PhysicsStep: 16667 * time.Microsecond,
		Logger:      logger,
	})
	if err := d.Start(context.Background()); err != nil {
		logger.Fatal("start driver", zap.Error(err))
	}

	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(":9108", nil); err != nil {
			logger.Error("metrics server", zap.Error(err))
		}
	}()

	// Scripted behavior loop until interrupted.
	go func() {
		script := []struct {
			target string
			msg    statetree.Message
		}{
			{"Chase", statetree.Message{"target": "player"}},
			{"Attack/Windup", nil},
			{"Attack/Strike", nil},
			{"Patrol", nil},
		}
		for i := 0; ; i++ {
			time.Sleep(2 * time.Second)
			step := script[i%len(script)]
			if err := d.RequestTransition(step.target, step.msg); err != nil {
				logger.Warn("request dropped", zap.String("target", step.target), zap.Error(err))
			}
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	d.Stop()

	fmt.Println("\nfinal state:", d.CurrentPath())
	fmt.Println(m.DOT())
}
