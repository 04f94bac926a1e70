package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	promadapter "github.com/codewandler/cellactor/adapters/prometheus"
	"github.com/codewandler/cellactor/core/actor"
)

// === Config ===

var (
	logLevel   = slog.LevelInfo
	N          = getEnvInt("N", 100_000) // messages per producer
	numActors  = getEnvInt("ACTORS", 64)
	producers  = getEnvInt("PRODUCERS", 8)
	maxWorkers = getEnvInt("WORKERS", 0)
	batchSize  = getEnvInt("B", 100_000)
	useAsk     = getEnvBool("ASK", false)
)

func getEnvBool(key string, fallback bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	return v == "1" || strings.ToLower(v) == "true"
}

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, fmt.Sprintf("%d", fallback)))
	if err != nil {
		return fallback
	}
	return v
}

// === Domain ===

// seqMsg is numbered per producer so receivers can check ordering.
type seqMsg struct {
	Producer int
	Seq      int
}

var errOutOfOrder = errors.New("out of order")

// checker verifies that messages from each producer arrive in send order.
type checker struct {
	last     []int
	received int
}

func newChecker(producers int) actor.Actor[seqMsg] {
	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	return &checker{last: last}
}

func (c *checker) Receive(ctx *actor.Context, m seqMsg) error {
	var err error
	if want := c.last[m.Producer] + 1; m.Seq != want {
		err = fmt.Errorf("%w: producer=%d got=%d want=%d", errOutOfOrder, m.Producer, m.Seq, want)
	}
	c.last[m.Producer] = m.Seq
	c.received++
	if ctx.Sender() != nil {
		return errors.Join(err, ctx.Reply(c.received))
	}
	return err
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	fmt.Printf("   Actors: %d\n", numActors)
	fmt.Printf("Producers: %d\n", producers)
	fmt.Printf(" Messages: %d per producer\n", N)
	fmt.Printf("      Ask: %s\n", strconv.FormatBool(useAsk))

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	reg := prometheus.NewRegistry()
	metrics := promadapter.NewActorMetrics(reg)

	var (
		askErrs   int
		askErrsMu sync.Mutex
	)
	sys := actor.NewSystem(actor.Options{
		Context: ctx,
		Logger:  log,
		Metrics: metrics,
		Scheduler: actor.NewWorkerPool(actor.WorkerPoolOptions{
			Context:    ctx,
			Logger:     log,
			Metrics:    metrics,
			MaxWorkers: maxWorkers,
		}),
	})

	refs := make([]*actor.Ref[seqMsg], numActors)
	for i := range refs {
		refs[i] = actor.Spawn(sys, actor.NewProps(newChecker, producers))
	}

	// === START ===

	log.Info("==================================")
	log.Info("Starting ...")

	startAt := time.Now()

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lastTime := time.Now()
			for i := range N {
				ref := refs[(p+i)%numActors]
				// every actor sees the producer's subsequence in order
				msg := seqMsg{Producer: p, Seq: i / numActors}
				if useAsk {
					f, err := actor.Ask[int](ref, msg)
					checkErr(err)
					if _, err := f.Await(ctx); err != nil {
						askErrsMu.Lock()
						askErrs++
						askErrsMu.Unlock()
					}
				} else {
					ref.Send(msg, nil)
				}
				if p == 0 && i > 0 && i%batchSize == 0 {
					mu := getMemUsage()
					n := time.Now()
					took := n.Sub(lastTime)
					fmt.Printf(" | %7d msgs | %6d ms | %8d msgs/s | (%d / %d) MiB mem (sys) |\n", batchSize, took.Milliseconds(), int(float64(batchSize)/took.Seconds()), mu.Alloc/1024/1024, mu.Sys/1024/1024)
					lastTime = n
				}
			}
		}()
	}
	wg.Wait()

	sent := time.Since(startAt)
	drain(ctx, refs)
	sys.Shutdown()

	// === stats ===
	println("")
	println("==========================================")

	took := time.Since(startAt)
	runtime.GC()

	total := N * producers
	fmt.Printf("  send runtime: %.3f seconds\n", sent.Seconds())
	fmt.Printf(" total runtime: %.3f seconds\n", took.Seconds())
	fmt.Printf("      messages: %d\n", total)
	fmt.Printf("   avg. msgs/s: %d\n", int(float64(total)/took.Seconds()))
	fmt.Printf("    ask errors: %d\n", askErrs)
	fmt.Printf("  processed ok: %d\n", countProcessed(reg, true))
	fmt.Printf("  out of order: %d\n", countProcessed(reg, false))
}

// drain waits until every mailbox is empty and idle.
func drain(ctx context.Context, refs []*actor.Ref[seqMsg]) {
	for _, ref := range refs {
		for ref.Pending() > 0 || ref.Status() != actor.StatusIdle {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Millisecond):
			}
		}
	}
}

// countProcessed sums cellactor_messages_total for the given outcome.
func countProcessed(reg *prometheus.Registry, success bool) int {
	families, err := reg.Gather()
	checkErr(err)
	var n float64
	for _, mf := range families {
		if mf.GetName() != "cellactor_messages_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "success" && l.GetValue() == strconv.FormatBool(success) {
					n += m.GetCounter().GetValue()
				}
			}
		}
	}
	return int(n)
}

// === stats helpers ===

type MemUsage struct {
	Alloc      uint64 // bytes allocated and not yet freed (heap)
	TotalAlloc uint64 // cumulative bytes allocated
	Sys        uint64 // total bytes obtained from OS
	NumGC      uint32 // gc cycles
}

func getMemUsage() MemUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemUsage{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}

// === Helpers ===

func checkErr(err error) {
	if err != nil {
		panic(err)
	}
}
