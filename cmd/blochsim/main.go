package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/theapemachine/blochsphere"
	"github.com/theapemachine/errnie"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (yaml, toml, json)")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address, e.g. :9090")
	flag.Parse()

	cfg, err := blochsphere.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	session := blochsphere.NewSession(cfg, blochsphere.WithRegisterer(reg))
	defer session.Close()

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, reg)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	loop := blochsphere.NewLoop(session, nil)
	go loop.Run(ctx)

	frames := session.Subscribe("stdout", 16, blochsphere.SettledOnly)
	go printFrames(frames, os.Stdout)

	printFrame(os.Stdout, session.Frame())

	lines := make(chan string)
	go readLines(os.Stdin, lines, cancel)

	for {
		select {
		case <-ctx.Done():
			return
		case line := <-lines:
			if quit := execute(loop, line, os.Stdout); quit {
				return
			}
		}
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	errnie.Info("serveMetrics - listening on %s", addr)

	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error serving metrics: %v\n", err)
	}
}

func readLines(r io.Reader, out chan<- string, done context.CancelFunc) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		out <- scanner.Text()
	}
	done()
}

func printFrames(frames <-chan blochsphere.Frame, w io.Writer) {
	for frame := range frames {
		printFrame(w, frame)
	}
}

func printFrame(w io.Writer, f blochsphere.Frame) {
	fmt.Fprintf(w, "[%d] %s  p0=%.3f p1=%.3f  dir=(%.3f, %.3f, %.3f)\n",
		f.Sequence, f.Label, f.P0, f.P1, f.Direction.X, f.Direction.Y, f.Direction.Z)
}

// execute runs one command line and reports whether the user asked to quit.
func execute(loop *blochsphere.Loop, line string, w io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "angles":
		if len(fields) != 3 {
			fmt.Fprintln(w, "usage: angles <theta°> <phi°>")
			return false
		}
		theta, err1 := strconv.ParseFloat(fields[1], 64)
		phi, err2 := strconv.ParseFloat(fields[2], 64)
		if err := errors.Join(err1, err2); err != nil {
			fmt.Fprintf(w, "bad angles: %v\n", err)
			return false
		}
		loop.Do(func(s *blochsphere.Session) { s.SetAngles(theta, phi) })
	case "preset":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: preset <ground|excited|plus|minus|right|left>")
			return false
		}
		loop.Do(func(s *blochsphere.Session) { s.ApplyPreset(fields[1]) })
	case "gate":
		if len(fields) != 2 {
			fmt.Fprintf(w, "usage: gate <%s>\n", strings.Join(blochsphere.Gates(), "|"))
			return false
		}
		loop.Do(func(s *blochsphere.Session) { s.ApplyGate(fields[1]) })
	case "reset":
		loop.Do(func(s *blochsphere.Session) { s.Reset() })
	case "measure":
		loop.Measure(func(o blochsphere.Outcome) {
			fmt.Fprintf(w, "measured |%d⟩\n", o)
		})
	case "history":
		loop.Do(func(s *blochsphere.Session) {
			for _, e := range s.History() {
				fmt.Fprintf(w, "#%d %-7s %-7s θ %.3f→%.3f φ %.3f→%.3f\n",
					e.Sequence, e.Kind, e.ID, e.From.Theta, e.To.Theta, e.From.Phi, e.To.Phi)
			}
		})
	case "frame":
		loop.Do(func(s *blochsphere.Session) { fmt.Fprint(w, spew.Sdump(s.Frame())) })
	case "metrics":
		loop.Do(func(s *blochsphere.Session) {
			for k, v := range s.Metrics().ExportMetrics() {
				fmt.Fprintf(w, "%s: %v\n", k, v)
			}
		})
	default:
		fmt.Fprintf(w, "unknown command %q\n", fields[0])
	}

	return false
}
