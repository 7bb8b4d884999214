// Package server exposes a reasoner over a line-oriented TCP protocol.
//
// Each request line is either a Narsese sentence or a command:
//
//	<robin --> bird>. {0.9 0.9}   OK <robin --> bird>. {0.9 0.9}
//	<robin --> animal>?           ANSWER <robin --> animal>. {...} | NONE
//	!think [steps]                DERIVED <...>. {...} ... then OK <n> derived
//	!explain <robin --> animal>   EXPLAIN <line> ... then OK
//
// Failures are reported as "ERR <message>" and never close the connection.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ntoxeg/narst/pkg/narst"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

// Options configures a Server.
type Options struct {
	Reasoner       *narst.Narst
	Logger         *zap.Logger
	MaxConns       int
	LinesPerSecond float64
	Burst          int
	MaxSteps       int
}

// Server serves Narsese lines to a shared reasoner.
type Server struct {
	reasoner *narst.Narst
	logger   *zap.Logger
	maxConns int
	limit    rate.Limit
	burst    int
	maxSteps int

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// New creates a server. Zero-valued limits fall back to conservative defaults.
func New(opts Options) *Server {
	s := &Server{
		reasoner: opts.Reasoner,
		logger:   opts.Logger,
		maxConns: opts.MaxConns,
		limit:    rate.Limit(opts.LinesPerSecond),
		burst:    opts.Burst,
		maxSteps: opts.MaxSteps,
		conns:    make(map[net.Conn]struct{}),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.maxConns <= 0 {
		s.maxConns = 16
	}
	if s.limit <= 0 {
		s.limit = rate.Inf
	}
	if s.burst <= 0 {
		s.burst = 1
	}
	return s
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Info("narsese server listening", zap.String("addr", ln.Addr().String()))
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then closes the
// listener and every open connection and waits for their handlers.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ln = netutil.LimitListener(ln, s.maxConns)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		ln.Close()
		s.closeConns()
		return nil
	})
	g.Go(func() error {
		defer cancel()
		for {
			conn, err := ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}
			s.track(conn)
			if gctx.Err() != nil {
				// Accepted after closeConns ran.
				conn.Close()
			}
			g.Go(func() error {
				defer s.untrack(conn)
				s.handle(gctx, conn)
				return nil
			})
		}
	})
	return g.Wait()
}

func (s *Server) track(c net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = struct{}{}
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
	c.Close()
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Close()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	logger := s.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	logger.Debug("connection opened")
	defer logger.Debug("connection closed")

	limiter := rate.NewLimiter(s.limit, s.burst)
	scanner := bufio.NewScanner(conn)
	w := bufio.NewWriter(conn)

	for scanner.Scan() {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		for _, reply := range s.Respond(ctx, line) {
			w.WriteString(reply)
			w.WriteByte('\n')
		}
		if err := w.Flush(); err != nil {
			logger.Debug("write failed", zap.Error(err))
			return
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		logger.Debug("read failed", zap.Error(err))
	}
}

// Respond executes one request line and returns the reply lines.
func (s *Server) Respond(ctx context.Context, line string) []string {
	switch {
	case strings.HasPrefix(line, "!think"):
		return s.think(ctx, strings.TrimSpace(strings.TrimPrefix(line, "!think")))
	case strings.HasPrefix(line, "!explain"):
		return s.explain(strings.TrimSpace(strings.TrimPrefix(line, "!explain")))
	}

	sentence, err := s.reasoner.Input(ctx, line)
	if err != nil {
		return []string{errLine(err)}
	}

	q, ok := sentence.(nal.Question)
	if !ok {
		return []string{"OK " + sentence.String()}
	}
	b, found, err := s.reasoner.Answer(ctx, q)
	if err != nil {
		return []string{errLine(err)}
	}
	if !found {
		return []string{"NONE"}
	}
	answer := nal.Judgement{Statement: nal.NewTerm(b.Term), Truth: b.TV, When: q.When}
	return []string{"ANSWER " + answer.String()}
}

func (s *Server) think(ctx context.Context, arg string) []string {
	steps := s.maxSteps
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return []string{fmt.Sprintf("ERR invalid step count %q", arg)}
		}
		steps = n
	}

	derived, err := s.reasoner.Think(ctx, steps)
	if err != nil {
		return []string{errLine(err)}
	}

	out := make([]string, 0, len(derived)+1)
	for _, d := range derived {
		j := nal.Judgement{Statement: d.Conclusion, Truth: *d.Conclusion.TV}
		out = append(out, "DERIVED "+j.String())
	}
	return append(out, fmt.Sprintf("OK %d derived", len(derived)))
}

func (s *Server) explain(arg string) []string {
	subject, predicate, err := nal.SplitInheritance(arg)
	if err != nil {
		return []string{errLine(err)}
	}
	engine := s.reasoner.Engine()
	if engine == nil {
		return []string{"ERR no inference engine configured"}
	}
	text := engine.Explain(subject, predicate)

	var out []string
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		out = append(out, "EXPLAIN "+strings.TrimSpace(l))
	}
	return append(out, "OK")
}

func errLine(err error) string {
	return "ERR " + strings.ReplaceAll(err.Error(), "\n", " ")
}
