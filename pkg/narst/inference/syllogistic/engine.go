package syllogistic

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ntoxeg/narst/pkg/narst/inference"
	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/narsese"
	"github.com/ntoxeg/narst/pkg/narst/rules"
)

// Engine is a forward-chaining engine over NAL-1 inheritance beliefs.
// Rule applications within a step run concurrently; the belief table is
// only written between steps.
type Engine struct {
	mu      sync.RWMutex
	beliefs map[string]nal.Term // canonical "<s --> p>" → belief
	order   []string
	origin  map[string]inference.Derivation

	rules       []rules.Rule
	concurrency int
	logger      *zap.Logger
	entropy     *ulid.MonotonicEntropy
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency bounds the number of premise pairs evaluated in parallel.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRules restricts the engine to the given rules.
func WithRules(rs []rules.Rule) Option {
	return func(e *Engine) {
		e.rules = rs
	}
}

// New creates a new syllogistic engine using every NAL-1 rule
func New(opts ...Option) *Engine {
	e := &Engine{
		beliefs:     make(map[string]nal.Term),
		origin:      make(map[string]inference.Derivation),
		rules:       rules.Rules,
		concurrency: 4,
		logger:      zap.NewNop(),
		entropy:     ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ inference.Engine = (*Engine)(nil)

// LoadNarsese loads judgements from Narsese text
// Format:
//
//	<bird --> animal>. {0.9 0.9}
//	<robin --> bird>.
//	// comments
//
// Questions, goals and non-inheritance judgements are skipped.
func (e *Engine) LoadNarsese(text string) error {
	sentences, err := narsese.ParseAll(strings.NewReader(text))
	if err != nil {
		return err
	}

	for _, s := range sentences {
		j, ok := s.(nal.Judgement)
		if !ok {
			e.logger.Debug("skipping non-judgement", zap.String("sentence", s.String()))
			continue
		}
		if err := e.AddBelief(j.Belief()); err != nil {
			if errors.Is(err, internalerr.ErrNotInheritance) {
				e.logger.Debug("skipping non-inheritance judgement", zap.String("sentence", s.String()))
				continue
			}
			return err
		}
	}
	return nil
}

// AddBelief adds an input belief, replacing any previous belief about the
// same statement
func (e *Engine) AddBelief(t nal.Term) error {
	if t.TV == nil {
		return fmt.Errorf("%w: %q", internalerr.ErrMissingTruth, t.Expr)
	}
	key, err := canonical(t.Expr)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	t.Expr = key
	e.put(key, t)
	delete(e.origin, key)
	return nil
}

func (e *Engine) put(key string, t nal.Term) {
	if _, exists := e.beliefs[key]; !exists {
		e.order = append(e.order, key)
	}
	e.beliefs[key] = t
}

// Beliefs returns the belief table in insertion order
func (e *Engine) Beliefs() []nal.Term {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot()
}

func (e *Engine) snapshot() []nal.Term {
	out := make([]nal.Term, len(e.order))
	for i, key := range e.order {
		out[i] = e.beliefs[key]
	}
	return out
}

// Query returns the belief about <subject --> predicate>
func (e *Engine) Query(subject, predicate string) (nal.Term, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.beliefs[nal.Inheritance(subject, predicate)]
	return t, ok
}

type candidate struct {
	rule       string
	premises   [2]string
	conclusion nal.Term
}

// Derive performs one forward-chaining step
func (e *Engine) Derive(ctx context.Context) ([]inference.Derivation, error) {
	return e.derive(ctx, 1)
}

func (e *Engine) derive(ctx context.Context, step int) ([]inference.Derivation, error) {
	e.mu.RLock()
	beliefs := e.snapshot()
	e.mu.RUnlock()

	n := len(beliefs)
	results := make([][]candidate, n*n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			pair := i*n + j
			first, second := beliefs[i], beliefs[j]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				found, err := e.applyRules(first, second)
				if err != nil {
					return err
				}
				results[pair] = found
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var derived []inference.Derivation
	for _, found := range results {
		for _, c := range found {
			if d, ok := e.merge(c, step); ok {
				derived = append(derived, d)
			}
		}
	}

	e.logger.Debug("derivation step",
		zap.Int("step", step),
		zap.Int("beliefs", len(e.order)),
		zap.Int("derived", len(derived)),
	)
	return derived, nil
}

func (e *Engine) applyRules(first, second nal.Term) ([]candidate, error) {
	var found []candidate
	for _, r := range e.rules {
		conclusion, _, err := r.Apply(first, second)
		if errors.Is(err, internalerr.ErrNonMatchingMiddleTerm) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s(%s, %s): %w", r.Name, first.Expr, second.Expr, err)
		}
		found = append(found, candidate{
			rule:       r.Name,
			premises:   [2]string{first.Expr, second.Expr},
			conclusion: conclusion,
		})
	}
	return found, nil
}

// merge keeps a conclusion if it is new or more confident than the
// current belief. Reflexive statements carry no information and are
// dropped. Must be called with e.mu held.
func (e *Engine) merge(c candidate, step int) (inference.Derivation, bool) {
	subject, predicate, err := nal.SplitInheritance(c.conclusion.Expr)
	if err != nil || subject == predicate {
		return inference.Derivation{}, false
	}

	key := c.conclusion.Expr
	if existing, ok := e.beliefs[key]; ok && existing.TV.Confidence() >= c.conclusion.TV.Confidence() {
		return inference.Derivation{}, false
	}

	d := inference.Derivation{
		ID:         ulid.MustNew(ulid.Now(), e.entropy).String(),
		Rule:       c.rule,
		Premises:   c.premises,
		Conclusion: c.conclusion,
		Step:       step,
	}
	e.put(key, c.conclusion)
	e.origin[key] = d
	return d, true
}

// DefaultMaxSteps bounds DeriveAll when no limit is given.
const DefaultMaxSteps = 32

// DeriveAll runs derivation steps until a fixpoint or maxSteps
func (e *Engine) DeriveAll(ctx context.Context, maxSteps int) ([]inference.Derivation, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	var all []inference.Derivation
	for step := 1; step <= maxSteps; step++ {
		derived, err := e.derive(ctx, step)
		if err != nil {
			return all, err
		}
		if len(derived) == 0 {
			break
		}
		all = append(all, derived...)
	}
	return all, nil
}

// FindPath returns the derivation chain for <subject --> predicate>,
// premises before conclusions
func (e *Engine) FindPath(subject, predicate string) []inference.Step {
	e.mu.RLock()
	defer e.mu.RUnlock()

	key := nal.Inheritance(subject, predicate)
	if _, ok := e.beliefs[key]; !ok {
		return nil
	}

	var path []inference.Step
	e.collectPath(key, &path, make(map[string]bool))
	for i := range path {
		path[i].Depth = i
	}
	return path
}

func (e *Engine) collectPath(key string, path *[]inference.Step, visited map[string]bool) {
	if visited[key] {
		return
	}
	visited[key] = true

	belief := e.beliefs[key]
	d, derived := e.origin[key]
	if !derived {
		*path = append(*path, inference.Step{
			Rule:       inference.InputRule,
			Conclusion: key,
			TV:         *belief.TV,
		})
		return
	}

	for _, p := range d.Premises {
		e.collectPath(p, path, visited)
	}
	*path = append(*path, inference.Step{
		Rule:       d.Rule,
		Premises:   []string{d.Premises[0], d.Premises[1]},
		Conclusion: key,
		TV:         *belief.TV,
	})
}

// Explain generates a human-readable explanation
func (e *Engine) Explain(subject, predicate string) string {
	key := nal.Inheritance(subject, predicate)
	path := e.FindPath(subject, predicate)
	if len(path) == 0 {
		return fmt.Sprintf("Cannot derive %s", key)
	}
	if len(path) == 1 && path[0].Rule == inference.InputRule {
		return fmt.Sprintf("%s %s is directly known", key, path[0].TV)
	}

	var explanation strings.Builder
	explanation.WriteString(fmt.Sprintf("Derivation chain for %s:\n", key))
	for i, step := range path {
		if step.Rule == inference.InputRule {
			explanation.WriteString(fmt.Sprintf("  %d. %s %s (input)\n", i+1, step.Conclusion, step.TV))
			continue
		}
		explanation.WriteString(fmt.Sprintf("  %d. %s %s by %s from %s\n",
			i+1, step.Conclusion, step.TV, step.Rule, strings.Join(step.Premises, ", ")))
	}
	return explanation.String()
}

// Derivations returns the recorded origin of every derived belief, oldest first.
func (e *Engine) Derivations() []inference.Derivation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]inference.Derivation, 0, len(e.origin))
	for _, d := range e.origin {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func canonical(expr string) (string, error) {
	s, p, err := nal.SplitInheritance(expr)
	if err != nil {
		return "", err
	}
	return nal.Inheritance(s, p), nil
}
