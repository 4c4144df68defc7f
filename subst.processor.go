package subst

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/itsatony/go-subst/internal"
	"go.uber.org/zap"
)

// Processor is the main entry point of the substitution engine. It holds
// an ordered list of resolver registries, default options, and optional
// named templates.
//
// A Processor is immutable during processing: every Process call is a pure
// function of the template, context data, and effective options, so a
// single configured instance can be shared across goroutines without
// external locking. The only mutable state is the named template table,
// which is guarded by its own lock and never touched by Process itself.
type Processor struct {
	config    *processorConfig
	templates map[string]string
	tmplMu    sync.RWMutex
	logger    *zap.Logger
}

// New creates a new Processor with the given options.
// Configuration is validated eagerly; malformed delimiter or escape
// settings fail here rather than surfacing mid-substitution.
func New(opts ...Option) (*Processor, error) {
	config := defaultProcessorConfig()
	for _, opt := range opts {
		opt(config)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgProcessorCreated,
		zap.Int(LogFieldRegistries, len(config.registries)),
	)

	return &Processor{
		config:    config,
		templates: make(map[string]string),
		logger:    logger,
	}, nil
}

// MustNew creates a new Processor and panics if there's an error.
func MustNew(opts ...Option) *Processor {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Process substitutes all tokens in template using the processor's
// configured options and the given context data.
//
// Resolver faults do not abort the pass: the remaining tokens are still
// resolved and the faults are returned joined, alongside the rendered
// output with the faulted tokens substituted as empty. Configuration
// faults (such as a sequence produced as a terminal value) abort
// immediately.
func (p *Processor) Process(template string, data map[string]any) (string, error) {
	return p.render(template, data, p.config)
}

// ProcessWithOptions substitutes tokens with per-call option overrides.
// The overrides apply to a copy of the processor's configuration; shared
// state is never mutated.
func (p *Processor) ProcessWithOptions(template string, data map[string]any, opts ...Option) (string, error) {
	config := p.config.clone()
	for _, opt := range opts {
		opt(config)
	}
	if err := config.validate(); err != nil {
		return "", err
	}
	return p.render(template, data, config)
}

// ProcessWithDelimiters substitutes tokens using a per-call delimiter
// pair, leaving all other options at the processor's defaults.
func (p *Processor) ProcessWithDelimiters(template, startDelim, endDelim string, data map[string]any) (string, error) {
	return p.ProcessWithOptions(template, data, WithDelimiters(startDelim, endDelim))
}

// render runs the scan/parse/resolve pipeline under one effective
// configuration.
func (p *Processor) render(template string, data map[string]any, config *processorConfig) (string, error) {
	p.logger.Debug(LogMsgProcessStart, zap.Int(LogFieldTemplate, len(template)))

	var out strings.Builder
	out.Grow(len(template))
	var faults []error

	scanner := internal.NewScanner(template, config.startDelim, config.endDelim, p.logger)
	for {
		span, ok := scanner.Next()
		if !ok {
			break
		}
		out.WriteString(span.Literal)

		value, err := p.resolveSpan(span, data, config)
		if err != nil {
			if !IsResolverFault(err) {
				return "", err
			}
			// Resolver fault: record it, keep resolving later tokens.
			faults = append(faults, err)
			continue
		}
		out.WriteString(value)
	}
	out.WriteString(scanner.Trailing())

	p.logger.Debug(LogMsgProcessComplete, zap.Int(LogFieldTemplate, out.Len()))
	return out.String(), errors.Join(faults...)
}

// resolveSpan applies the resolution order for one token span:
// resolver -> context value -> default clause -> missing-token policy.
func (p *Processor) resolveSpan(span internal.Span, data map[string]any, config *processorConfig) (string, error) {
	parsed := internal.ParseInner(span.Inner, config.enableDefaultValue, config.defaultDelimiter, config.escapeChar)
	name := parsed.Name

	// 1. Registry resolver, first registry containing the name wins.
	for _, registry := range config.registries {
		fn, ok := registry.Lookup(name, config.ignoreCase)
		if !ok {
			continue
		}
		args := internal.BindArgs(data, name, config.ignoreCase)
		value, err := callResolver(fn, args)
		if err != nil {
			p.logger.Debug(LogMsgResolverFault, zap.String(LogFieldTokenName, name), zap.Error(err))
			return "", NewResolverFaultError(name, span.Start, err)
		}
		if value != nil {
			return p.stringify(name, span.Start, value, ResolutionSourceResolver)
		}
		// Resolver signalled "no value": fall through to the context.
		break
	}

	// 2. Direct context value.
	if value, ok := internal.LookupValue(data, name, config.ignoreCase); ok {
		return p.stringify(name, span.Start, value, ResolutionSourceContext)
	}

	// 3. Default clause.
	if parsed.HasDefault {
		p.logger.Debug(LogMsgTokenResolved,
			zap.String(LogFieldTokenName, name),
			zap.String(LogFieldSource, ResolutionSourceDefault),
		)
		return parsed.Default, nil
	}

	// 4. Missing-token policy.
	if config.ignoreMissing {
		p.logger.Debug(LogMsgTokenUnresolved,
			zap.String(LogFieldTokenName, name),
			zap.String(LogFieldSource, ResolutionSourceLiteral),
		)
		return span.Raw, nil
	}
	p.logger.Debug(LogMsgTokenUnresolved,
		zap.String(LogFieldTokenName, name),
		zap.String(LogFieldSource, ResolutionSourceEmpty),
	)
	return "", nil
}

// stringify renders a resolved value, rejecting sequences and other
// non-scalar terminal values as configuration faults.
func (p *Processor) stringify(name string, offset int, value any, source string) (string, error) {
	s, ok := internal.Stringify(value)
	if !ok {
		if _, isSeq := internal.AsSequence(value); isSeq {
			return "", NewSequenceValueError(name, offset)
		}
		return "", NewUnstringifiableValueError(name, value)
	}
	p.logger.Debug(LogMsgTokenResolved,
		zap.String(LogFieldTokenName, name),
		zap.String(LogFieldSource, source),
	)
	return s, nil
}

// callResolver invokes a resolver, converting a panic into a fault error
// so a misbehaving resolver cannot take down the whole call or corrupt
// shared processor state.
func callResolver(fn ResolverFunc, args []any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("%s: %v", ErrMsgResolverPanic, r)
		}
	}()
	return fn(args)
}

// RegisterTemplate registers a named template source for later processing
// via ProcessTemplate. Returns an error if a template with the same name
// already exists.
func (p *Processor) RegisterTemplate(name, source string) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}

	p.tmplMu.Lock()
	defer p.tmplMu.Unlock()

	if _, exists := p.templates[name]; exists {
		return NewTemplateExistsError(name)
	}
	p.templates[name] = source
	p.logger.Debug(LogMsgTemplateRegistered, zap.String(LogFieldName, name))
	return nil
}

// MustRegisterTemplate registers a template and panics on error.
func (p *Processor) MustRegisterTemplate(name, source string) {
	if err := p.RegisterTemplate(name, source); err != nil {
		panic(err)
	}
}

// UnregisterTemplate removes a registered template by name.
// Returns true if the template existed and was removed.
func (p *Processor) UnregisterTemplate(name string) bool {
	p.tmplMu.Lock()
	defer p.tmplMu.Unlock()

	if _, exists := p.templates[name]; exists {
		delete(p.templates, name)
		return true
	}
	return false
}

// GetTemplate retrieves a registered template source by name.
func (p *Processor) GetTemplate(name string) (string, bool) {
	p.tmplMu.RLock()
	defer p.tmplMu.RUnlock()

	source, ok := p.templates[name]
	return source, ok
}

// HasTemplate checks if a template is registered with the given name.
func (p *Processor) HasTemplate(name string) bool {
	_, ok := p.GetTemplate(name)
	return ok
}

// ListTemplates returns all registered template names in sorted order.
func (p *Processor) ListTemplates() []string {
	p.tmplMu.RLock()
	defer p.tmplMu.RUnlock()

	names := make([]string, 0, len(p.templates))
	for name := range p.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateCount returns the number of registered templates.
func (p *Processor) TemplateCount() int {
	p.tmplMu.RLock()
	defer p.tmplMu.RUnlock()

	return len(p.templates)
}

// ProcessTemplate processes a registered template by name.
func (p *Processor) ProcessTemplate(name string, data map[string]any) (string, error) {
	source, ok := p.GetTemplate(name)
	if !ok {
		return "", NewTemplateNotFoundError(name)
	}
	return p.Process(source, data)
}

// ProcessStored fetches a template from a TemplateStore and processes it.
// The context applies to the store fetch only; substitution itself is
// synchronous CPU-bound work with no cancellation points.
func (p *Processor) ProcessStored(ctx context.Context, store TemplateStore, name string, data map[string]any) (string, error) {
	stored, err := store.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return p.Process(stored.Source, data)
}
