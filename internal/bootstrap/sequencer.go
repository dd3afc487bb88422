package bootstrap

//go:generate mockgen -source=sequencer.go -destination=mocks/mocks.go -package=mocks Exchange,CredentialStore

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rickgao/emoji-trader/internal/credentials"
	"github.com/rickgao/emoji-trader/internal/failure"
	"github.com/rickgao/emoji-trader/internal/metrics"
	"github.com/rickgao/emoji-trader/internal/model"
)

const tracerName = "github.com/rickgao/emoji-trader/internal/bootstrap"

// ErrConnectivity is returned when the exchange health check fails.
var ErrConnectivity = failure.New(failure.CodeConnectivityFailed, "exchange is not reachable")

// Exchange is the exchange client used during bootstrap.
type Exchange interface {
	TestConnection(ctx context.Context) bool
	Register(ctx context.Context, teamID string) (*model.RegistrationResponse, error)
	SetAuthHeaders(teamID, apiKey string) error
}

// CredentialStore persists the team's credentials between runs.
type CredentialStore interface {
	Load(ctx context.Context) (*model.Credentials, bool)
	Save(ctx context.Context, creds *model.Credentials) error
}

// Result describes a completed bootstrap.
type Result struct {
	Credentials *model.Credentials
	// Registered is true when this run registered the team rather than reusing
	// stored credentials.
	Registered bool
}

// Sequencer runs the bootstrap sequence once.
type Sequencer struct {
	teamID   string
	exchange Exchange
	store    CredentialStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer

	state        atomic.Int32
	resolvedTeam atomic.Pointer[string]
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithMetrics records state and step timings.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) {
		s.metrics = m
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Sequencer) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New creates a sequencer that registers teamID when no credentials are stored.
// teamID must already satisfy model.ValidateTeamID.
func New(teamID string, exchange Exchange, store CredentialStore, opts ...Option) *Sequencer {
	s := &Sequencer{
		teamID:   teamID,
		exchange: exchange,
		store:    store,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setState(StateInit)
	return s
}

// State returns the current state. It is safe to call from other goroutines.
func (s *Sequencer) State() State {
	return State(s.state.Load())
}

// TeamID returns the team the client authenticates as: the configured team
// until credentials are resolved, then the team on the resolved record. It is
// safe to call from other goroutines.
func (s *Sequencer) TeamID() string {
	if id := s.resolvedTeam.Load(); id != nil {
		return *id
	}
	return s.teamID
}

func (s *Sequencer) setState(state State) {
	s.state.Store(int32(state))
	s.metrics.SetState(int(state))
	s.logger.Debug("bootstrap state changed", "state", state.String())
}

// Run executes the sequence. On success the exchange client carries the team's
// authentication headers and the state is StateReady. Every error leaves the
// state at StateAborted; use failure.KindOf to tell cancellation from failure.
func (s *Sequencer) Run(ctx context.Context) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "bootstrap.run", trace.WithAttributes(
		attribute.String("team.id", s.teamID),
	))
	defer span.End()

	res, err := s.run(ctx)
	if err != nil {
		s.setState(StateAborted)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if failure.IsCancelled(err) {
			s.logger.Info("bootstrap cancelled", "error", err)
		} else {
			s.logger.Error("bootstrap aborted", "error", err, "kind", failure.KindOf(err).String())
		}
		return nil, err
	}

	span.SetAttributes(attribute.Bool("team.registered", res.Registered))
	return res, nil
}

func (s *Sequencer) run(ctx context.Context) (*Result, error) {
	if err := s.checkConnectivity(ctx); err != nil {
		return nil, err
	}
	s.setState(StateConnectivityChecked)

	creds, registered, err := s.resolveCredentials(ctx)
	if err != nil {
		return nil, err
	}
	resolved := creds.TeamID
	s.resolvedTeam.Store(&resolved)
	s.setState(StateCredentialsResolved)

	if err := s.exchange.SetAuthHeaders(creds.TeamID, creds.APIKey); err != nil {
		return nil, err
	}
	s.setState(StateAuthConfigured)

	s.logger.Info("bot initialized successfully",
		"team_id", creds.TeamID,
		"initial_cash", creds.InitialCash.String(),
		"registered", registered,
	)
	s.setState(StateReady)
	s.logger.Info("bot is ready for trading operations")

	return &Result{Credentials: creds, Registered: registered}, nil
}

func (s *Sequencer) checkConnectivity(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "bootstrap.test_connection")
	defer span.End()
	start := time.Now()

	ok := s.exchange.TestConnection(ctx)
	s.metrics.ObserveStep("test_connection", start)
	s.metrics.ObserveConnectivity(ok)
	if ok {
		return nil
	}

	// A cancelled check reads as unhealthy; report it as the interruption it is.
	if errors.Is(ctx.Err(), context.Canceled) {
		return failure.Cancelled(ctx.Err(), "test connection")
	}
	s.logger.Error("failed to connect to api, aborting")
	span.SetStatus(codes.Error, "exchange unreachable")
	return ErrConnectivity
}

func (s *Sequencer) resolveCredentials(ctx context.Context) (*model.Credentials, bool, error) {
	start := time.Now()
	loadCtx, span := s.tracer.Start(ctx, "bootstrap.load_credentials")
	creds, ok := s.store.Load(loadCtx)
	span.SetAttributes(attribute.Bool("credentials.found", ok))
	span.End()
	s.metrics.ObserveStep("load_credentials", start)
	s.metrics.ObserveCredentialsLoad(ok)

	if ok {
		s.logger.Info("loaded existing credentials", "team_id", creds.TeamID)
		return creds, false, nil
	}

	s.logger.Info("no existing credentials found, registering team", "team_id", s.teamID)
	creds, err := s.register(ctx)
	if err != nil {
		return nil, false, err
	}
	s.logger.Info("team registration completed successfully", "team_id", creds.TeamID)
	return creds, true, nil
}

// register obtains and persists new credentials. The record is only returned
// once it is saved, so a run never proceeds registered-but-unpersisted.
func (s *Sequencer) register(ctx context.Context) (*model.Credentials, error) {
	ctx, span := s.tracer.Start(ctx, "bootstrap.register")
	defer span.End()
	start := time.Now()

	resp, err := s.exchange.Register(ctx, s.teamID)
	s.metrics.ObserveStep("register", start)
	if err != nil {
		s.metrics.IncrementRegistration(outcome(err))
		span.RecordError(err)
		return nil, err
	}

	creds, err := credentials.FromRegistration(resp)
	if err != nil {
		s.metrics.IncrementRegistration(outcome(err))
		return nil, err
	}

	saveStart := time.Now()
	err = s.store.Save(ctx, creds)
	s.metrics.ObserveStep("save_credentials", saveStart)
	if err != nil {
		s.metrics.IncrementRegistration(outcome(err))
		span.RecordError(err)
		return nil, err
	}

	s.metrics.IncrementRegistration("success")
	return creds, nil
}

func outcome(err error) string {
	if code := failure.CodeOf(err); code != "" {
		return string(code)
	}
	return "error"
}
