// Package service owns the reading session state machine: spread selection,
// card assignment, progressive reveal, and the identity-gated interpretation.
// Every transition commits atomically through the session store; the two
// collaborator pipelines capture the session epoch when they start and their
// results are discarded if the session has been reset in the meantime.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"perspective/internal/deck"
	"perspective/internal/delivery"
	"perspective/internal/gen"
	"perspective/internal/identity"
	"perspective/internal/platform/metrics"
	"perspective/internal/reading/examples"
	"perspective/internal/reading/models"
	"perspective/internal/spread"
	dErrors "perspective/pkg/domain-errors"
	"perspective/pkg/sentinel"
)

// SessionStore persists active sessions. Update must apply its mutation
// all-or-nothing and return a post-commit snapshot.
type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*models.Session) error) (*models.Session, error)
}

// Proposer produces a spread for an inquiry. It is total: collaborator
// failures are absorbed behind it.
type Proposer interface {
	Propose(ctx context.Context, category, question string) (spread.Spread, error)
}

// Identity is the gate consulted before interpretation may proceed.
type Identity interface {
	SignIn(ctx context.Context, credential string) (*identity.Record, bool)
	SignOut(ctx context.Context) error
	Current() *identity.Record
	IsSignedIn() bool
}

// Archiver records completed readings, best-effort.
type Archiver interface {
	Archive(ctx context.Context, rec *identity.Record, s *models.Session) error
}

// defaultFloor is the minimum perceived synthesis time before a session may
// advance to the result step.
const defaultFloor = 1500 * time.Millisecond

// Service is the session state machine.
type Service struct {
	sessions SessionStore
	proposer Proposer
	gen      gen.Generator
	identity Identity
	deck     deck.Deck

	rng      deck.RNG
	floor    time.Duration
	archiver Archiver
	sender   delivery.Sender

	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithRNG(rng deck.RNG) Option {
	return func(s *Service) { s.rng = rng }
}

func WithInterpretationFloor(d time.Duration) Option {
	return func(s *Service) { s.floor = d }
}

func WithArchiver(a Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

func WithSender(sender delivery.Sender) Option {
	return func(s *Service) { s.sender = sender }
}

// New constructs the state machine over its collaborators.
func New(sessions SessionStore, proposer Proposer, g gen.Generator, ident Identity, d deck.Deck, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		proposer: proposer,
		gen:      g,
		identity: ident,
		deck:     d,
		rng:      mathRNG{},
		floor:    defaultFloor,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mathRNG delegates to the shared math/rand source, which is safe for
// concurrent use.
type mathRNG struct{}

func (mathRNG) Intn(n int) int { return rand.Intn(n) }

// CreateSession starts a fresh session at the landing step.
func (s *Service) CreateSession(ctx context.Context) (*models.Session, error) {
	sess := models.NewSession(uuid.New())
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, translate(err)
	}
	return sess.Clone(), nil
}

// Snapshot returns the current read-only view of the session.
func (s *Service) Snapshot(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	snap, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return snap, nil
}

// Begin runs the spread pipeline: LANDING → ANALYZING_SPREAD, propose,
// assign, then SELECTION. Any pipeline failure silently returns the session
// to LANDING with no partial state retained.
func (s *Service) Begin(ctx context.Context, id uuid.UUID, rawCategory, question string) (*models.Session, error) {
	cat, err := models.ParseCategory(rawCategory)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "category must be one of Love, Career, Money, General Guidance")
	}
	question = models.TruncateQuestion(question)

	var epoch uint64
	if _, err := s.sessions.Update(ctx, id, func(sess *models.Session) error {
		if sess.Step != models.StepLanding {
			return dErrors.New(dErrors.CodeInvalidState, "a reading is already in progress")
		}
		sess.Step = models.StepAnalyzingSpread
		sess.Category = cat
		sess.Question = question
		sess.UpdatedAt = time.Now().UTC()
		epoch = sess.Epoch
		return nil
	}); err != nil {
		return nil, translate(err)
	}

	sp, pulls, perr := s.buildReading(ctx, cat, question)
	if perr != nil {
		s.logger.ErrorContext(ctx, "spread pipeline failed", "category", cat, "error", perr)
		return s.commit(ctx, id, epoch, models.StepAnalyzingSpread, func(sess *models.Session) {
			sess.Step = models.StepLanding
			sess.Spread = nil
			sess.Pulls = nil
			sess.Revealed = make(map[int]bool)
		})
	}

	snap, err := s.commit(ctx, id, epoch, models.StepAnalyzingSpread, func(sess *models.Session) {
		sess.Step = models.StepSelection
		sess.Spread = &sp
		sess.Pulls = pulls
		sess.Revealed = make(map[int]bool)
		sess.AwaitingIdentity = false
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncReadingsStarted()
	return snap, nil
}

// buildReading proposes a spread and assigns one unique card per position.
func (s *Service) buildReading(ctx context.Context, cat models.Category, question string) (spread.Spread, []models.CardPull, error) {
	sp, err := s.proposer.Propose(ctx, string(cat), question)
	if err != nil {
		return spread.Spread{}, nil, err
	}
	if err := sp.Validate(); err != nil {
		return spread.Spread{}, nil, err
	}

	cards, err := deck.Draw(s.deck, len(sp.Positions), s.rng)
	if err != nil {
		return spread.Spread{}, nil, err
	}

	pulls := make([]models.CardPull, len(cards))
	for i, card := range cards {
		pulls[i] = models.CardPull{Position: sp.Positions[i], Card: card}
	}
	return sp, pulls, nil
}

// ToggleReveal flips one position's reveal state during selection.
func (s *Service) ToggleReveal(ctx context.Context, id uuid.UUID, index int) (*models.Session, error) {
	snap, err := s.sessions.Update(ctx, id, func(sess *models.Session) error {
		if sess.Step != models.StepSelection {
			return dErrors.New(dErrors.CodeInvalidState, "no cards to reveal at this step")
		}
		sess.ToggleReveal(index)
		sess.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return snap, nil
}

// RequestInterpretation advances SELECTION → LOADING_INTERPRETATION when all
// cards are revealed and an identity is held. Without an identity the session
// enters the identity-prompt sub-state instead and the step does not change.
func (s *Service) RequestInterpretation(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var (
		epoch uint64
		gated bool
	)
	snap, err := s.sessions.Update(ctx, id, func(sess *models.Session) error {
		if sess.Step != models.StepSelection {
			return dErrors.New(dErrors.CodeInvalidState, "no reading awaiting interpretation")
		}
		if !sess.AllRevealed() {
			return dErrors.New(dErrors.CodeInvalidState, "reveal all cards to proceed")
		}
		if !s.identity.IsSignedIn() {
			sess.AwaitingIdentity = true
			sess.UpdatedAt = time.Now().UTC()
			gated = true
			return nil
		}
		sess.AwaitingIdentity = false
		sess.Step = models.StepLoading
		sess.Delivery = models.DeliverySending
		sess.UpdatedAt = time.Now().UTC()
		epoch = sess.Epoch
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	if gated {
		return snap, nil
	}
	return s.runInterpretation(ctx, id, epoch, snap)
}

// runInterpretation calls the collaborator (or its fallback), enforces the
// perceived-synthesis floor, and commits the result.
func (s *Service) runInterpretation(ctx context.Context, id uuid.UUID, epoch uint64, snap *models.Session) (*models.Session, error) {
	start := time.Now()
	interp := s.interpret(ctx, snap)

	if err := s.waitFloor(ctx, time.Since(start)); err != nil {
		// Canceled mid-synthesis: back to selection with reveals intact.
		return s.commit(ctx, id, epoch, models.StepLoading, func(sess *models.Session) {
			sess.Step = models.StepSelection
			sess.Delivery = models.DeliveryIdle
		})
	}

	result, err := s.commit(ctx, id, epoch, models.StepLoading, func(sess *models.Session) {
		sess.Step = models.StepResult
		sess.Interpretation = &interp
		sess.Delivery = models.DeliverySent
	})
	if err != nil {
		return nil, err
	}
	if result.Step == models.StepResult {
		s.deliverAndArchive(ctx, result)
	}
	return result, nil
}

// interpret is total: the collaborator's draft when it conforms, the
// deterministic local fallback otherwise.
func (s *Service) interpret(ctx context.Context, snap *models.Session) models.Interpretation {
	req := gen.InterpretationRequest{
		Category:          string(snap.Category),
		Question:          snap.Question,
		SpreadName:        snap.Spread.Name,
		SpreadDescription: snap.Spread.Description,
		Pulls:             make([]gen.PullContext, len(snap.Pulls)),
	}
	for i, pull := range snap.Pulls {
		req.Pulls[i] = gen.PullContext{
			PositionTitle:       pull.Position.Title,
			PositionDescription: pull.Position.Description,
			CardName:            pull.Card.Name,
			CardKeyword:         pull.Card.Keyword,
		}
	}

	draft, err := s.gen.Interpret(ctx, req)
	if err != nil || !conforms(draft) {
		if err != nil {
			s.logger.WarnContext(ctx, "interpretation failed, using local fallback", "error", err)
		}
		s.metrics.IncInterpretationFallbacks()
		return Fallback(snap.Category, snap.Pulls)
	}

	s.metrics.IncInterpretations()
	out := models.Interpretation{
		Summary:       draft.Summary,
		Details:       make([]models.InterpretationDetail, len(draft.Details)),
		FinalGuidance: draft.FinalGuidance,
	}
	for i, d := range draft.Details {
		out.Details[i] = models.InterpretationDetail{PositionTitle: d.PositionTitle, Insight: d.Insight}
	}
	return out
}

// conforms checks the draft against the response schema's required fields.
func conforms(draft gen.InterpretationDraft) bool {
	return draft.Summary != "" && draft.FinalGuidance != "" && len(draft.Details) > 0
}

// waitFloor pads out the interpretation pipeline to the configured minimum
// duration so synthesis never appears instant.
func (s *Service) waitFloor(ctx context.Context, elapsed time.Duration) error {
	remaining := s.floor - elapsed
	if remaining <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(remaining)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// deliverAndArchive performs the post-result side effects for a signed-in
// identity. Both are best-effort.
func (s *Service) deliverAndArchive(ctx context.Context, snap *models.Session) {
	rec := s.identity.Current()
	if rec == nil {
		return
	}
	if s.sender != nil {
		if err := s.sender.Send(ctx, delivery.Compose(rec, snap)); err != nil {
			s.logger.ErrorContext(ctx, "interpretation delivery failed", "error", err)
		}
	}
	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, rec, snap); err != nil {
			s.logger.ErrorContext(ctx, "reading archive failed", "error", err)
		}
	}
}

// SignIn establishes an identity and, when the session was waiting on it with
// all cards still revealed, automatically retries the interpretation request.
func (s *Service) SignIn(ctx context.Context, id uuid.UUID, credential string) (*models.Session, bool, error) {
	_, ok := s.identity.SignIn(ctx, credential)

	snap, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, ok, translate(err)
	}
	if !ok {
		return snap, false, nil
	}

	if snap.Step == models.StepSelection && snap.AwaitingIdentity && snap.AllRevealed() {
		retried, err := s.RequestInterpretation(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "post-sign-in interpretation retry failed", "error", err)
			return snap, true, nil
		}
		return retried, true, nil
	}
	return snap, true, nil
}

// SignOut clears the identity and performs the full session reset.
func (s *Service) SignOut(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if err := s.identity.SignOut(ctx); err != nil {
		s.logger.ErrorContext(ctx, "sign-out failed to clear persisted identity", "error", err)
	}
	return s.Reset(ctx, id)
}

// ExampleQuestion picks a sample question for the category, to seed the
// landing form.
func (s *Service) ExampleQuestion(category string) string {
	return examples.Pick(models.Category(category), s.rng)
}

// Reset returns the session to the landing step from any step.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	snap, err := s.sessions.Update(ctx, id, func(sess *models.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return snap, nil
}

// commit applies a pipeline result only if the session is still in the step
// and epoch the pipeline was issued under; otherwise the late result is
// discarded and the session's current state returned untouched.
func (s *Service) commit(ctx context.Context, id uuid.UUID, epoch uint64, expect models.Step, apply func(*models.Session)) (*models.Session, error) {
	snap, err := s.sessions.Update(ctx, id, func(sess *models.Session) error {
		if sess.Epoch != epoch || sess.Step != expect {
			return sentinel.ErrStale
		}
		apply(sess)
		sess.UpdatedAt = time.Now().UTC()
		return nil
	})
	if errors.Is(err, sentinel.ErrStale) {
		s.logger.InfoContext(ctx, "discarded stale pipeline result", "session_id", id)
		return s.Snapshot(ctx, id)
	}
	if err != nil {
		return nil, translate(err)
	}
	return snap, nil
}

// translate converts store sentinels into coded domain errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	}
	if errors.Is(err, sentinel.ErrInvalidState) {
		return dErrors.New(dErrors.CodeConflict, "session already exists")
	}
	return dErrors.Wrap(dErrors.CodeInternal, "session store failure", err)
}
