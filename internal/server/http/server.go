package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nestjam/yap-sequencer/internal/api"
	"github.com/nestjam/yap-sequencer/internal/auth"
	customctx "github.com/nestjam/yap-sequencer/internal/context"
	"github.com/nestjam/yap-sequencer/internal/domain"
	"github.com/nestjam/yap-sequencer/internal/domain/service"
	"github.com/nestjam/yap-sequencer/internal/middleware"
	"github.com/nestjam/yap-sequencer/internal/numeral"
	"github.com/nestjam/yap-sequencer/internal/sequence"
)

const (
	contentTypeHeader              = "Content-Type"
	contentLengthHeader            = "Content-Length"
	applicationJSON                = "application/json"
	failedToParseRequestMessage    = "failed to parse request"
	failedToPrepareResponseMessage = "failed to prepare response"
	internalErrorMessage           = "internal error"
	unauthorizedMessage            = "unauthorized"
	positionRequiredMessage        = "either count or text is required"
	nameParam                      = "name"
	takeCountParam                 = "n"
)

// Server предоставляет HTTP API для управления последовательностями и выдачи идентификаторов.
type Server struct {
	service        *service.SequenceService
	router         chi.Router
	logger         *zap.Logger
	trustedSubnet  string
	secretKey      string
	remover        *service.SequenceRemover
	serviceOptions []service.Option
}

// Option определяет опцию настройки сервера.
type Option func(*Server)

// New создает сервер. Конструктор принимает на вход хранилище последовательностей и набор опций.
func New(store domain.SequenceStore, options ...Option) *Server {
	r := chi.NewRouter()
	s := &Server{
		router:    r,
		logger:    zap.NewNop(),
		secretKey: auth.DefaultSecretKey,
	}

	for _, opt := range options {
		opt(s)
	}

	s.service = service.New(store, s.serviceOptions...)
	if s.remover != nil {
		s.service.SetSequenceRemover(s.remover)
	}

	authorizer := auth.New(s.secretKey, auth.TokenExp)

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.ResponseLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/ping", s.ping)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType(applicationJSON))
			r.Use(middleware.RequestDecoder, middleware.ResponseEncoder)
			r.Use(middleware.Auth(authorizer))

			r.Post("/sequences", s.createSequence)
			r.Get("/sequences", s.listSequences)
			r.Delete("/sequences", s.deleteSequences)

			r.Route("/sequences/{name}", func(r chi.Router) {
				r.Get("/", s.getSequence)
				r.Patch("/", s.reconfigureSequence)
				r.Delete("/", s.deleteSequence)
				r.Post("/take", s.take)
				r.Post("/advance", s.advance)
				r.Post("/retreat", s.retreat)
				r.Put("/position", s.setPosition)
			})

			r.Post("/convert", s.convert)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.TrustedSubnet(s.trustedSubnet))

			r.Get("/internal/stats", s.getStats)
		})
	})

	return s
}

// ServeHTTP обрабатывает запрос.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	status := http.StatusInternalServerError
	ctx := r.Context()
	if s.service.IsAvailable(ctx) {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func (s *Server) createSequence(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSequenceRequest
	if !decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	seq, err := s.service.Create(ctx, service.CreateRequest{
		Name:      req.Name,
		Alphabet:  req.Alphabet,
		MinLength: req.MinLength,
		Count:     req.Count,
		Text:      req.Text,
	}, customctx.UserID(ctx))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toSequence(seq))
}

func (s *Server) listSequences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if user, _ := customctx.GetUser(ctx); user.IsNew {
		http.Error(w, unauthorizedMessage, http.StatusUnauthorized)
		return
	}

	sequences, err := s.service.List(ctx, customctx.UserID(ctx))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if len(sequences) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]api.Sequence, len(sequences))
	for i := 0; i < len(sequences); i++ {
		resp[i] = toSequence(sequences[i])
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteSequences(w http.ResponseWriter, r *http.Request) {
	var names []string
	if !decode(w, r, &names) {
		return
	}

	s.delete(w, r, names)
}

func (s *Server) deleteSequence(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, []string{chi.URLParam(r, nameParam)})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request, names []string) {
	ctx := r.Context()

	if err := s.service.Delete(ctx, names, customctx.UserID(ctx)); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) getSequence(w http.ResponseWriter, r *http.Request) {
	seq, err := s.service.Get(r.Context(), chi.URLParam(r, nameParam))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSequence(seq))
}

func (s *Server) reconfigureSequence(w http.ResponseWriter, r *http.Request) {
	var req api.ReconfigureRequest
	if !decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	seq, err := s.service.Reconfigure(ctx, chi.URLParam(r, nameParam), service.ReconfigureRequest{
		Alphabet:  req.Alphabet,
		MinLength: req.MinLength,
	}, customctx.UserID(ctx))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSequence(seq))
}

func (s *Server) take(w http.ResponseWriter, r *http.Request) {
	n := 1
	if value := r.URL.Query().Get(takeCountParam); value != "" {
		var err error
		if n, err = strconv.Atoi(value); err != nil {
			badRequest(w, failedToParseRequestMessage)
			return
		}
	}

	ctx := r.Context()
	ids, err := s.service.Take(ctx, chi.URLParam(r, nameParam), n, customctx.UserID(ctx))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.TakeResponse{IDs: ids})
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, s.service.Advance)
}

func (s *Server) retreat(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, s.service.Retreat)
}

type moveFunc func(ctx context.Context, name string, by uint64, user domain.UserID) (service.Sequence, error)

func (s *Server) move(w http.ResponseWriter, r *http.Request, fn moveFunc) {
	var req api.MoveRequest
	if !decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	seq, err := fn(ctx, chi.URLParam(r, nameParam), req.By, customctx.UserID(ctx))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSequence(seq))
}

func (s *Server) setPosition(w http.ResponseWriter, r *http.Request) {
	var req api.PositionRequest
	if !decode(w, r, &req) {
		return
	}

	if (req.Count == nil) == (req.Text == nil) {
		badRequest(w, positionRequiredMessage)
		return
	}

	ctx := r.Context()
	name := chi.URLParam(r, nameParam)

	var (
		seq service.Sequence
		err error
	)
	if req.Count != nil {
		count, parseErr := sequence.ParseCount(*req.Count)
		if parseErr != nil {
			s.writeError(w, parseErr)
			return
		}
		seq, err = s.service.JumpTo(ctx, name, count, customctx.UserID(ctx))
	} else {
		seq, err = s.service.JumpToText(ctx, name, *req.Text, customctx.UserID(ctx))
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSequence(seq))
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	var req api.ConvertRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := s.service.Convert(service.ConvertRequest{
		Source:          req.Source,
		Target:          req.Target,
		SourceMinLength: req.SourceMinLength,
		TargetMinLength: req.TargetMinLength,
		Text:            req.Text,
		Reverse:         req.Reverse,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.ConvertResponse{Result: result})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	var (
		stats api.Stats
		err   error
	)
	stats.Sequences, stats.Users, err = s.service.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func toSequence(seq service.Sequence) api.Sequence {
	return api.Sequence{
		Name:      seq.Name,
		Current:   seq.Current,
		Count:     seq.Count.String(),
		Alphabet:  seq.Alphabet,
		MinLength: seq.MinLength,
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		badRequest(w, failedToParseRequestMessage)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	content, err := json.Marshal(v)
	if err != nil {
		s.logger.Error(failedToPrepareResponseMessage, zap.Error(err))
		internalError(w, failedToPrepareResponseMessage)
		return
	}

	w.Header().Set(contentTypeHeader, applicationJSON)
	w.Header().Set(contentLengthHeader, strconv.Itoa(len(content)))
	w.WriteHeader(status)
	_, _ = w.Write(content)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSequenceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrSequenceExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case isInvalidInput(err):
		badRequest(w, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		internalError(w, internalErrorMessage)
	}
}

func isInvalidInput(err error) bool {
	for _, target := range []error{
		numeral.ErrInvalidSymbol,
		numeral.ErrDegenerateAlphabet,
		numeral.ErrDuplicateSymbol,
		sequence.ErrInvalidCount,
		service.ErrInvalidName,
		service.ErrInvalidMinLength,
		service.ErrInvalidTakeCount,
		service.ErrConflictingPosition,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func badRequest(w http.ResponseWriter, err string) {
	http.Error(w, err, http.StatusBadRequest)
}

func internalError(w http.ResponseWriter, err string) {
	http.Error(w, err, http.StatusInternalServerError)
}

// WithLogger задает логер для сервера.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTakeMaxCount определяет максимальное количество идентификаторов в одном запросе.
func WithTakeMaxCount(count int) Option {
	return func(s *Server) {
		s.serviceOptions = append(s.serviceOptions, service.WithTakeLimit(count))
	}
}

// WithDefaultAlphabet задает алфавит новых последовательностей по умолчанию.
func WithDefaultAlphabet(a numeral.Alphabet) Option {
	return func(s *Server) {
		s.serviceOptions = append(s.serviceOptions, service.WithDefaultAlphabet(a))
	}
}

// WithSequenceRemover задает компонент, который выполняет удаление последовательностей.
func WithSequenceRemover(remover *service.SequenceRemover) Option {
	return func(s *Server) {
		s.remover = remover
	}
}

// WithTrustedSubnet задает доверенную подсеть.
func WithTrustedSubnet(subnet string) Option {
	return func(s *Server) {
		s.trustedSubnet = subnet
	}
}

// WithSecretKey задает ключ подписи токенов пользователей.
func WithSecretKey(key string) Option {
	return func(s *Server) {
		s.secretKey = key
	}
}
