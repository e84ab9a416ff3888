package grpc

import (
	"context"
	"math"
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nestjam/yap-sequencer/internal/auth"
	"github.com/nestjam/yap-sequencer/internal/domain"
	"github.com/nestjam/yap-sequencer/internal/domain/service"
	"github.com/nestjam/yap-sequencer/internal/numeral"
	"github.com/nestjam/yap-sequencer/internal/sequence"

	customctx "github.com/nestjam/yap-sequencer/internal/context"
)

// Поля сообщений.
const (
	NameField            = "name"
	CurrentField         = "current"
	CountField           = "count"
	AlphabetField        = "alphabet"
	MinLengthField       = "min_length"
	TextField            = "text"
	NField               = "n"
	IDsField             = "ids"
	SourceField          = "source"
	TargetField          = "target"
	SourceMinLengthField = "source_min_length"
	TargetMinLengthField = "target_min_length"
	ReverseField         = "reverse"
	ResultField          = "result"
	TokenField           = "token"
)

const internalErrorMessage = "internal error"

// ErrInvalidNumber возвращается, если числовое поле сообщения не является целым числом.
var ErrInvalidNumber = errors.New("number field is not an integer")

// maxExactInteger ограничивает целые числа, которые float64 представляет без потерь.
const maxExactInteger = 1 << 53

// Server предоставляет доступ к последовательностям по gRPC.
type Server struct {
	service        *service.SequenceService
	userAuth       *auth.UserAuth
	logger         *zap.Logger
	secretKey      string
	serviceOptions []service.Option
}

// Option определяет опцию настройки сервера.
type Option func(*Server)

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

// WithSecretKey задает ключ подписи токенов пользователей.
func WithSecretKey(key string) Option {
	return func(s *Server) {
		s.secretKey = key
	}
}

// WithLogger задает логер для сервера.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New создает сервер. Конструктор принимает на вход хранилище последовательностей и набор опций.
func New(store domain.SequenceStore, options ...Option) *Server {
	s := &Server{
		logger:    zap.NewNop(),
		secretKey: auth.DefaultSecretKey,
	}

	for _, opt := range options {
		opt(s)
	}

	s.service = service.New(store, s.serviceOptions...)
	s.userAuth = auth.New(s.secretKey, auth.TokenExp)

	return s
}

// UserAuth возвращает компонент авторизации, которым сервер подписывает токены.
func (s *Server) UserAuth() *auth.UserAuth {
	return s.userAuth
}

// Login выдает токен новому пользователю.
func (s *Server) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Пользователи нигде не хранятся, поэтому каждый вход создает нового.
	userID := domain.NewUserID()

	token, err := s.userAuth.BuildJWT(userID)
	if err != nil {
		return nil, errors.Wrap(err, "login")
	}

	return newStruct(map[string]*structpb.Value{
		TokenField: structpb.NewStringValue(token),
	}), nil
}

// Ping проверяет доступность сервиса.
func (s *Server) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return newStruct(map[string]*structpb.Value{
		ResultField: structpb.NewBoolValue(s.service.IsAvailable(ctx)),
	}), nil
}

// Create создает последовательность, владельцем которой становится пользователь из контекста.
func (s *Server) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "create sequence"

	minLength, err := intField(req, MinLengthField)
	if err != nil {
		return nil, errors.Wrap(s.toStatus(err), op)
	}

	seq, err := s.service.Create(ctx, service.CreateRequest{
		Name:      stringField(req, NameField),
		Alphabet:  stringField(req, AlphabetField),
		MinLength: minLength,
		Count:     stringField(req, CountField),
		Text:      stringField(req, TextField),
	}, customctx.UserID(ctx))
	if err != nil {
		return nil, errors.Wrap(s.toStatus(err), op)
	}

	return toStruct(seq), nil
}

// Current возвращает текущее состояние последовательности.
func (s *Server) Current(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "get sequence"

	seq, err := s.service.Get(ctx, stringField(req, NameField))
	if err != nil {
		return nil, errors.Wrap(s.toStatus(err), op)
	}

	return toStruct(seq), nil
}

// Take выдает очередные идентификаторы последовательности. Если n не задано, выдается один.
func (s *Server) Take(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "take ids"

	n := 1
	if _, ok := req.GetFields()[NField]; ok {
		var err error
		if n, err = intField(req, NField); err != nil {
			return nil, errors.Wrap(s.toStatus(err), op)
		}
	}

	ids, err := s.service.Take(ctx, stringField(req, NameField), n, customctx.UserID(ctx))
	if err != nil {
		return nil, errors.Wrap(s.toStatus(err), op)
	}

	values := make([]*structpb.Value, len(ids))
	for i := 0; i < len(ids); i++ {
		values[i] = structpb.NewStringValue(ids[i])
	}

	return newStruct(map[string]*structpb.Value{
		IDsField: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}), nil
}

// Convert переводит идентификатор из одного алфавита в другой.
func (s *Server) Convert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "convert id"

	sourceMinLength, err := intField(req, SourceMinLengthField)
	if err != nil {
		return nil, errors.Wrap(s.toStatus(err), op)
	}
	targetMinLength, err := intField(req, TargetMinLengthField)
	if err != nil {
		return nil, errors.Wrap(s.toStatus(err), op)
	}

	result, err := s.service.Convert(service.ConvertRequest{
		Source:          stringField(req, SourceField),
		Target:          stringField(req, TargetField),
		SourceMinLength: sourceMinLength,
		TargetMinLength: targetMinLength,
		Text:            stringField(req, TextField),
		Reverse:         req.GetFields()[ReverseField].GetBoolValue(),
	})
	if err != nil {
		return nil, errors.Wrap(s.toStatus(err), op)
	}

	return newStruct(map[string]*structpb.Value{
		ResultField: structpb.NewStringValue(result),
	}), nil
}

func (s *Server) toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrSequenceNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrSequenceExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case isInvalidArgument(err):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		return status.Error(codes.Internal, internalErrorMessage)
	}
}

func isInvalidArgument(err error) bool {
	for _, target := range []error{
		numeral.ErrInvalidSymbol,
		numeral.ErrDegenerateAlphabet,
		numeral.ErrDuplicateSymbol,
		sequence.ErrInvalidCount,
		service.ErrInvalidName,
		service.ErrInvalidMinLength,
		service.ErrInvalidTakeCount,
		service.ErrConflictingPosition,
		ErrInvalidNumber,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toStruct(seq service.Sequence) *structpb.Struct {
	return newStruct(map[string]*structpb.Value{
		NameField:      structpb.NewStringValue(seq.Name),
		CurrentField:   structpb.NewStringValue(seq.Current),
		CountField:     structpb.NewStringValue(countString(seq.Count)),
		AlphabetField:  structpb.NewStringValue(seq.Alphabet),
		MinLengthField: structpb.NewNumberValue(float64(seq.MinLength)),
	})
}

func countString(count *big.Int) string {
	if count == nil {
		return "0"
	}
	return count.String()
}

func newStruct(fields map[string]*structpb.Value) *structpb.Struct {
	return &structpb.Struct{Fields: fields}
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// intField возвращает целое значение поля. Отсутствующее поле считается нулем.
func intField(s *structpb.Struct, key string) (int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}

	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return 0, errors.Wrapf(ErrInvalidNumber, "field %s", key)
	}

	f := v.GetNumberValue()
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f || math.Abs(f) > maxExactInteger {
		return 0, errors.Wrapf(ErrInvalidNumber, "field %s", key)
	}

	return int(f), nil
}
