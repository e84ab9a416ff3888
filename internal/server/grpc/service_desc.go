package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName задает полное имя gRPC сервиса.
const ServiceName = "lightid.Sequencer"

// Имена методов сервиса.
const (
	LoginMethod   = "Login"
	PingMethod    = "Ping"
	CreateMethod  = "Create"
	CurrentMethod = "Current"
	TakeMethod    = "Take"
	ConvertMethod = "Convert"
)

// SequencerServer определяет методы gRPC сервиса последовательностей.
// Запросы и ответы передаются как structpb.Struct.
type SequencerServer interface {
	Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Current(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Take(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Convert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv SequencerServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// ServiceDesc описывает gRPC сервис последовательностей.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SequencerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: LoginMethod, Handler: handler(LoginMethod, SequencerServer.Login)},
		{MethodName: PingMethod, Handler: handler(PingMethod, SequencerServer.Ping)},
		{MethodName: CreateMethod, Handler: handler(CreateMethod, SequencerServer.Create)},
		{MethodName: CurrentMethod, Handler: handler(CurrentMethod, SequencerServer.Current)},
		{MethodName: TakeMethod, Handler: handler(TakeMethod, SequencerServer.Take)},
		{MethodName: ConvertMethod, Handler: handler(ConvertMethod, SequencerServer.Convert)},
	},
	Streams: []grpc.StreamDesc{},
}

// Register регистрирует сервис на gRPC сервере.
func Register(s grpc.ServiceRegistrar, srv SequencerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FullMethod возвращает полное имя метода сервиса.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func handler(method string, call unaryMethod) methodHandler {
	fullMethod := FullMethod(method)

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(SequencerServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		h := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SequencerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, h)
	}
}

// Client вызывает методы gRPC сервиса последовательностей.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient создает клиента поверх соединения cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call вызывает метод сервиса с запросом req.
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
