package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "sheet.v1alpha1.SheetService"

// SheetServiceServer is the server API for the sheet service. Payloads are
// generic structs so the adapter stays a thin command layer over the store.
type SheetServiceServer interface {
	GetDocument(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetField(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Undo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Redo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SaveRemote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LoadRemote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRemote(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	DeleteRemote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ExportSheet(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ImportSheet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetLayout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLayout(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetImage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetImage(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterSheetServiceServer registers srv on s
func RegisterSheetServiceServer(s grpc.ServiceRegistrar, srv SheetServiceServer) {
	s.RegisterService(&sheetServiceDesc, srv)
}

func unaryHandler[Req any](
	method string,
	newReq func() Req,
	call func(SheetServiceServer, context.Context, Req) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SheetServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SheetServiceServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func newEmpty() *emptypb.Empty    { return &emptypb.Empty{} }
func newStruct() *structpb.Struct { return &structpb.Struct{} }

var sheetServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SheetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("GetDocument", newEmpty, SheetServiceServer.GetDocument),
		unaryHandler("SetField", newStruct, SheetServiceServer.SetField),
		unaryHandler("AddEntry", newStruct, SheetServiceServer.AddEntry),
		unaryHandler("RemoveEntry", newStruct, SheetServiceServer.RemoveEntry),
		unaryHandler("Undo", newEmpty, SheetServiceServer.Undo),
		unaryHandler("Redo", newEmpty, SheetServiceServer.Redo),
		unaryHandler("SaveRemote", newStruct, SheetServiceServer.SaveRemote),
		unaryHandler("LoadRemote", newStruct, SheetServiceServer.LoadRemote),
		unaryHandler("ListRemote", newEmpty, SheetServiceServer.ListRemote),
		unaryHandler("DeleteRemote", newStruct, SheetServiceServer.DeleteRemote),
		unaryHandler("GetStatus", newEmpty, SheetServiceServer.GetStatus),
		unaryHandler("ExportSheet", newEmpty, SheetServiceServer.ExportSheet),
		unaryHandler("ImportSheet", newStruct, SheetServiceServer.ImportSheet),
		unaryHandler("SetLayout", newStruct, SheetServiceServer.SetLayout),
		unaryHandler("GetLayout", newEmpty, SheetServiceServer.GetLayout),
		unaryHandler("SetImage", newStruct, SheetServiceServer.SetImage),
		unaryHandler("GetImage", newEmpty, SheetServiceServer.GetImage),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sheet/v1alpha1/sheet.proto",
}

// SheetServiceClient is the client API for the sheet service
type SheetServiceClient interface {
	GetDocument(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetField(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AddEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Undo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Redo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SaveRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	LoadRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListRemote(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	ExportSheet(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	ImportSheet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetLayout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetLayout(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetImage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetImage(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type sheetServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSheetServiceClient creates a client bound to cc
func NewSheetServiceClient(cc grpc.ClientConnInterface) SheetServiceClient {
	return &sheetServiceClient{cc: cc}
}

func (c *sheetServiceClient) invoke(ctx context.Context, method string, in any, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sheetServiceClient) GetDocument(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetDocument", in, opts)
}

func (c *sheetServiceClient) SetField(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SetField", in, opts)
}

func (c *sheetServiceClient) AddEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "AddEntry", in, opts)
}

func (c *sheetServiceClient) RemoveEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "RemoveEntry", in, opts)
}

func (c *sheetServiceClient) Undo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Undo", in, opts)
}

func (c *sheetServiceClient) Redo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Redo", in, opts)
}

func (c *sheetServiceClient) SaveRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SaveRemote", in, opts)
}

func (c *sheetServiceClient) LoadRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "LoadRemote", in, opts)
}

func (c *sheetServiceClient) ListRemote(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListRemote", in, opts)
}

func (c *sheetServiceClient) DeleteRemote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "DeleteRemote", in, opts)
}

func (c *sheetServiceClient) GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetStatus", in, opts)
}

func (c *sheetServiceClient) ExportSheet(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ExportSheet", in, opts)
}

func (c *sheetServiceClient) ImportSheet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ImportSheet", in, opts)
}

func (c *sheetServiceClient) SetLayout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SetLayout", in, opts)
}

func (c *sheetServiceClient) GetLayout(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetLayout", in, opts)
}

func (c *sheetServiceClient) SetImage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SetImage", in, opts)
}

func (c *sheetServiceClient) GetImage(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetImage", in, opts)
}
