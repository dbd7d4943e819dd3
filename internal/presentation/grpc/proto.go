package grpc

// proto.go defines the gRPC server interface derived from
// credit/dossier/v1/dossier.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DossierServiceServer is the server API for DossierService.
// It mirrors the proto-generated interface from credit.dossier.v1.DossierService.
type DossierServiceServer interface {
	StartDossier(context.Context, *StartDossierRequest) (*DossierResponse, error)
	RunSimulation(context.Context, *RunSimulationRequest) (*SimulationResponse, error)
	CheckEligibility(context.Context, *CheckEligibilityRequest) (*DossierResponse, error)
	CreateDossier(context.Context, *CreateDossierRequest) (*DossierResponse, error)
	SubmitDossier(context.Context, *SubmitDossierRequest) (*DossierResponse, error)
	GetDossier(context.Context, *GetDossierRequest) (*DossierResponse, error)
	mustEmbedUnimplementedDossierServiceServer()
}

// UnimplementedDossierServiceServer provides forward-compatible default implementations.
type UnimplementedDossierServiceServer struct{}

func (UnimplementedDossierServiceServer) StartDossier(context.Context, *StartDossierRequest) (*DossierResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartDossier not implemented")
}
func (UnimplementedDossierServiceServer) RunSimulation(context.Context, *RunSimulationRequest) (*SimulationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunSimulation not implemented")
}
func (UnimplementedDossierServiceServer) CheckEligibility(context.Context, *CheckEligibilityRequest) (*DossierResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckEligibility not implemented")
}
func (UnimplementedDossierServiceServer) CreateDossier(context.Context, *CreateDossierRequest) (*DossierResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateDossier not implemented")
}
func (UnimplementedDossierServiceServer) SubmitDossier(context.Context, *SubmitDossierRequest) (*DossierResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitDossier not implemented")
}
func (UnimplementedDossierServiceServer) GetDossier(context.Context, *GetDossierRequest) (*DossierResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDossier not implemented")
}
func (UnimplementedDossierServiceServer) mustEmbedUnimplementedDossierServiceServer() {}

// RegisterDossierServiceServer registers the DossierServiceServer with the gRPC server.
func RegisterDossierServiceServer(s *grpclib.Server, srv DossierServiceServer) {
	s.RegisterService(&_DossierService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _DossierService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "credit.dossier.v1.DossierService",
	HandlerType: (*DossierServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "StartDossier", Handler: _DossierService_StartDossier_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "RunSimulation", Handler: _DossierService_RunSimulation_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "CheckEligibility", Handler: _DossierService_CheckEligibility_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "CreateDossier", Handler: _DossierService_CreateDossier_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "SubmitDossier", Handler: _DossierService_SubmitDossier_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "GetDossier", Handler: _DossierService_GetDossier_Handler},             //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _DossierService_StartDossier_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(StartDossierRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DossierServiceServer).StartDossier(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credit.dossier.v1.DossierService/StartDossier",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DossierServiceServer).StartDossier(ctx, req.(*StartDossierRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DossierService_RunSimulation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RunSimulationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DossierServiceServer).RunSimulation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credit.dossier.v1.DossierService/RunSimulation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DossierServiceServer).RunSimulation(ctx, req.(*RunSimulationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DossierService_CheckEligibility_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DossierServiceServer).CheckEligibility(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credit.dossier.v1.DossierService/CheckEligibility",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DossierServiceServer).CheckEligibility(ctx, req.(*CheckEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DossierService_CreateDossier_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateDossierRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DossierServiceServer).CreateDossier(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credit.dossier.v1.DossierService/CreateDossier",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DossierServiceServer).CreateDossier(ctx, req.(*CreateDossierRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DossierService_SubmitDossier_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitDossierRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DossierServiceServer).SubmitDossier(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credit.dossier.v1.DossierService/SubmitDossier",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DossierServiceServer).SubmitDossier(ctx, req.(*SubmitDossierRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DossierService_GetDossier_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDossierRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DossierServiceServer).GetDossier(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credit.dossier.v1.DossierService/GetDossier",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DossierServiceServer).GetDossier(ctx, req.(*GetDossierRequest))
	}
	return interceptor(ctx, in, info, handler)
}
