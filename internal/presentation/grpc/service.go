package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
)

const serviceName = "financing.v1.FinancingOfferService"

// Full method names, as seen by interceptors.
const (
	MethodSimulateOffer   = "/" + serviceName + "/SimulateOffer"
	MethodGetOffer        = "/" + serviceName + "/GetOffer"
	MethodListOffers      = "/" + serviceName + "/ListOffers"
	MethodGetSettings     = "/" + serviceName + "/GetSettings"
	MethodUpdateSettings  = "/" + serviceName + "/UpdateSettings"
	MethodSettingsHistory = "/" + serviceName + "/SettingsHistory"
	MethodListCountries   = "/" + serviceName + "/ListCountries"
	MethodLogin           = "/" + serviceName + "/Login"
	MethodRegister        = "/" + serviceName + "/Register"
)

type ListOffersResponse struct {
	Offers []dto.OfferResponse `json:"offers"`
}

type SettingsHistoryResponse struct {
	Entries []dto.SettingsResponse `json:"entries"`
}

type ListCountriesRequest struct{}

type ListCountriesResponse struct {
	Countries []dto.CountryResponse `json:"countries"`
}

// FinancingOfferServiceServer is the server API for FinancingOfferService.
type FinancingOfferServiceServer interface {
	SimulateOffer(context.Context, *dto.SimulateOfferRequest) (*dto.SimulationResponse, error)
	GetOffer(context.Context, *dto.GetOfferRequest) (*dto.OfferResponse, error)
	ListOffers(context.Context, *dto.ListOffersRequest) (*ListOffersResponse, error)
	GetSettings(context.Context, *dto.GetSettingsRequest) (*dto.SettingsResponse, error)
	UpdateSettings(context.Context, *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	SettingsHistory(context.Context, *dto.GetSettingsRequest) (*SettingsHistoryResponse, error)
	ListCountries(context.Context, *ListCountriesRequest) (*ListCountriesResponse, error)
	Login(context.Context, *dto.CredentialsRequest) (*dto.AuthResponse, error)
	Register(context.Context, *dto.CredentialsRequest) (*dto.AuthResponse, error)
}

// RegisterFinancingOfferServiceServer registers srv with the gRPC server.
func RegisterFinancingOfferServiceServer(s grpclib.ServiceRegistrar, srv FinancingOfferServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FinancingOfferServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SimulateOffer", Handler: unary(MethodSimulateOffer, FinancingOfferServiceServer.SimulateOffer)},
		{MethodName: "GetOffer", Handler: unary(MethodGetOffer, FinancingOfferServiceServer.GetOffer)},
		{MethodName: "ListOffers", Handler: unary(MethodListOffers, FinancingOfferServiceServer.ListOffers)},
		{MethodName: "GetSettings", Handler: unary(MethodGetSettings, FinancingOfferServiceServer.GetSettings)},
		{MethodName: "UpdateSettings", Handler: unary(MethodUpdateSettings, FinancingOfferServiceServer.UpdateSettings)},
		{MethodName: "SettingsHistory", Handler: unary(MethodSettingsHistory, FinancingOfferServiceServer.SettingsHistory)},
		{MethodName: "ListCountries", Handler: unary(MethodListCountries, FinancingOfferServiceServer.ListCountries)},
		{MethodName: "Login", Handler: unary(MethodLogin, FinancingOfferServiceServer.Login)},
		{MethodName: "Register", Handler: unary(MethodRegister, FinancingOfferServiceServer.Register)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "financing/v1/financing.proto",
}

// unary adapts a typed method to grpc.MethodHandler.
func unary[Req, Resp any](
	fullMethod string,
	call func(FinancingOfferServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FinancingOfferServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FinancingOfferServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
