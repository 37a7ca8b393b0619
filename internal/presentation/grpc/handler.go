package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/application/usecase"
	"github.com/vehiclefin/financing-offer/internal/domain/model"
	"github.com/vehiclefin/financing-offer/pkg/auth"
)

// FinancingHandler implements FinancingOfferServiceServer over the use cases.
type FinancingHandler struct {
	uc     usecase.Set
	logger *slog.Logger
}

func NewFinancingHandler(uc usecase.Set, logger *slog.Logger) *FinancingHandler {
	return &FinancingHandler{uc: uc, logger: logger}
}

func (h *FinancingHandler) SimulateOffer(ctx context.Context, req *dto.SimulateOfferRequest) (*dto.SimulationResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.SimulateOffer.Execute(ctx, actor, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *FinancingHandler) GetOffer(ctx context.Context, req *dto.GetOfferRequest) (*dto.OfferResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.GetOffer.Execute(ctx, actor, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *FinancingHandler) ListOffers(ctx context.Context, req *dto.ListOffersRequest) (*ListOffersResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	offers, err := h.uc.ListOffers.Execute(ctx, actor, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &ListOffersResponse{Offers: offers}, nil
}

func (h *FinancingHandler) GetSettings(ctx context.Context, req *dto.GetSettingsRequest) (*dto.SettingsResponse, error) {
	resp, err := h.uc.GetSettings.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *FinancingHandler) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.UpdateSettings.Execute(ctx, actor, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *FinancingHandler) SettingsHistory(ctx context.Context, req *dto.GetSettingsRequest) (*SettingsHistoryResponse, error) {
	entries, err := h.uc.SettingsHistory.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &SettingsHistoryResponse{Entries: entries}, nil
}

func (h *FinancingHandler) ListCountries(_ context.Context, _ *ListCountriesRequest) (*ListCountriesResponse, error) {
	return &ListCountriesResponse{Countries: h.uc.ListCountries.Execute()}, nil
}

func (h *FinancingHandler) Login(ctx context.Context, req *dto.CredentialsRequest) (*dto.AuthResponse, error) {
	resp, err := h.uc.Login.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *FinancingHandler) Register(ctx context.Context, req *dto.CredentialsRequest) (*dto.AuthResponse, error) {
	resp, err := h.uc.Register.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func actorFrom(ctx context.Context) (dto.Actor, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return dto.Actor{}, status.Error(codes.Unauthenticated, "authentication required")
	}
	return dto.Actor{Username: claims.Username, Admin: claims.HasRole(auth.RoleAdmin)}, nil
}

// toStatus maps domain errors onto gRPC codes. A rejected percentage is
// FailedPrecondition and its message carries the limit.
func (h *FinancingHandler) toStatus(ctx context.Context, err error) error {
	var (
		exceeded *model.PercentageExceededError
		invalid  *model.ValidationError
	)
	switch {
	case errors.As(err, &exceeded):
		h.logger.WarnContext(ctx, "simulation rejected", "requested", exceeded.Requested, "limit", exceeded.Limit)
		return status.Error(codes.FailedPrecondition, exceeded.Error())
	case errors.As(err, &invalid),
		errors.Is(err, model.ErrInvalidCountryCode),
		errors.Is(err, model.ErrInvalidPercentage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, model.ErrForbidden.Error())
	case errors.Is(err, model.ErrOfferNotFound):
		return status.Error(codes.NotFound, model.ErrOfferNotFound.Error())
	case errors.Is(err, model.ErrUsernameTaken):
		return status.Error(codes.AlreadyExists, model.ErrUsernameTaken.Error())
	default:
		h.logger.ErrorContext(ctx, "grpc call failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

var _ FinancingOfferServiceServer = (*FinancingHandler)(nil)
