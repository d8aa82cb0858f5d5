package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
	"github.com/treasury/backend/internal/domain/treasury"
)

// NettingService provides application-level bilateral netting operations
type NettingService struct {
	agreementRepo  treasury.NettingAgreementRepository
	settlementRepo treasury.NettingSettlementRepository
	flowRepo       treasury.ScheduledFlowRepository
	rates          treasury.RateResolver
	txManager      treasury.TransactionManager
	nettingSvc     *treasury.NettingService
}

// NewNettingService creates a new NettingService
func NewNettingService(
	agreementRepo treasury.NettingAgreementRepository,
	settlementRepo treasury.NettingSettlementRepository,
	flowRepo treasury.ScheduledFlowRepository,
	rates treasury.RateResolver,
	txManager treasury.TransactionManager,
) *NettingService {
	return &NettingService{
		agreementRepo:  agreementRepo,
		settlementRepo: settlementRepo,
		flowRepo:       flowRepo,
		rates:          rates,
		txManager:      txManager,
		nettingSvc:     treasury.NewNettingService(),
	}
}

// CreateAgreementRequest carries the fields of a new netting agreement
type CreateAgreementRequest struct {
	PartyAID   uuid.UUID `json:"party_a_id" binding:"required"`
	PartyAName string    `json:"party_a_name" binding:"required"`
	PartyBID   uuid.UUID `json:"party_b_id" binding:"required"`
	PartyBName string    `json:"party_b_name" binding:"required"`
	Currency   string    `json:"currency" binding:"required,currency"`
	Frequency  string    `json:"frequency" binding:"required"`
}

// CreateAgreement registers a draft netting agreement
func (s *NettingService) CreateAgreement(ctx context.Context, tenantID uuid.UUID, req CreateAgreementRequest) (*treasury.NettingAgreement, error) {
	agreement, err := treasury.NewNettingAgreement(
		tenantID,
		req.PartyAID, req.PartyBID,
		req.PartyAName, req.PartyBName,
		valueobject.Currency(req.Currency),
		treasury.NettingFrequency(req.Frequency),
	)
	if err != nil {
		return nil, err
	}
	if err := s.agreementRepo.Save(ctx, agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}

// GetAgreement loads a netting agreement
func (s *NettingService) GetAgreement(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingAgreement, error) {
	return s.agreementRepo.FindByIDForTenant(ctx, tenantID, id)
}

// ListAgreements returns the tenant's netting agreements with paging
func (s *NettingService) ListAgreements(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[treasury.NettingAgreement], error) {
	agreements, total, err := s.agreementRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(agreements, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ActivateAgreement transitions a draft agreement into active use
func (s *NettingService) ActivateAgreement(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingAgreement, error) {
	agreement, err := s.agreementRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := agreement.Activate(); err != nil {
		return nil, err
	}
	if err := s.agreementRepo.Save(ctx, agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}

// CloseAgreement terminates an active agreement
func (s *NettingService) CloseAgreement(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingAgreement, error) {
	agreement, err := s.agreementRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := agreement.Close(); err != nil {
		return nil, err
	}
	if err := s.agreementRepo.Save(ctx, agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}

// ProposeSettlement computes the current net position under an agreement.
// The proposal is derived, never persisted; the client must echo its
// figures back through ExecuteSettlement.
func (s *NettingService) ProposeSettlement(ctx context.Context, tenantID, agreementID uuid.UUID) (*treasury.NettingProposal, error) {
	agreement, err := s.agreementRepo.FindByIDForTenant(ctx, tenantID, agreementID)
	if err != nil {
		return nil, err
	}

	flows, err := s.flowRepo.ListOpenForNetting(ctx, tenantID, agreement.PartyBID)
	if err != nil {
		return nil, err
	}

	return s.nettingSvc.BuildProposal(ctx, agreement, flows, s.rates)
}

// ExecuteSettlementRequest echoes the proposal figures the client
// confirmed
type ExecuteSettlementRequest struct {
	NetAmount  decimal.Decimal `json:"net_amount"`
	Direction  string          `json:"direction" binding:"required"`
	ExecutedBy string          `json:"executed_by"`
}

// ExecuteSettlement settles the open net position under an agreement.
// The whole operation runs in one transaction: the agreement row is
// locked, the proposal is recomputed from current data and checked
// against the confirmed figures, the settlement is recorded, and every
// constituent flow is marked consumed. If any step fails nothing is
// persisted, so a flow can never be consumed without its settlement.
func (s *NettingService) ExecuteSettlement(ctx context.Context, tenantID, agreementID uuid.UUID, req ExecuteSettlementRequest) (*treasury.NettingSettlement, error) {
	var settlement *treasury.NettingSettlement

	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		agreement, err := s.agreementRepo.FindByIDForUpdate(txCtx, tenantID, agreementID)
		if err != nil {
			return err
		}

		flows, err := s.flowRepo.ListOpenForNetting(txCtx, tenantID, agreement.PartyBID)
		if err != nil {
			return err
		}

		fresh, err := s.nettingSvc.BuildProposal(txCtx, agreement, flows, s.rates)
		if err != nil {
			return err
		}

		if err := s.nettingSvc.ValidateExecution(fresh, req.NetAmount, treasury.SettlementDirection(req.Direction)); err != nil {
			return err
		}

		settlement, err = treasury.NewNettingSettlement(
			tenantID, agreement.ID,
			fresh.NetAmount, fresh.TotalAR, fresh.TotalAP,
			fresh.Currency, fresh.Direction,
			len(fresh.Lines),
			req.ExecutedBy,
		)
		if err != nil {
			return err
		}

		if err := s.settlementRepo.Create(txCtx, settlement); err != nil {
			return err
		}

		if ids := fresh.FlowIDs(); len(ids) > 0 {
			if err := s.flowRepo.MarkConsumed(txCtx, tenantID, ids, settlement.ID, time.Now()); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return settlement, nil
}

// GetSettlement loads an executed settlement
func (s *NettingService) GetSettlement(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingSettlement, error) {
	return s.settlementRepo.FindByIDForTenant(ctx, tenantID, id)
}

// ListSettlements returns the settlements executed under an agreement,
// newest first
func (s *NettingService) ListSettlements(ctx context.Context, tenantID, agreementID uuid.UUID, filter shared.Filter) (*shared.Paginated[treasury.NettingSettlement], error) {
	if _, err := s.agreementRepo.FindByIDForTenant(ctx, tenantID, agreementID); err != nil {
		return nil, err
	}
	settlements, total, err := s.settlementRepo.ListByAgreement(ctx, tenantID, agreementID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(settlements, total, filter.Page, filter.PageSize)
	return &page, nil
}
