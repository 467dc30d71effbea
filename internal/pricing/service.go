package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

type ruleRepository interface {
	ListByProducerType(ctx context.Context, producerTypeID uuid.UUID) ([]models.PriceRule, error)
	ListAll(ctx context.Context) ([]models.PriceRule, error)
	Insert(ctx context.Context, rule *models.PriceRule) error
	CloseOpenRule(ctx context.Context, id uuid.UUID, endDate time.Time) error
}

// Service exposes the pricing engine: rule administration, rule resolution
// and per-load value allocation.
type Service interface {
	RuleSource
	AllocateLoadValues(ctx context.Context, date time.Time, items []ItemInput) ([]decimal.Decimal, error)
	ListRules(ctx context.Context) ([]RuleDTO, error)
	CreateRule(ctx context.Context, input CreateRuleInput) (*models.PriceRule, error)
	CloseRule(ctx context.Context, id uuid.UUID, endDate time.Time) error
}

type service struct {
	rules ruleRepository
}

// NewService builds the pricing service on top of the rule repository.
func NewService(rules ruleRepository) (Service, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule repository required")
	}
	return &service{rules: rules}, nil
}

// RuleDTO is a price rule joined with its producer type name for listings.
type RuleDTO struct {
	ID               uuid.UUID        `json:"id"`
	ProducerTypeID   uuid.UUID        `json:"producer_type_id"`
	ProducerTypeName string           `json:"producer_type_name"`
	PerTonRate       decimal.Decimal  `json:"per_ton_rate"`
	FixedFee         *decimal.Decimal `json:"fixed_fee,omitempty"`
	MinTonnage       *decimal.Decimal `json:"min_tonnage,omitempty"`
	ValidFrom        time.Time        `json:"valid_from"`
	ValidTo          *time.Time       `json:"valid_to,omitempty"`
}

// CreateRuleInput captures a new price rule version.
type CreateRuleInput struct {
	ProducerTypeID uuid.UUID
	PerTonRate     decimal.Decimal
	FixedFee       *decimal.Decimal
	MinTonnage     *decimal.Decimal
	ValidFrom      time.Time
	ValidTo        *time.Time
}

// RuleFor resolves the rule in effect for the producer type on asOf.
// A miss returns (nil, nil); callers degrade the value to zero.
func (s *service) RuleFor(ctx context.Context, producerTypeID uuid.UUID, asOf time.Time) (*models.PriceRule, error) {
	rules, err := s.rules.ListByProducerType(ctx, producerTypeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price rules")
	}
	return ResolvePriceRule(rules, asOf), nil
}

// AllocateLoadValues runs the allocator against the stored rule table.
func (s *service) AllocateLoadValues(ctx context.Context, date time.Time, items []ItemInput) ([]decimal.Decimal, error) {
	return Allocate(ctx, s, date, items)
}

func (s *service) ListRules(ctx context.Context) ([]RuleDTO, error) {
	rules, err := s.rules.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price rules")
	}

	dtos := make([]RuleDTO, 0, len(rules))
	for _, rule := range rules {
		dto := RuleDTO{
			ID:             rule.ID,
			ProducerTypeID: rule.ProducerTypeID,
			PerTonRate:     rule.PerTonRate,
			FixedFee:       rule.FixedFee,
			MinTonnage:     rule.MinTonnage,
			ValidFrom:      rule.ValidFrom,
			ValidTo:        rule.ValidTo,
		}
		if rule.ProducerType != nil {
			dto.ProducerTypeName = rule.ProducerType.Name
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func (s *service) CreateRule(ctx context.Context, input CreateRuleInput) (*models.PriceRule, error) {
	if input.ProducerTypeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "producer_type_id is required")
	}
	if !input.PerTonRate.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "per_ton_rate must be positive")
	}
	if input.MinTonnage != nil && input.FixedFee == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fixed_fee is required when min_tonnage is set")
	}
	if input.ValidFrom.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_from is required")
	}
	if input.ValidTo != nil && DateOnly(*input.ValidTo).Before(DateOnly(input.ValidFrom)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_to must not precede valid_from")
	}

	rule := &models.PriceRule{
		ProducerTypeID: input.ProducerTypeID,
		PerTonRate:     input.PerTonRate,
		FixedFee:       input.FixedFee,
		MinTonnage:     input.MinTonnage,
		ValidFrom:      DateOnly(input.ValidFrom),
		Active:         true,
	}
	if input.ValidTo != nil {
		end := DateOnly(*input.ValidTo)
		rule.ValidTo = &end
	}

	if err := s.rules.Insert(ctx, rule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert price rule")
	}
	return rule, nil
}

func (s *service) CloseRule(ctx context.Context, id uuid.UUID, endDate time.Time) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule id is required")
	}
	if endDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date is required")
	}
	if err := s.rules.CloseOpenRule(ctx, id, endDate); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "open price rule not found")
	}
	return nil
}
