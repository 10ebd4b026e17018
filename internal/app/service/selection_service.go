package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"github.com/ikkim/storefront-backend/pkg/redis"
)

var ErrSelectionNotFound = errors.New("selection session not found")

// SessionStore persists selection sessions.
type SessionStore interface {
	Save(ctx context.Context, session *redis.SelectionSession) error
	Get(ctx context.Context, id string) (*redis.SelectionSession, error)
	Delete(ctx context.Context, id string) error
}

// SelectionView is a session with the breakdown for its current state.
type SelectionView struct {
	ID            string                     `json:"id"`
	ProductID     uint                       `json:"product_id"`
	Selections    []pricing.VariantSelection `json:"selections"`
	TotalQuantity int                        `json:"total_quantity"`
	Breakdown     pricing.PriceBreakdown     `json:"breakdown"`
}

type SelectionService interface {
	Start(ctx context.Context, productID uint) (*SelectionView, error)
	Get(ctx context.Context, id string) (*SelectionView, error)
	AddVariant(ctx context.Context, id, group, value string) (*SelectionView, error)
	ToggleVariant(ctx context.Context, id, group, value string) (*SelectionView, error)
	UpdateVariantQuantity(ctx context.Context, id, group, value string, quantity int) (*SelectionView, error)
	SetQuantity(ctx context.Context, id string, quantity int) (*SelectionView, error)
	Load(ctx context.Context, id string) (*redis.SelectionSession, *model.Product, error)
	Discard(ctx context.Context, id string) error
}

type selectionService struct {
	store          SessionStore
	productService ProductService
	pricingService PricingService
}

func NewSelectionService(store SessionStore, productService ProductService, pricingService PricingService) SelectionService {
	return &selectionService{
		store:          store,
		productService: productService,
		pricingService: pricingService,
	}
}

// Start opens a session for a product with only the base variant selected.
func (s *selectionService) Start(ctx context.Context, productID uint) (*SelectionView, error) {
	product, err := s.productService.GetActiveProduct(productID)
	if err != nil {
		return nil, err
	}

	session := &redis.SelectionSession{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		State:     *s.pricingService.NewState(product),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.Info("Selection session started", map[string]interface{}{
		"session_id": session.ID,
		"product_id": product.ID,
	})
	return s.view(session, product), nil
}

func (s *selectionService) Get(ctx context.Context, id string) (*SelectionView, error) {
	session, product, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(session, product), nil
}

func (s *selectionService) AddVariant(ctx context.Context, id, group, value string) (*SelectionView, error) {
	return s.mutate(ctx, id, func(state *pricing.SelectionState) {
		state.AddVariant(group, pricing.VariantOption{Value: value})
	})
}

func (s *selectionService) ToggleVariant(ctx context.Context, id, group, value string) (*SelectionView, error) {
	return s.mutate(ctx, id, func(state *pricing.SelectionState) {
		state.ToggleVariant(group, pricing.VariantOption{Value: value})
	})
}

func (s *selectionService) UpdateVariantQuantity(ctx context.Context, id, group, value string, quantity int) (*SelectionView, error) {
	return s.mutate(ctx, id, func(state *pricing.SelectionState) {
		state.UpdateVariantQuantity(group, value, quantity)
	})
}

func (s *selectionService) SetQuantity(ctx context.Context, id string, quantity int) (*SelectionView, error) {
	return s.mutate(ctx, id, func(state *pricing.SelectionState) {
		state.SetQuantity(quantity)
	})
}

// Load returns the session with its product. The stored selection is bound to
// the product's current variant catalog, so surcharges follow admin edits and
// options removed since the session started are dropped. A product that was
// deleted or unpublished is reported as not found.
func (s *selectionService) Load(ctx context.Context, id string) (*redis.SelectionSession, *model.Product, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			logger.Warn("Selection session not found", map[string]interface{}{
				"session_id": id,
			})
			return nil, nil, ErrSelectionNotFound
		}
		return nil, nil, err
	}

	product, err := s.productService.GetActiveProduct(session.ProductID)
	if err != nil {
		return nil, nil, err
	}

	before := len(session.State.Items)
	session.State.Rebind(product.PricingConfig().Variants)
	if dropped := before - len(session.State.Items); dropped > 0 {
		logger.Info("Dropped selections no longer in catalog", map[string]interface{}{
			"session_id": id,
			"product_id": product.ID,
			"dropped":    dropped,
		})
	}
	return session, product, nil
}

func (s *selectionService) Discard(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return ErrSelectionNotFound
		}
		return err
	}

	logger.Debug("Selection session discarded", map[string]interface{}{
		"session_id": id,
	})
	return nil
}

func (s *selectionService) mutate(ctx context.Context, id string, apply func(*pricing.SelectionState)) (*SelectionView, error) {
	session, product, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(&session.State)

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session, product), nil
}

func (s *selectionService) view(session *redis.SelectionSession, product *model.Product) *SelectionView {
	return &SelectionView{
		ID:            session.ID,
		ProductID:     session.ProductID,
		Selections:    session.State.Active(),
		TotalQuantity: session.State.TotalQuantity(),
		Breakdown:     s.pricingService.Calculate(product, session.State.Selections()),
	}
}
