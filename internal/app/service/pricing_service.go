package service

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

// SelectionInput references a catalog option by group and value. The price
// always comes from the catalog. An omitted quantity means 1; an explicit
// quantity of 0 or less means the option is not selected.
type SelectionInput struct {
	Group    string `json:"group" binding:"required"`
	Value    string `json:"value" binding:"required"`
	Quantity *int   `json:"quantity"`
}

type Quote struct {
	ProductID  uint                       `json:"product_id"`
	Selections []pricing.VariantSelection `json:"selections"`
	Breakdown  pricing.PriceBreakdown     `json:"breakdown"`
}

type PricingService interface {
	Quote(productID uint, selections []SelectionInput, quantity *int) (*Quote, error)
	NewState(product *model.Product) *pricing.SelectionState
	Resolve(product *model.Product, selections []SelectionInput, quantity *int) *pricing.SelectionState
	Calculate(product *model.Product, selections []pricing.VariantSelection) pricing.PriceBreakdown
	Engine() *pricing.Engine
}

type pricingService struct {
	productService   ProductService
	engine           *pricing.Engine
	baseSeedQuantity int
}

func NewPricingService(productService ProductService, engine *pricing.Engine, baseSeedQuantity int) PricingService {
	return &pricingService{
		productService:   productService,
		engine:           engine,
		baseSeedQuantity: baseSeedQuantity,
	}
}

// Quote prices a selection kept on the client. Unknown groups or values are
// dropped the same way the selection store drops them.
func (s *pricingService) Quote(productID uint, selections []SelectionInput, quantity *int) (*Quote, error) {
	product, err := s.productService.GetActiveProduct(productID)
	if err != nil {
		return nil, err
	}

	state := s.Resolve(product, selections, quantity)
	breakdown := s.Calculate(product, state.Selections())

	logger.Info("Quote calculated", map[string]interface{}{
		"product_id":     productID,
		"selections":     len(selections),
		"total_quantity": breakdown.TotalQuantity,
		"final_total":    breakdown.FinalTotal,
	})

	return &Quote{
		ProductID:  product.ID,
		Selections: state.Active(),
		Breakdown:  breakdown,
	}, nil
}

func (s *pricingService) NewState(product *model.Product) *pricing.SelectionState {
	state := pricing.NewSelectionState()
	state.InitVariants(product.PricingConfig().Variants, s.baseSeedQuantity)
	return state
}

// Resolve replays client selections onto a fresh state. A base-variant entry
// or an explicit quantity sets the order quantity. Variant lines sent with a
// quantity below 1 are skipped.
func (s *pricingService) Resolve(product *model.Product, selections []SelectionInput, quantity *int) *pricing.SelectionState {
	state := s.NewState(product)

	for _, sel := range selections {
		if sel.Group == pricing.BaseVariantGroup {
			if sel.Quantity != nil {
				state.SetQuantity(*sel.Quantity)
			}
			continue
		}
		if sel.Quantity != nil && *sel.Quantity < 1 {
			continue
		}
		state.AddVariant(sel.Group, pricing.VariantOption{Value: sel.Value})
		if sel.Quantity != nil {
			state.UpdateVariantQuantity(sel.Group, sel.Value, *sel.Quantity)
		}
	}
	if quantity != nil {
		state.SetQuantity(*quantity)
	}
	return state
}

func (s *pricingService) Calculate(product *model.Product, selections []pricing.VariantSelection) pricing.PriceBreakdown {
	return s.engine.Calculate(pricing.Input{
		Product:    product.PricingConfig(),
		Selections: selections,
	})
}

func (s *pricingService) Engine() *pricing.Engine {
	return s.engine
}
