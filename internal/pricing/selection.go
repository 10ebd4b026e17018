package pricing

// The base variant is a synthetic selection that carries the order quantity so
// products without variant groups still have a quantity control.
const (
	BaseVariantGroup = "__base__"
	BaseVariantValue = "unit"
)

// VariantSelection is one active (group, option) pair. Quantity 0 means the
// pair is kept for cheap toggling but counts as not selected.
type VariantSelection struct {
	Group         string        `json:"group"`
	Item          VariantOption `json:"item"`
	Quantity      int           `json:"quantity"`
	IsBaseVariant bool          `json:"is_base_variant"`
}

// SelectionState is the variant selection store for the product currently
// being viewed. It is owned by one page or checkout session and is not safe
// for concurrent use. Only Items is serialized; the catalog is bound again
// with Rebind after a state is loaded.
type SelectionState struct {
	// groups is the variant catalog set by InitVariants or Rebind. When bound
	// is set, AddVariant only accepts options that exist in it and takes the
	// option price from it.
	groups []VariantGroup
	bound  bool
	Items  []VariantSelection `json:"items"`
}

func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// InitVariants resets the store for a new product and seeds the base variant.
func (s *SelectionState) InitVariants(groups []VariantGroup, seedQuantity int) {
	if seedQuantity < 0 {
		seedQuantity = 0
	}
	s.groups = append([]VariantGroup(nil), groups...)
	s.bound = true
	s.Items = []VariantSelection{{
		Group:         BaseVariantGroup,
		Item:          VariantOption{Value: BaseVariantValue},
		Quantity:      seedQuantity,
		IsBaseVariant: true,
	}}
}

// Rebind attaches the current variant catalog to a stored selection. Each
// non-base record takes its price and image from the catalog; records whose
// group or value no longer exists are dropped.
func (s *SelectionState) Rebind(groups []VariantGroup) {
	s.groups = append([]VariantGroup(nil), groups...)
	s.bound = true

	kept := s.Items[:0]
	for _, sel := range s.Items {
		if !sel.IsBaseVariant {
			opt, ok := s.resolve(sel.Group, sel.Item)
			if !ok {
				continue
			}
			sel.Item = opt
		}
		kept = append(kept, sel)
	}
	s.Items = kept
}

// AddVariant selects (group, option) at quantity 1. Adding a pair that is
// already active is a no-op; use UpdateVariantQuantity to change it. A pair
// kept at quantity 0 is reactivated at 1. Unknown groups or values are ignored.
func (s *SelectionState) AddVariant(group string, option VariantOption) {
	if group == BaseVariantGroup {
		return
	}
	opt, ok := s.resolve(group, option)
	if !ok {
		return
	}

	if i := s.indexOf(group, opt.Value); i >= 0 {
		if s.Items[i].Quantity == 0 {
			s.Items[i].Quantity = 1
		}
		return
	}

	s.Items = append(s.Items, VariantSelection{
		Group:    group,
		Item:     opt,
		Quantity: 1,
	})
}

// ToggleVariant deletes an active pair, otherwise behaves like AddVariant.
func (s *SelectionState) ToggleVariant(group string, option VariantOption) {
	if group == BaseVariantGroup {
		return
	}
	if i := s.indexOf(group, option.Value); i >= 0 && s.Items[i].Quantity > 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		return
	}
	s.AddVariant(group, option)
}

// UpdateVariantQuantity sets the quantity of an existing pair. Negative
// quantities clamp to 0 and the record is kept.
func (s *SelectionState) UpdateVariantQuantity(group, value string, quantity int) {
	i := s.indexOf(group, value)
	if i < 0 {
		return
	}
	if quantity < 0 {
		quantity = 0
	}
	s.Items[i].Quantity = quantity
}

// SetQuantity sets the base-variant quantity.
func (s *SelectionState) SetQuantity(quantity int) {
	s.UpdateVariantQuantity(BaseVariantGroup, BaseVariantValue, quantity)
}

// TotalQuantity is the canonical order quantity.
func (s *SelectionState) TotalQuantity() int {
	return TotalQuantity(s.Items)
}

// Active returns the selections with a positive quantity in insertion order.
func (s *SelectionState) Active() []VariantSelection {
	active := make([]VariantSelection, 0, len(s.Items))
	for _, sel := range s.Items {
		if sel.Quantity > 0 {
			active = append(active, sel)
		}
	}
	return active
}

// Selections returns a copy of every record, including zero-quantity ones.
func (s *SelectionState) Selections() []VariantSelection {
	return append([]VariantSelection(nil), s.Items...)
}

func (s *SelectionState) indexOf(group, value string) int {
	for i, sel := range s.Items {
		if sel.Group == group && sel.Item.Value == value {
			return i
		}
	}
	return -1
}

func (s *SelectionState) resolve(group string, option VariantOption) (VariantOption, bool) {
	if !s.bound {
		option.Price = sanitize(option.Price)
		return option, option.Value != ""
	}
	for _, g := range s.groups {
		if g.Name != group {
			continue
		}
		opt, ok := g.Find(option.Value)
		if ok {
			opt.Price = sanitize(opt.Price)
		}
		return opt, ok
	}
	return VariantOption{}, false
}

// TotalQuantity returns the base-variant quantity. Without a base variant it
// falls back to the sum of the selection quantities.
func TotalQuantity(selections []VariantSelection) int {
	if q, ok := baseQuantity(selections); ok {
		return q
	}
	total := 0
	for _, sel := range selections {
		if sel.Quantity > 0 {
			total += sel.Quantity
		}
	}
	return total
}

func baseQuantity(selections []VariantSelection) (int, bool) {
	for _, sel := range selections {
		if sel.IsBaseVariant {
			if sel.Quantity < 0 {
				return 0, true
			}
			return sel.Quantity, true
		}
	}
	return 0, false
}
