package services

import (
	"context"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/pricing"
	"backend/internal/store"
	"backend/internal/utils"
)

// OrderService handles food orders against a single restaurant.
type OrderService struct {
	Store    store.Store
	Settings SettingsService
}

type OrderItemInput struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type OrderInput struct {
	RestaurantID    string           `json:"restaurantId"`
	UserName        string           `json:"userName"`
	Phone           string           `json:"phone"`
	DeliveryAddress string           `json:"deliveryAddress"`
	Items           []OrderItemInput `json:"items"`
}

type OrderResult struct {
	Success bool             `json:"success"`
	ID      string           `json:"id"`
	Order   models.FoodOrder `json:"order"`
}

func (s OrderService) Create(ctx context.Context, in OrderInput) (OrderResult, error) {
	if strings.TrimSpace(in.RestaurantID) == "" {
		return OrderResult{}, domain.Coded(domain.CodeRestaurantIDRequired)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return OrderResult{}, domain.Coded(domain.CodePhoneRequired)
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return OrderResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if len(in.Items) == 0 {
		return OrderResult{}, domain.Coded(domain.CodeItemsRequired)
	}

	row, err := s.Store.Get(ctx, store.ColRestaurants, in.RestaurantID)
	if err == store.ErrNotFound {
		return OrderResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if err != nil {
		return OrderResult{}, domain.InternalError{Err: err}
	}
	var resto models.Restaurant
	if err := store.Decode(row, &resto); err != nil {
		return OrderResult{}, domain.InternalError{Err: err}
	}

	menu := map[string]models.MenuItem{}
	for _, item := range resto.Menu {
		menu[item.ID] = item
	}

	// Each line is re-resolved against the live menu and copied into the
	// order so later menu edits cannot change it.
	resolved := make([]models.OrderItem, 0, len(in.Items))
	base := 0.0
	for _, line := range in.Items {
		item, ok := menu[strings.TrimSpace(line.MenuItemID)]
		if !ok {
			return OrderResult{}, domain.Coded(domain.CodeInvalidMenuItem)
		}
		if !models.IsAvailable(item.Available) {
			return OrderResult{}, domain.Coded(domain.CodeItemNotAvailable)
		}
		if line.Quantity < 1 {
			return OrderResult{}, domain.Coded(domain.CodeInvalidInput)
		}
		if item.MaxPerOrder > 0 && line.Quantity > item.MaxPerOrder {
			return OrderResult{}, domain.Coded(domain.CodeQuantityExceedsMax)
		}
		resolved = append(resolved, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   line.Quantity,
		})
		base += item.Price * float64(line.Quantity)
	}

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return OrderResult{}, domain.InternalError{Err: err}
	}
	base = utils.Round2(base)
	tax := pricing.CalcGST(base, pricing.RateOrDefault(settings.Tax.FoodRate))

	order := models.FoodOrder{
		RestaurantID:    resto.ID,
		UserName:        strings.TrimSpace(in.UserName),
		Phone:           strings.TrimSpace(in.Phone),
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		Items:           resolved,
		Pricing:         snapshot(base, tax),
		Status:          models.StatusPlaced,
		CreatedAt:       utils.FormatDateTime(utils.NowUTC()),
	}
	encoded, err := store.Encode(order)
	if err != nil {
		return OrderResult{}, domain.InternalError{Err: err}
	}
	id, err := s.Store.Insert(ctx, store.ColFoodOrders, encoded)
	if err != nil {
		return OrderResult{}, domain.InternalError{Err: err}
	}
	order.ID = id
	return OrderResult{Success: true, ID: id, Order: order}, nil
}
