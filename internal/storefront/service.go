package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/sessions"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Service is the storefront surface consumed by the HTTP controllers.
type Service interface {
	Categories() []enums.ProductCategory
	Browse(state catalog.FilterState) []catalog.Product
	Featured(limit int) []catalog.Product
	Product(id string) (catalog.Product, error)

	CreateSession(ctx context.Context) (SessionView, error)
	EndSession(ctx context.Context, sessionID string) error

	Cart(ctx context.Context, sessionID string) (CartView, error)
	AddToCart(ctx context.Context, sessionID, productID string, quantity int) (CartView, error)
	UpdateCartItem(ctx context.Context, sessionID, productID string, quantity int) (CartView, error)
	RemoveCartItem(ctx context.Context, sessionID, productID string) (CartView, error)
	ClearCart(ctx context.Context, sessionID string) (CartView, error)

	Theme(ctx context.Context, sessionID string) (sessions.Theme, error)
	ToggleTheme(ctx context.Context, sessionID string) (sessions.Theme, error)
}

type sessionStore interface {
	Create(ctx context.Context) (*sessions.Session, error)
	Get(ctx context.Context, id string) (*sessions.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionView is the public shape of a newly opened session.
type SessionView struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Theme     sessions.Theme `json:"theme"`
}

// CartView is a session's cart with its priced lines and totals.
type CartView struct {
	SessionID string      `json:"session_id"`
	Items     []cart.Item `json:"items"`
	pricing.Quote
}

type ServiceParams struct {
	Catalog  *catalog.Catalog
	Sessions sessionStore
	Policy   pricing.ShippingPolicy
}

type service struct {
	catalog  *catalog.Catalog
	sessions sessionStore
	policy   pricing.ShippingPolicy
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	return &service{
		catalog:  params.Catalog,
		sessions: params.Sessions,
		policy:   params.Policy,
	}, nil
}

func (s *service) Categories() []enums.ProductCategory {
	return s.catalog.Categories()
}

func (s *service) Browse(state catalog.FilterState) []catalog.Product {
	return s.catalog.Browse(state)
}

func (s *service) Featured(limit int) []catalog.Product {
	return s.catalog.Featured(limit)
}

func (s *service) Product(id string) (catalog.Product, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}

func (s *service) CreateSession(ctx context.Context) (SessionView, error) {
	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return SessionView{}, err
	}
	return SessionView{ID: sess.ID, CreatedAt: sess.CreatedAt, Theme: sess.Theme()}, nil
}

func (s *service) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *service) Cart(ctx context.Context, sessionID string) (CartView, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return s.view(sess), nil
}

// AddToCart only accepts products the catalog knows.
func (s *service) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (CartView, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if _, ok := s.catalog.Get(productID); !ok {
		return CartView{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": productID})
	}
	if err := sess.Cart().AddItem(productID, quantity); err != nil {
		return CartView{}, err
	}
	return s.view(sess), nil
}

// UpdateCartItem leaves the cart untouched when the product is not in it.
func (s *service) UpdateCartItem(ctx context.Context, sessionID, productID string, quantity int) (CartView, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	sess.Cart().UpdateQuantity(productID, quantity)
	return s.view(sess), nil
}

func (s *service) RemoveCartItem(ctx context.Context, sessionID, productID string) (CartView, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	sess.Cart().RemoveItem(productID)
	return s.view(sess), nil
}

func (s *service) ClearCart(ctx context.Context, sessionID string) (CartView, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	sess.Cart().Clear()
	return s.view(sess), nil
}

func (s *service) Theme(ctx context.Context, sessionID string) (sessions.Theme, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return sessions.Theme{}, err
	}
	return sess.Theme(), nil
}

func (s *service) ToggleTheme(ctx context.Context, sessionID string) (sessions.Theme, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return sessions.Theme{}, err
	}
	return sess.ToggleTheme(), nil
}

func (s *service) view(sess *sessions.Session) CartView {
	items := sess.Cart().Items()
	return CartView{
		SessionID: sess.ID,
		Items:     items,
		Quote:     pricing.BuildQuote(items, s.catalog, s.policy),
	}
}
