package http

import (
	"context"
	"fmt"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/infrastructure/api"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newDevAPI spins up a server on httptest and returns a storefront client
// pointed at it. Each test gets its own named in-memory database.
func newDevAPI(t *testing.T) *api.Client {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "Storefront Client"
	cfg.App.Environment = "test"
	cfg.DevAPI.JWTSecret = "test-secret"
	cfg.DevAPI.TokenExpiry = time.Hour
	cfg.DevAPI.BcryptCost = 4
	cfg.DevAPI.DBDriver = "sqlite"
	cfg.DevAPI.DBName = strings.ReplaceAll(t.Name(), "/", "_")

	server, err := NewServer(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	clientCfg := &config.Config{
		API: config.APIConfig{BaseURL: ts.URL + "/api", RequestTimeout: 5 * time.Second},
	}
	return api.New(clientCfg, testLogger())
}

// signup registers a fresh account and installs its token on the client.
func signup(t *testing.T, client *api.Client, email string) api.AuthResponse {
	t.Helper()
	resp, err := client.Signup(context.Background(), api.SignupRequest{
		Name:     "Ada Lovelace",
		Email:    email,
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	client.SetToken(resp.Token)
	return resp
}

func TestSignupLoginVerify(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)

	resp := signup(t, client, "ada@example.com")
	if resp.Token == "" {
		t.Fatal("signup returned no token")
	}
	if resp.User.Name != "Ada Lovelace" || resp.User.Email != "ada@example.com" || resp.User.RoleID != 1 {
		t.Fatalf("signup user = %+v", resp.User)
	}

	// A fresh login with the same credentials yields a usable session.
	client.ClearToken()
	login, err := client.Login(ctx, api.Credentials{Email: "ada@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	client.SetToken(login.Token)

	user, err := client.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("verified user = %+v", user)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)
	signup(t, client, "ada@example.com")

	_, err := client.Login(ctx, api.Credentials{Email: "ada@example.com", Password: "wrong-password"})
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if api.UserMessage(err) != "Invalid email or password" {
		t.Fatalf("message = %q", api.UserMessage(err))
	}

	_, err = client.Login(ctx, api.Credentials{Email: "nobody@example.com", Password: "whatever-long"})
	if err == nil {
		t.Fatal("expected login to fail for an unknown account")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	client := newDevAPI(t)
	signup(t, client, "ada@example.com")

	_, err := client.Signup(context.Background(), api.SignupRequest{
		Name:     "Someone Else",
		Email:    "ada@example.com",
		Password: "another-password",
	})
	if err == nil {
		t.Fatal("expected duplicate signup to fail")
	}
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.StatusCode != stdhttp.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	client := newDevAPI(t)

	_, err := client.ListAddresses(context.Background())
	if err == nil {
		t.Fatal("expected an error without a token")
	}
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.StatusCode != stdhttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSeededCatalog(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)

	list, err := client.ListProducts(ctx, api.ProductQuery{})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if list.Total != 6 || len(list.Products) != 6 {
		t.Fatalf("seeded catalog: %d products, total %d", len(list.Products), list.Total)
	}
	if list.Products[0].PrimaryImageURL() == "" {
		t.Fatal("seeded products carry an image")
	}

	// Pagination keeps the full count.
	page, err := client.ListProducts(ctx, api.ProductQuery{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListProducts paged: %v", err)
	}
	if len(page.Products) != 2 || page.Total != 6 {
		t.Fatalf("page = %d products, total %d", len(page.Products), page.Total)
	}

	categories, err := client.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("seeded categories: %d", len(categories))
	}
	for _, category := range categories {
		if category.Slug == "" {
			t.Fatalf("category %q arrived unnormalized", category.Code)
		}
	}

	// Category filtering narrows the list.
	filtered, err := client.ListProducts(ctx, api.ProductQuery{CategoryID: categories[0].ID})
	if err != nil {
		t.Fatalf("ListProducts filtered: %v", err)
	}
	if filtered.Total >= 6 || filtered.Total == 0 {
		t.Fatalf("filtered total = %d", filtered.Total)
	}
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)

	product, err := client.GetProduct(ctx, 1)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.ID != 1 || product.Name == "" || !product.Price.IsPositive() {
		t.Fatalf("product = %+v", product)
	}

	_, err = client.GetProduct(ctx, 9999)
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.Kind != api.KindNotFound {
		t.Fatalf("expected not_found for a missing product, got %v", err)
	}
	if api.UserMessage(err) != "The requested resource was not found." {
		t.Fatalf("message = %q", api.UserMessage(err))
	}
}

func TestAddressLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)
	signup(t, client, "ada@example.com")

	created, err := client.CreateAddress(ctx, api.Address{
		Title:        "Home",
		Name:         "Ada",
		Surname:      "Lovelace",
		Phone:        "5551234567",
		City:         "Istanbul",
		District:     "Kadikoy",
		Neighborhood: "Moda",
		Address:      "Moda Cad. 1",
	})
	if err != nil {
		t.Fatalf("CreateAddress: %v", err)
	}
	if created.ID == 0 || created.Title != "Home" {
		t.Fatalf("created = %+v", created)
	}

	created.City = "Ankara"
	updated, err := client.UpdateAddress(ctx, created)
	if err != nil {
		t.Fatalf("UpdateAddress: %v", err)
	}
	if updated.City != "Ankara" || updated.ID != created.ID {
		t.Fatalf("updated = %+v", updated)
	}

	addresses, err := client.ListAddresses(ctx)
	if err != nil {
		t.Fatalf("ListAddresses: %v", err)
	}
	if len(addresses) != 1 || addresses[0].City != "Ankara" {
		t.Fatalf("addresses = %+v", addresses)
	}

	if err := client.DeleteAddress(ctx, created.ID); err != nil {
		t.Fatalf("DeleteAddress: %v", err)
	}
	addresses, err = client.ListAddresses(ctx)
	if err != nil {
		t.Fatalf("ListAddresses after delete: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("addresses after delete = %+v", addresses)
	}
}

func TestAddressesScopedToOwner(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)

	signup(t, client, "ada@example.com")
	if _, err := client.CreateAddress(ctx, api.Address{Title: "Home", Address: "Moda Cad. 1"}); err != nil {
		t.Fatalf("CreateAddress: %v", err)
	}

	// A different account sees none of them.
	signup(t, client, "grace@example.com")
	addresses, err := client.ListAddresses(ctx)
	if err != nil {
		t.Fatalf("ListAddresses: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("leaked addresses across accounts: %+v", addresses)
	}
}

func TestCardLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)
	signup(t, client, "ada@example.com")

	_, err := client.CreateCard(ctx, api.Card{CardNo: "1234", NameOnCard: "Ada"})
	if err == nil {
		t.Fatal("expected a short card number to be rejected")
	}

	created, err := client.CreateCard(ctx, api.Card{
		CardNo:      "4111111111111111",
		ExpireMonth: 12,
		ExpireYear:  2030,
		NameOnCard:  "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("created = %+v", created)
	}

	cards, err := client.ListCards(ctx)
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(cards) != 1 || cards[0].NameOnCard != "Ada Lovelace" {
		t.Fatalf("cards = %+v", cards)
	}

	if err := client.DeleteCard(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	cards, _ = client.ListCards(ctx)
	if len(cards) != 0 {
		t.Fatalf("cards after delete = %+v", cards)
	}
}

func TestOrderRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)
	signup(t, client, "ada@example.com")

	address, err := client.CreateAddress(ctx, api.Address{Title: "Home", Address: "Moda Cad. 1"})
	if err != nil {
		t.Fatalf("CreateAddress: %v", err)
	}

	order, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		AddressID:       address.ID,
		OrderDate:       time.Now().UTC().Format(time.RFC3339),
		CardNo:          "4111111111111111",
		CardName:        "Ada Lovelace",
		CardExpireMonth: 12,
		CardExpireYear:  2030,
		CardCCV:         "123",
		Price:           decimal.RequireFromString("229.98"),
		Products: []api.OrderProduct{
			{ProductID: 1, Count: 2, Detail: "Plain cotton t-shirt"},
			{ProductID: 3, Count: 1, Detail: "Stretch denim"},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !strings.HasPrefix(order.OrderNumber, "ORD-") {
		t.Errorf("order number = %q", order.OrderNumber)
	}
	// Stored card numbers keep only the last four digits.
	if !strings.HasSuffix(order.CardNo, "1111") || !strings.Contains(order.CardNo, "*") {
		t.Errorf("card number not masked: %q", order.CardNo)
	}
	if !order.Price.Equal(decimal.RequireFromString("229.98")) {
		t.Errorf("price = %s", order.Price)
	}
	if len(order.Products) != 2 {
		t.Errorf("products = %+v", order.Products)
	}

	orders, err := client.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Fatalf("orders = %+v", orders)
	}
	if len(orders[0].Products) != 2 {
		t.Fatalf("order history lost its line items: %+v", orders[0])
	}
}

func TestCreateOrderValidation(t *testing.T) {
	ctx := context.Background()
	client := newDevAPI(t)
	signup(t, client, "ada@example.com")

	// An address the user does not own is rejected.
	_, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		AddressID: 999,
		OrderDate: time.Now().UTC().Format(time.RFC3339),
		CardNo:    "4111111111111111",
		Price:     decimal.RequireFromString("50.00"),
		Products:  []api.OrderProduct{{ProductID: 1, Count: 1}},
	})
	if err == nil {
		t.Fatal("expected an unknown address to be rejected")
	}
	if api.UserMessage(err) != "Unknown delivery address" {
		t.Fatalf("message = %q", api.UserMessage(err))
	}

	address, err := client.CreateAddress(ctx, api.Address{Title: "Home", Address: "Moda Cad. 1"})
	if err != nil {
		t.Fatalf("CreateAddress: %v", err)
	}

	// No products, no order.
	_, err = client.CreateOrder(ctx, api.CreateOrderRequest{
		AddressID: address.ID,
		OrderDate: time.Now().UTC().Format(time.RFC3339),
		CardNo:    "4111111111111111",
		Price:     decimal.RequireFromString("50.00"),
	})
	if err == nil {
		t.Fatal("expected an empty order to be rejected")
	}
}

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront Client"
	cfg.DevAPI.JWTSecret = "test-secret"
	cfg.DevAPI.TokenExpiry = time.Hour
	cfg.DevAPI.BcryptCost = 4
	cfg.DevAPI.DBDriver = "sqlite"
	cfg.DevAPI.DBName = fmt.Sprintf("%s_db", t.Name())

	server, err := NewServer(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	resp, err := stdhttp.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
