package api

import (
	"context"
	"fmt"
	"net/http"
)

// User is the authenticated user profile.
type User struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the signup request body.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int    `json:"role_id"`
}

// AuthResponse is the login/signup result. The server replies with a flat
// object (token plus profile fields); the profile is reassembled here.
type AuthResponse struct {
	Token string
	User  User
}

type authPayload struct {
	Token  string `json:"token"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

// Login exchanges credentials for a token and profile. Not retried: auth
// failures are terminal and the user re-submits.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/login", nil, creds, &payload); err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{
		Token: payload.Token,
		User:  User{Name: payload.Name, Email: payload.Email, RoleID: payload.RoleID},
	}, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/signup", nil, req, &payload); err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{
		Token: payload.Token,
		User:  User{Name: payload.Name, Email: payload.Email, RoleID: payload.RoleID},
	}, nil
}

// Verify checks the installed token against the server and returns the
// refreshed profile.
func (c *Client) Verify(ctx context.Context) (User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/verify", nil, nil, &payload); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// Address is a saved shipping/billing address.
type Address struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	District     string `json:"district"`
	Neighborhood string `json:"neighborhood"`
	Address      string `json:"address"`
}

// ListAddresses fetches the saved addresses of the authenticated user.
func (c *Client) ListAddresses(ctx context.Context) ([]Address, error) {
	var addresses []Address
	if err := c.do(ctx, http.MethodGet, "/user/address", nil, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress saves a new address and returns it with its assigned id.
func (c *Client) CreateAddress(ctx context.Context, address Address) (Address, error) {
	var created Address
	if err := c.do(ctx, http.MethodPost, "/user/address", nil, address, &created); err != nil {
		return Address{}, err
	}
	return created, nil
}

// UpdateAddress replaces a saved address.
func (c *Client) UpdateAddress(ctx context.Context, address Address) (Address, error) {
	var updated Address
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/user/address/%d", address.ID), nil, address, &updated); err != nil {
		return Address{}, err
	}
	return updated, nil
}

// DeleteAddress removes a saved address.
func (c *Client) DeleteAddress(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/address/%d", id), nil, nil, nil)
}

// Card is a saved payment card. The CCV is never stored server-side and is
// not part of this shape; checkout collects it separately.
type Card struct {
	ID          int    `json:"id"`
	CardNo      string `json:"card_no"`
	ExpireMonth int    `json:"expire_month"`
	ExpireYear  int    `json:"expire_year"`
	NameOnCard  string `json:"name_on_card"`
}

// ListCards fetches the saved cards of the authenticated user.
func (c *Client) ListCards(ctx context.Context) ([]Card, error) {
	var cards []Card
	if err := c.do(ctx, http.MethodGet, "/user/card", nil, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateCard saves a new card and returns it with its assigned id.
func (c *Client) CreateCard(ctx context.Context, card Card) (Card, error) {
	var created Card
	if err := c.do(ctx, http.MethodPost, "/user/card", nil, card, &created); err != nil {
		return Card{}, err
	}
	return created, nil
}

// DeleteCard removes a saved card.
func (c *Client) DeleteCard(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/card/%d", id), nil, nil, nil)
}
