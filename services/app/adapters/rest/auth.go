package rest

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/services/app/core"
)

// userRecord is a user as the backend stores it, password included.
type userRecord struct {
	ID       core.ID `json:"id,omitempty"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

func (r userRecord) user() core.User {
	return core.User{ID: r.ID, Name: r.Name, Email: r.Email}
}

func (c *Client) findUsers(ctx context.Context, email string) ([]userRecord, error) {
	var users []userRecord
	if err := c.do(ctx, http.MethodGet, "/users", url.Values{"email": {email}}, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Login(ctx context.Context, data core.LoginData) (core.User, error) {
	users, err := c.findUsers(ctx, data.Email)
	if err != nil {
		return core.User{}, c.mapErr(core.ErrAuthConnection, err)
	}
	if len(users) == 0 {
		return core.User{}, core.ErrEmailNotFound
	}

	u := users[0]
	if u.Password != data.Password {
		return core.User{}, core.ErrIncorrectPassword
	}
	return u.user(), nil
}

func (c *Client) Register(ctx context.Context, data core.RegisterData) (core.User, error) {
	existing, err := c.findUsers(ctx, data.Email)
	if err != nil {
		return core.User{}, c.mapErr(core.ErrAuthConnection, err)
	}
	if len(existing) > 0 {
		return core.User{}, core.ErrEmailInUse
	}

	in := userRecord{Name: data.Name, Email: data.Email, Password: data.Password}
	var created userRecord
	if err := c.do(ctx, http.MethodPost, "/users", nil, in, &created); err != nil {
		return core.User{}, c.mapErr(core.ErrAuthConnection, err)
	}
	return created.user(), nil
}

var _ core.Auth = (*Client)(nil)
