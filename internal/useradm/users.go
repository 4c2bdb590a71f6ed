// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package useradm

import (
	"context"
)

// GetUsers lists the users of the tenant.
func (c *Client) GetUsers(
	ctx context.Context,
) ([]User, error) {
	const action = "listing users"

	resp, err := c.request(ctx).Get(usersPath)
	if err := c.check(action, resp, err); err != nil {
		return nil, err
	}

	var users []User
	if err := decode(action, resp, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUser fetches a single user.
func (c *Client) GetUser(
	ctx context.Context,
	id string,
) (*User, error) {
	const action = "getting user"

	resp, err := c.request(ctx).
		SetPathParam("id", id).
		Get(usersPath + "/{id}")
	if err := c.check(action, resp, err); err != nil {
		return nil, err
	}

	var user User
	if err := decode(action, resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(
	ctx context.Context,
	user UserCreate,
) error {
	resp, err := c.request(ctx).
		SetBody(user).
		Post(usersPath)

	return c.check("creating user", resp, err)
}

// UpdateUser modifies a user.
func (c *Client) UpdateUser(
	ctx context.Context,
	id string,
	user UserUpdate,
) error {
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetBody(user).
		Put(usersPath + "/{id}")

	return c.check("updating user", resp, err)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(
	ctx context.Context,
	id string,
) error {
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		Delete(usersPath + "/{id}")

	return c.check("deleting user", resp, err)
}
