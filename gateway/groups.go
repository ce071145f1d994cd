package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/oaiiae/contactbook/model"
)

func (c *Client) ListGroups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := c.do(ctx, http.MethodGet, "/groups", "/groups", nil, &groups)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []model.Group{}
	}
	return groups, nil
}

func (c *Client) CreateGroup(ctx context.Context, name string) (model.Group, error) {
	var created model.Group
	err := c.do(ctx, http.MethodPost, "/groups", "/groups", map[string]string{"name": name}, &created)
	return created, err
}

func (c *Client) DeleteGroup(ctx context.Context, id model.GroupID) error {
	return c.do(ctx, http.MethodDelete, "/groups/{id}", "/groups/"+strconv.FormatInt(id, 10), nil, nil)
}
