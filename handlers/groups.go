package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/contactbook/datastores"
)

type Groups struct {
	Store        ds.GroupsStore
	ErrorHandler func(context.Context, error)
}

type GroupModel struct {
	ID   ds.GroupID `json:"id"   readOnly:"true" example:"3"`
	Name string     `json:"name" minLength:"1"   example:"VIP"`
}

func (h *Groups) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/groups",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type GroupsListOutput struct {
	Body []GroupModel
}

func (h *Groups) list(ctx context.Context, _ *struct{}) (*GroupsListOutput, error) {
	groups, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]GroupModel, 0, len(groups))
	for _, g := range groups {
		body = append(body, GroupModel{ID: g.ID, Name: g.Name})
	}
	return &GroupsListOutput{Body: body}, nil
}

func (h *Groups) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/groups",
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type GroupsOutput struct {
	Body GroupModel
}

func (h *Groups) create(ctx context.Context, input *struct {
	Body struct {
		Name string `json:"name" minLength:"1" example:"VIP"`
	}
}) (*GroupsOutput, error) {
	id, err := h.Store.Create(ctx, &ds.Group{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &GroupsOutput{Body: GroupModel{ID: id, Name: input.Body.Name}}, nil
}

func (h *Groups) RegisterDelete(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/groups/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Groups) del(ctx context.Context, input *struct {
	ID ds.GroupID `path:"id" doc:"ID of the group to delete"`
}) (*struct{}, error) {
	err := h.Store.Delete(ctx, input.ID)
	if errors.Is(err, ds.ErrObjectNotFound) {
		return nil, huma.Error404NotFound("id not found", err)
	}
	return nil, err
}
