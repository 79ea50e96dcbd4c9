package http

import (
	"github.com/sundayts/portfolio/internal/catalog/domain"
	"github.com/sundayts/portfolio/internal/catalog/service"
)

// Handler bundles the dependencies for catalog HTTP endpoints.
type Handler struct {
	svc *service.CatalogService
}

func New(svc *service.CatalogService) *Handler {
	return &Handler{svc: svc}
}

type filterReq struct {
	State  domain.FilterState `json:"state"`
	Action domain.Action      `json:"action"`
}

type filterResp struct {
	OK    bool               `json:"ok"`
	State domain.FilterState `json:"state"`
	View  domain.View        `json:"view"`
}
