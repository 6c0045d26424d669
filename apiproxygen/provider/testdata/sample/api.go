// Package sample declares client interfaces for generator tests.
package sample

import (
	"context"

	"github.com/google/uuid"
)

// Organization is returned by SampleService.
type Organization struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OrgID identifies an organization.
type OrgID string

// SampleService reads organizations.
//
//apiproxy:client MyHttpClient
type SampleService interface {
	//apiproxy:method GET organizations/{organizationId}
	ListAllIds(ctx context.Context, organizationId string) ([]uuid.UUID, error)

	//apiproxy:method get organizations/{ID}/details
	Organization(ctx context.Context, id OrgID) (*Organization, error)

	//apiproxy:method GET ping
	Ping() error

	//apiproxy:method GET search/{term}/page/{page}
	Search(term string, page int) (map[string]Organization, error)

	// Unannotated is left unimplemented by the proxy.
	Unannotated(ctx context.Context) (string, error)
}

//apiproxy:client catalog
type Catalog interface {
	//apiproxy:method GET items
	Items(ctx context.Context) ([]string, error)
}

// NotAProxy carries no directive and is ignored.
type NotAProxy interface {
	Foo()
}
