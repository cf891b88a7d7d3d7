// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app wires the storage driver and API endpoints together.
package app

import (
	"context"
	"fmt"

	"github.com/foodpoint/foodpoint/endpoint"
	"github.com/foodpoint/foodpoint/health"
	"github.com/foodpoint/foodpoint/rest"
	"github.com/foodpoint/foodpoint/store/memory"
	"github.com/foodpoint/foodpoint/store/postgres"

	"github.com/z5labs/bedrock/lifecycle"
)

// Config defines the application configuration.
type Config struct {
	rest.Config `config:",squash"`

	Storage struct {
		Driver string `config:"driver"`
		URL    string `config:"url"`
	} `config:"storage"`

	Compat struct {
		PutClearsOmitted  bool   `config:"put_clears_omitted"`
		RedirectRelations string `config:"redirect_relations"`
	} `config:"compat"`
}

// Store combines the persistence surfaces the endpoints consume. Both
// the memory and postgres drivers implement it.
type Store interface {
	endpoint.UserStore
	endpoint.CollectionStore
	endpoint.RecipeStore
	endpoint.CategoryStore
	endpoint.EthnicityStore

	Ping(context.Context) error
}

// UnknownStorageDriverError occurs when the configured storage driver
// does not match any of the supported drivers.
type UnknownStorageDriverError struct {
	Driver string
}

// Error implements the error interface.
func (e UnknownStorageDriverError) Error() string {
	return fmt.Sprintf("unknown storage driver: %q", e.Driver)
}

// Init initializes the REST API with the configured storage driver
// and all Foodpoint endpoints.
func Init(ctx context.Context, cfg Config) (*rest.Api, error) {
	s, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var editOpts []endpoint.Option
	if cfg.Compat.PutClearsOmitted {
		editOpts = append(editOpts, endpoint.ClearOmittedFields())
	}

	var relOpts []endpoint.Option
	if cfg.Compat.RedirectRelations != "" {
		relOpts = append(relOpts, endpoint.RedirectTo(cfg.Compat.RedirectRelations))
	}

	liveness := &health.Binary{}
	liveness.MarkHealthy()

	api := rest.NewApi(
		cfg.OpenApi.Title,
		cfg.OpenApi.Version,
		rest.Readiness(rest.HealthHandler(health.Ping(s.Ping))),
		rest.Liveness(rest.HealthHandler(liveness)),
		endpoint.EntryPoint(),
		endpoint.ListUsers(s),
		endpoint.AddUser(s),
		endpoint.GetUser(s),
		endpoint.UpdateUser(s),
		endpoint.DeleteUser(s),
		endpoint.ListCollections(s, s),
		endpoint.AddCollection(s, s),
		endpoint.GetCollection(s, s, s),
		endpoint.AddRecipe(s, s, s, s, s),
		endpoint.UpdateCollection(s, s, editOpts...),
		endpoint.DeleteCollection(s, s),
		endpoint.GetRecipe(s, s, s),
		endpoint.UpdateRecipe(s, s, s, s, s, editOpts...),
		endpoint.DeleteRecipe(s, s, s),
		endpoint.ListCategories(s),
		endpoint.AddCategory(s),
		endpoint.GetCategory(s),
		endpoint.UpdateCategory(s, editOpts...),
		endpoint.ListEthnicities(s),
		endpoint.AddEthnicity(s),
		endpoint.GetEthnicity(s),
		endpoint.UpdateEthnicity(s, editOpts...),
		endpoint.LinkRelations(relOpts...),
		endpoint.Profiles(relOpts...),
	)
	return api, nil
}

// OpenStore initializes the storage driver named by the config. The
// postgres pool is released on shutdown when a lifecycle is present
// in the context.
func OpenStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		return memory.New(), nil
	case "postgres":
		pg, err := postgres.Connect(ctx, cfg.Storage.URL)
		if err != nil {
			return nil, err
		}

		lc, ok := lifecycle.FromContext(ctx)
		if ok {
			lc.OnPostRun(lifecycle.HookFunc(func(ctx context.Context) error {
				pg.Close()
				return nil
			}))
		}
		return pg, nil
	default:
		return nil, UnknownStorageDriverError{Driver: cfg.Storage.Driver}
	}
}
