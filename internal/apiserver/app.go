// Package apiserver does all of the work necessary to create an ecommerce APIServer.
package apiserver

import (
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/config"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/options"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/app"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

const commandDesc = `The ecommerce API server manages users and the product inventory.
Users register and log in to obtain a bearer token; products are created,
listed, updated and soft deleted through REST operations under /v1.`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("Ecommerce API Server",
		basename,
		app.WithOptions(opts),
		app.WithDescription(commandDesc),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)

	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		log.Init(opts.Log)
		defer log.Flush()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}
