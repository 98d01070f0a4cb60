package di

import (
	"go.uber.org/fx"

	"github.com/roomcraft/referral/internal/adapter/notify"
	"github.com/roomcraft/referral/internal/app"
	"github.com/roomcraft/referral/internal/config"
	"github.com/roomcraft/referral/internal/logger"
	"github.com/roomcraft/referral/internal/pkg/auth"
	"github.com/roomcraft/referral/internal/server/http/handlers"
	"github.com/roomcraft/referral/internal/server/http/router"
	"github.com/roomcraft/referral/internal/storage/postgres"
	"github.com/roomcraft/referral/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(f *app.ReferralFacade) handlers.ReferralFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
