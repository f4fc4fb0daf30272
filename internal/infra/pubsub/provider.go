package pubsub

import (
	"context"
	"log/slog"

	"tracker/config"
	"tracker/internal/domain/constants"
	"tracker/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// DelivererParams holds dependencies for OTPDeliverer, injected by Fx
type DelivererParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewOTPDeliverer picks the delivery channel from configuration.
func NewOTPDeliverer(params DelivererParams) (service.OTPDeliverer, error) {
	deliverer, err := newDeliverer(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing OTP deliverer")

			return deliverer.Close()
		},
	})

	return deliverer, nil
}

func newDeliverer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.OTPDeliverer, error) {
	if cfg.OTP.Delivery != config.OTPDeliveryPubSub {
		logger.Warn("OTP delivery writes passcodes to the log")

		return NewLogDeliverer(logger), nil
	}

	pubsubCfg := cfg.PubSub
	if pubsubCfg == nil {
		return nil, errors.New("pubsub configuration is required for pubsub OTP delivery")
	}

	switch pubsubCfg.Provider {
	case constants.PubSubProviderLocal:
		if pubsubCfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for OTP delivery",
			slog.String("endpoint", pubsubCfg.LocalEndpoint),
		)

		return NewLocalHTTPPublisher(pubsubCfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if pubsubCfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if pubsubCfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}

		var opts []option.ClientOption
		if pubsubCfg.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(pubsubCfg.CredentialsPath))
		}

		return NewGooglePubSubPublisher(ctx, pubsubCfg.ProjectID, pubsubCfg.TopicID, logger, opts...)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", pubsubCfg.Provider)
	}
}

// Module provides the OTP delivery FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewOTPDeliverer),
)
