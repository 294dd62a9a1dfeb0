package echomw

import (
	"errors"
	"log/slog"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// Logger logs every request with slog. Requests rejected by ValidateRequest
// are logged at warn level together with the failing fields.
func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	o := defaultOpt()
	for _, opt := range opts {
		opt(&o)
	}

	return middleware.RequestLoggerWithConfig(o)
}

func defaultOpt() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()

			var ve *apperr.ValidationError
			switch {
			case v.Error == nil:
				slog.LogAttrs(ctx, slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
				)
			case errors.As(v.Error, &ve):
				slog.LogAttrs(ctx, slog.LevelWarn, "REQUEST_INVALID",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Any("fields", fieldNames(ve.Errors)),
				)
			default:
				slog.LogAttrs(ctx, slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	}
}

func fieldNames(errs []apperr.FieldError) []string {
	names := make([]string, len(errs))
	for i, fe := range errs {
		names[i] = fe.Field
	}
	return names
}
