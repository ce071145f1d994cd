package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/oaiiae/contactbook/datastores"
	"github.com/oaiiae/contactbook/handlers"
	"github.com/oaiiae/contactbook/router"
)

type ServerOptions struct {
	Host              string        `short:"H" doc:"host to listen on"                    default:""`
	Port              string        `short:"p" doc:"port to listen on"                    default:"3000"`
	ReadHeaderTimeout time.Duration `          doc:"time allowed to read request headers" default:"15s"`
}

func NewServer(options *ServerOptions, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              options.Host + ":" + options.Port,
		ReadHeaderTimeout: options.ReadHeaderTimeout,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

type RouterOptions struct {
	EndpointsPrefix string `doc:"mount endpoints at a prefix"         default:"/api"`
	Seed            bool   `doc:"preload sample contacts and groups" default:"true"`
}

// Stores are the datastores served by the router.
type Stores struct {
	Contacts datastores.ContactsStore
	Groups   datastores.GroupsStore
}

// NewStores returns in-memory stores, preloaded with sample data if seed is set.
func NewStores(seed bool) Stores {
	if !seed {
		return Stores{
			Contacts: datastores.NewContactsInmem(),
			Groups:   datastores.NewGroupsInmem(),
		}
	}
	return Stores{
		Contacts: datastores.NewContactsInmem(
			&datastores.Contact{
				Firstname: "john", Lastname: "smith",
				Country: "USA", City: "Springfield", Phone: "5550100",
				Email:  "john.smith@example.com",
				Groups: []datastores.GroupRef{{ID: 1, Name: "family"}},
			},
			&datastores.Contact{
				Firstname: "jane", Lastname: "doe",
				Country: "UK", City: "London", Phone: "2079460000",
				Groups: []datastores.GroupRef{{ID: 2, Name: "work"}},
			},
		),
		Groups: datastores.NewGroupsInmem(
			&datastores.Group{Name: "family"},
			&datastores.Group{Name: "work"},
		),
	}
}

func NewRouter(
	options *RouterOptions,
	stores Stores,
	title string,
	version string,
	revision string,
	created string,
	logger *slog.Logger,
) http.Handler {
	buildinfoMetric := joinQuote("build_info{goversion=", runtime.Version(),
		",title=", title,
		",version=", version,
		",revision=", revision,
		",created=", created,
		"} 1\n")
	metriks := metrics.NewSet()
	errorHandler := ctxlog{}.errorHandler(logger)
	return router.New(title, version,
		func(_ http.ResponseWriter, _ *http.Request) {},
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, buildinfoMetric)
			metriks.WritePrometheus(w)
			metrics.WriteProcessMetrics(w)
		},
		router.OptUseMiddleware(
			ctxlog{}.loggerMiddleware(logger),
			meterRequests(metriks),
			ctxlog{}.recoverMiddleware(logger),
		),
		router.OptGroup(options.EndpointsPrefix,
			router.OptAutoRegister(&handlers.Contacts{Store: stores.Contacts, ErrorHandler: errorHandler}),
			router.OptAutoRegister(&handlers.Groups{Store: stores.Groups, ErrorHandler: errorHandler}),
		),
	)
}

// ctxlog is a [context.Context] key and acts as a virtual package for operations related to it.
type ctxlog struct{}

// loggerMiddleware returns a middleware that sets a [slog.Logger] in
// the [context.Context] and logs the request after it has terminated.
// Requests without an X-Request-Id header are given one.
func (key ctxlog) loggerMiddleware(parent *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetHeader("X-Request-Id", requestID)
		logger := parent.With("x-request-id", requestID)

		start := time.Now()
		next(huma.WithValue(ctx, key, logger.WithGroup("op").With("id", ctx.Operation().OperationID)))

		logger.LogAttrs(context.Background(), slog.LevelInfo,
			joinSpace(ctx.Operation().Method, ctx.Operation().Path, ctx.Version().Proto),
			slog.String("from", ctx.RemoteAddr()),
			slog.String("ua", ctx.Header("User-Agent")),
			slog.Int("status", ctx.Status()),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

// recoverMiddleware returns a middleware that recovers and logs the value from panic.
// Also sets status response to [http.StatusInternalServerError].
func (key ctxlog) recoverMiddleware(fallback *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			v := recover()
			if v != nil {
				logger, ok := ctx.Context().Value(key).(*slog.Logger)
				if !ok {
					logger = fallback
				}
				logger.LogAttrs(context.Background(), slog.LevelError, "panic occurred", slog.Any("recovered", v))
				ctx.SetStatus(http.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

// errorHandler returns a function that gets the [slog.Logger] from [context.Context] and logs the error.
func (key ctxlog) errorHandler(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			level = statusLevel(statusErr.GetStatus())
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
		}

		logger, ok := ctx.Value(key).(*slog.Logger)
		if !ok {
			logger = fallback
		}
		logger.LogAttrs(context.Background(), level, "error occurred", attrs...)
	}
}

func statusLevel(status int) slog.Level {
	switch status / 100 {
	case 4: //nolint: mnd // 4XX HTTP Status Codes
		return slog.LevelWarn
	case 3: //nolint: mnd // 3XX HTTP Status Codes
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}

func meterRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	type ref struct {
		*metrics.Counter
		*metrics.PrometheusHistogram
	}

	refs := sync.Map{}
	refsMu := sync.Mutex{}
	buckets := metrics.ExponentialBuckets(1e-3, 5, 6) //nolint: mnd // arbitrary

	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		uid := op.OperationID + http.StatusText(ctx.Status())
		val, ok := refs.Load(uid)
		if !ok {
			refsMu.Lock()
			val, ok = refs.Load(uid)
			if !ok {
				labels := joinQuote("{method=", op.Method, ",path=", op.Path, ",status=", strconv.Itoa(ctx.Status()), "}") //nolint: golines
				val = ref{
					set.NewCounter("http_requests_total" + labels),
					set.NewPrometheusHistogramExt("http_request_duration_seconds"+labels, buckets),
				}
				refs.Store(uid, val)
			}
			refsMu.Unlock()
		}
		valref := val.(ref) //nolint: errcheck // always true
		valref.Counter.Inc()
		valref.PrometheusHistogram.UpdateDuration(start)
	}
}

// joinQuote is [strings.Join] with " as separator.
func joinQuote(elems ...string) string { return strings.Join(elems, `"`) }

// joinSpace is [strings.Join] with space as separator.
func joinSpace(elems ...string) string { return strings.Join(elems, ` `) }
