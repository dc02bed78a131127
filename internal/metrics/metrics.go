package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/VitaminP8/blogery/models"
)

var (
	// AuthAttempts считает регистрации, входы и выходы по результату
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_auth_attempts_total",
		Help: "Total number of register/login/logout attempts by result",
	}, []string{"operation", "result"})

	// ContentOperations считает операции над постами и комментариями
	ContentOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_content_operations_total",
		Help: "Total number of post and comment operations by result",
	}, []string{"operation", "result"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})
)

var resultLabels = []struct {
	err   error
	label string
}{
	{models.ErrDuplicateEmail, "duplicate_email"},
	{models.ErrNoSuchAccount, "no_such_account"},
	{models.ErrInvalidCredential, "invalid_credential"},
	{models.ErrForbidden, "forbidden"},
	{models.ErrNotFound, "not_found"},
	{models.ErrDuplicateTitle, "duplicate_title"},
	{models.ErrUnauthenticated, "unauthenticated"},
	{models.ErrInvalidComment, "invalid_comment"},
	{models.ErrStoreUnavailable, "store_unavailable"},
}

// Result переводит ошибку в метку с ограниченным набором значений
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range resultLabels {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "error"
}

func Observe(counter *prometheus.CounterVec, operation string, err error) {
	counter.WithLabelValues(operation, Result(err)).Inc()
}

// Middleware считает запросы по шаблону маршрута chi, а не по сырому пути
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
