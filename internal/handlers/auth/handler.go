package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travelbook/infras/otel"
	"travelbook/internal/domains/user/service"
	"travelbook/shared/constant"
	"travelbook/shared/failure"
	"travelbook/transport/http/middleware"
	"travelbook/transport/http/response"
)

type Handler struct {
	service service.User
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.User, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Get("/user", handler.GetCurrentUser)
	})
}

// GetCurrentUser returns the authenticated user's profile, refreshing the
// stored projection from the token claims.
func (handler *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCurrentUser")
	defer scope.End()

	claims := handler.auth.ClaimsFromContext(ctx)
	if claims == nil {
		err := failure.Unauthorized("authentication required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	user, err := handler.service.GetOrCreate(ctx, claims)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Current user retrieved successfully")

	response.WithJSON(w, http.StatusOK, user)
}
