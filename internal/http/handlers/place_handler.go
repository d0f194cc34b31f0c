// Place HTTP handlers.
//
// This file exposes REST endpoints for place resolution and imports:
//   - POST   /places/preview   (resolve a query, store nothing)
//   - POST   /places/import    (resolve and store the selected fields)
//   - GET    /places           (list imports, paginated, ETag support)
//   - GET    /places/{id}      (one import)
//   - DELETE /places/{id}      (remove an import)
//
// Handlers are transport-thin: they bind input, call the place service and
// translate results into HTTP responses.
//
// Idempotency:
// If the client supplies an Idempotency-Key on import and a previous import
// with that key exists for the user, the stored record is returned with
// `Idempotency-Replayed: true` and nothing is resolved again.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-places-backend/internal/domain"
	"github.com/tbourn/go-places-backend/internal/http/middleware"
	"github.com/tbourn/go-places-backend/internal/services"
	"github.com/tbourn/go-places-backend/internal/utils"
)

//
// Service contract
//

// PlaceService is the application surface the handlers depend on.
// Implementations must be safe for concurrent use and honor ctx.
type PlaceService interface {
	Preview(ctx context.Context, userID, query string) (*domain.NormalizedPlace, error)
	Import(ctx context.Context, userID string, in services.ImportInput) (*domain.ImportedPlace, error)
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.ImportedPlace, int64, error)
	Stats(ctx context.Context, userID string) (int64, *time.Time, error)
	Get(ctx context.Context, userID, id string) (*domain.ImportedPlace, error)
	Delete(ctx context.Context, userID, id string) error
	Replay(ctx context.Context, userID, key string) (*domain.ImportedPlace, bool)
	Remember(ctx context.Context, userID, key, placeID string, status int)
}

//
// Handler wiring
//

// Handlers groups the place endpoints.
type Handlers struct {
	places PlaceService
}

// New constructs Handlers bound to svc.
func New(svc PlaceService) *Handlers {
	return &Handlers{places: svc}
}

// userID returns the identity set by the auth middleware, else the demo
// user. Request headers are never consulted here.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return middleware.DefaultUserID
}

//
// DTOs
//

// PreviewRequest is the JSON payload for a preview.
type PreviewRequest struct {
	// Query is a place name, an address or a Google Maps link.
	Query string `json:"query" example:"https://maps.app.goo.gl/xyz"`
}

// ImportRequest is the JSON payload for an import.
type ImportRequest struct {
	// Query is a place name, an address or a Google Maps link.
	Query string `json:"query" example:"Café Central, Wien"`
	// Fields selects what to store. Empty stores everything.
	Fields []string `json:"fields,omitempty" example:"address,website,rating"`
	// City overrides the resolved locality.
	City string `json:"city,omitempty" example:"Wien"`
}

// DuplicateImportResponse is returned with 409 and carries the existing import.
type DuplicateImportResponse struct {
	ErrorResponse
	Place *domain.ImportedPlace `json:"place,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListPlacesResponse wraps a page of imports and pagination information.
type ListPlacesResponse struct {
	Places     []domain.ImportedPlace `json:"places"`
	Pagination Pagination             `json:"pagination"`
}

//
// Handlers
//

// PreviewPlace godoc
// @ID          previewPlace
// @Summary     Resolve a place without storing it
// @Description Accepts a place name, a street address or a Google Maps link and returns the normalized place.
// @Description Counts against the caller's resolution quota.
// @Tags        Places
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (only without a token verifier)"  example(user123)
// @Param       body       body    handlers.PreviewRequest  true  "Query"
//
// @Success     200  {object}  domain.NormalizedPlace
// @Failure     400  {object}  handlers.ErrorResponse  "invalid_input"
// @Failure     404  {object}  handlers.ErrorResponse  "place_not_found"
// @Failure     429  {object}  handlers.ErrorResponse  "rate_limited"
// @Failure     502  {object}  handlers.ErrorResponse  "provider_error"
// @Failure     503  {object}  handlers.ErrorResponse  "unconfigured"
// @Router      /places/preview [post]
func (h *Handlers) PreviewPlace(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	np, err := h.places.Preview(c.Request.Context(), userID(c), req.Query)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, np)
}

// ImportPlace godoc
// @ID          importPlace
// @Summary     Resolve and store a place
// @Description Resolves the query and stores the selected fields for the caller.
// @Description Importing the same place twice answers 409 with the existing record.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Places
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (only without a token verifier)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.ImportRequest  true  "Import payload"
//
// @Success     201  {object}  domain.ImportedPlace
// @Success     200  {object}  domain.ImportedPlace  "Replayed import"
// @Header      200  {string}  Idempotency-Replayed  "true on replay"
// @Failure     400  {object}  handlers.ErrorResponse  "invalid_input or unknown_field"
// @Failure     404  {object}  handlers.ErrorResponse  "place_not_found"
// @Failure     409  {object}  handlers.DuplicateImportResponse  "already_imported"
// @Failure     429  {object}  handlers.ErrorResponse  "rate_limited"
// @Failure     502  {object}  handlers.ErrorResponse  "provider_error"
// @Failure     503  {object}  handlers.ErrorResponse  "unconfigured"
// @Router      /places/import [post]
func (h *Handlers) ImportPlace(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" {
		if prev, found := h.places.Replay(ctx, uid, idemKey); found {
			c.Header("Idempotency-Replayed", "true")
			ok(c, http.StatusOK, prev)
			return
		}
	}

	p, err := h.places.Import(ctx, uid, services.ImportInput{Query: req.Query, Fields: req.Fields, City: req.City})
	if errors.Is(err, services.ErrAlreadyImported) {
		c.AbortWithStatusJSON(http.StatusConflict, DuplicateImportResponse{
			ErrorResponse: ErrorResponse{
				RequestID: c.Writer.Header().Get("X-Request-ID"),
				Code:      ErrCodeAlreadyImported,
				Message:   "this place is already in your list",
			},
			Place: p,
		})
		return
	}
	if err != nil {
		failErr(c, err, ErrCodeImportFailed)
		return
	}

	if idemKey != "" {
		h.places.Remember(ctx, uid, idemKey, p.ID, http.StatusCreated)
	}
	ok(c, http.StatusCreated, p)
}

// ListPlaces godoc
// @ID          listPlaces
// @Summary     List imported places (paginated)
// @Description Returns a page of the caller's imports, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Places
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (only without a token verifier)"  example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"       example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                       minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"                    minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListPlacesResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /places [get]
func (h *Handlers) ListPlaces(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	pg := utils.ParsePage(c.Query("page"), c.Query("page_size"), 20, 100)

	// ETag pre-check (best effort).
	if count, maxTS, err := h.places.Stats(ctx, uid); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := fmt.Sprintf(`W/"places:%s:%d:%d:%d:%d"`, uid, count, ts, pg.Number, pg.Size)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.places.ListPage(ctx, uid, pg.Number, pg.Size)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	totalPages := utils.TotalPages(total, pg.Size)
	ok(c, http.StatusOK, ListPlacesResponse{
		Places: items,
		Pagination: Pagination{
			Page:       pg.Number,
			PageSize:   pg.Size,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    pg.Number < totalPages,
		},
	})
}

// GetPlace godoc
// @ID          getPlace
// @Summary     Get an imported place
// @Tags        Places
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (only without a token verifier)"  example(user123)
// @Param       id         path    string  true  "Import ID (UUID)"                 format(uuid)
//
// @Success     200  {object}  domain.ImportedPlace
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /places/{id} [get]
func (h *Handlers) GetPlace(c *gin.Context) {
	id, valid := placeID(c)
	if !valid {
		return
	}
	p, err := h.places.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePlace godoc
// @ID          deletePlace
// @Summary     Delete an imported place
// @Description Removes the import. The same place can be imported again afterwards.
// @Tags        Places
//
// @Param       X-User-ID  header  string  false "User ID (only without a token verifier)"  example(user123)
// @Param       id         path    string  true  "Import ID (UUID)"                 format(uuid)
//
// @Success     204  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /places/{id} [delete]
func (h *Handlers) DeletePlace(c *gin.Context) {
	id, valid := placeID(c)
	if !valid {
		return
	}
	if err := h.places.Delete(c.Request.Context(), userID(c), id); err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}

// placeID validates the :id path parameter and answers 400 when it is not
// a UUID.
func placeID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a UUID")
		return "", false
	}
	return id, true
}
