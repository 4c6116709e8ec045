// internal/handlers/movie.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/medialicense-backend/internal/services"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

type MovieHandler struct {
	movieService *services.MovieService
	sceneService *services.SceneService
}

func NewMovieHandler(movieService *services.MovieService, sceneService *services.SceneService) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		sceneService: sceneService,
	}
}

// POST /movies
func (h *MovieHandler) Create(c *gin.Context) {
	var req services.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	movie, err := h.movieService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"movie": movie})
}

// GET /movies
func (h *MovieHandler) List(c *gin.Context) {
	movies, err := h.movieService.FindAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"movies": movies})
}

// GET /movies/:id
func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	movie, err := h.movieService.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"movie": movie})
}

// GET /movies/:id/scenes
func (h *MovieHandler) ListScenes(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.movieService.FindOne(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	scenes, err := h.sceneService.FindByMovie(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"scenes": scenes})
}

// PUT /movies/:id
func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	movie, err := h.movieService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"movie": movie})
}

// DELETE /movies/:id
func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.movieService.Remove(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
