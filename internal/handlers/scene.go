// internal/handlers/scene.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/medialicense-backend/internal/services"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

type SceneHandler struct {
	sceneService *services.SceneService
	trackService *services.TrackService
}

func NewSceneHandler(sceneService *services.SceneService, trackService *services.TrackService) *SceneHandler {
	return &SceneHandler{
		sceneService: sceneService,
		trackService: trackService,
	}
}

// POST /scenes
func (h *SceneHandler) Create(c *gin.Context) {
	var req services.CreateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	scene, err := h.sceneService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"scene": scene})
}

// GET /scenes
func (h *SceneHandler) List(c *gin.Context) {
	scenes, err := h.sceneService.FindAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"scenes": scenes})
}

// GET /scenes/:id
func (h *SceneHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	scene, err := h.sceneService.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"scene": scene})
}

// GET /scenes/:id/tracks
func (h *SceneHandler) ListTracks(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.sceneService.FindOne(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	tracks, err := h.trackService.FindByScene(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"tracks": tracks})
}

// PUT /scenes/:id
func (h *SceneHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	scene, err := h.sceneService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"scene": scene})
}

// DELETE /scenes/:id
func (h *SceneHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.sceneService.Remove(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
