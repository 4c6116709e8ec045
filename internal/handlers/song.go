// internal/handlers/song.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/medialicense-backend/internal/services"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

type SongHandler struct {
	songService *services.SongService
}

func NewSongHandler(songService *services.SongService) *SongHandler {
	return &SongHandler{
		songService: songService,
	}
}

// POST /songs
func (h *SongHandler) Create(c *gin.Context) {
	var req services.CreateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	song, err := h.songService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"song": song})
}

// GET /songs
func (h *SongHandler) List(c *gin.Context) {
	songs, err := h.songService.FindAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"songs": songs})
}

// GET /songs/:id
func (h *SongHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	song, err := h.songService.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"song": song})
}

// PUT /songs/:id
func (h *SongHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	song, err := h.songService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"song": song})
}

// DELETE /songs/:id
func (h *SongHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.songService.Remove(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
