package controllers

import (
	"agendador-backend/config"
	"agendador-backend/models"
	"agendador-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Slug  *string `json:"slug"`
}

func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"slug":  user.Slug,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Slug != nil {
		if !utils.IsValidSlug(*input.Slug) {
			utils.RespondWithError(c, http.StatusBadRequest, "Slug must be lowercase letters, digits and hyphens")
			return
		}
		var taken int64
		config.DB.Model(&models.User{}).Where("slug = ? AND id <> ?", *input.Slug, user.ID).Count(&taken)
		if taken > 0 {
			utils.RespondWithError(c, http.StatusConflict, "Slug already in use")
			return
		}
		user.Slug = *input.Slug
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
