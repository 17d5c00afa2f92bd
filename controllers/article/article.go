package controllers

import (
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"

	"github.com/gofiber/fiber/v2"
)

// GetArticleList returns the published reading library in display order.
func GetArticleList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var articles []models.Article
	if err := database.Database.Db.
		Select("id, title, slug, summary, estimated_minutes, order_index").
		Where("is_deleted = ? AND is_published = ?", false, true).
		Order("order_index asc").Find(&articles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch articles!", nil)
	}

	// Annotate with the caller's progress when they have an active enrollment.
	var enrollment models.Enrollment
	hasEnrollment := database.Database.Db.
		Where("user_id = ? AND is_deleted = ? AND status IN ?", userID, false, []string{models.EnrollmentActive, models.EnrollmentCompleted}).
		Order("created_at desc").First(&enrollment).Error == nil

	type ArticleWithProgress struct {
		models.Article
		SecondsSpent int    `json:"seconds_spent"`
		Progress     string `json:"progress_status"`
	}

	result := make([]ArticleWithProgress, len(articles))
	for i, a := range articles {
		result[i] = ArticleWithProgress{Article: a, Progress: models.ProgressReading}
		if hasEnrollment {
			var progress models.ArticleProgress
			if err := database.Database.Db.Where("enrollment_id = ? AND article_id = ? AND is_deleted = ?", enrollment.ID, a.ID, false).First(&progress).Error; err == nil {
				result[i].SecondsSpent = progress.SecondsSpent
				result[i].Progress = progress.Status
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Articles fetched successfully!", fiber.Map{
		"articles": result,
		"total":    len(result),
	})
}

// GetArticle returns one published article by slug, body included.
func GetArticle(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Params("slug")

	var article models.Article
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article fetched successfully!", article)
}
