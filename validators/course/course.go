package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string `json:"title"`
			Description      string `json:"description"`
			WhatYouWillLearn string `json:"whatYouWillLearn"`
			Thumbnail        string `json:"thumbnail"`
			Price            uint   `json:"price"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		} else if len(strings.TrimSpace(reqData.Description)) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		// Validate Price
		if reqData.Price == 0 {
			errors["price"] = "Price is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page" query:"page"`
			Limit *int `json:"limit" query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter and stores it as uint
func CourseID() fiber.Handler {
	return paramID("id", "courseID", "Course")
}

// SectionID validates the :section_id route parameter
func SectionID() fiber.Handler {
	return paramID("section_id", "sectionID", "Section")
}

// SubSectionID validates the :sub_section_id route parameter
func SubSectionID() fiber.Handler {
	return paramID("sub_section_id", "subSectionID", "Sub-section")
}

func paramID(param, local, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}

		c.Locals(local, uint(id))
		return c.Next()
	}
}

func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Position int    `json:"position"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Name) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Section name is required!"})
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

func CreateSubSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Duration    int64  `json:"duration"`
			VideoURL    string `json:"videoUrl"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubSection", reqData)
		return c.Next()
	}
}
