package handler

import (
	"github.com/gofiber/fiber/v2"

	"esignapi/internal/model"
	"esignapi/internal/service"
)

// ListFields returns all fields placed on a document, in render order.
func ListFields(svc service.FieldService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		fields, err := svc.ListByDocument(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": fields})
	}
}

// CreateField places a single field on a document.
func CreateField(svc service.FieldService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var f model.Field
		if err := c.BodyParser(&f); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		f.DocumentID = id
		out, err := svc.Create(c.UserContext(), &f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// UpdateField replaces one field's attributes and geometry.
func UpdateField(svc service.FieldService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		fieldID, ok := parseID(c, "fieldId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid field id format")
		}
		var f model.Field
		if err := c.BodyParser(&f); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		f.ID = fieldID
		f.DocumentID = id
		out, err := svc.Update(c.UserContext(), &f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// replaceFieldsRequest is the editor's save payload: the full field set as
// the working session holds it.
type replaceFieldsRequest struct {
	Fields []model.Field `json:"fields"`
}

// ReplaceFields swaps a document's entire field set in one transaction.
func ReplaceFields(svc service.FieldService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req replaceFieldsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		out, err := svc.Replace(c.UserContext(), id, req.Fields)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": out})
	}
}

// DeleteField removes one field.
func DeleteField(svc service.FieldService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseID(c, "id"); !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		fieldID, ok := parseID(c, "fieldId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid field id format")
		}
		if err := svc.Delete(c.UserContext(), fieldID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
