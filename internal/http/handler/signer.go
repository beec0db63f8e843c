package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"esignapi/internal/model"
	"esignapi/internal/service"
)

// ListSigners returns a document's signers in signing order.
func ListSigners(svc service.SignerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		signers, err := svc.ListByDocument(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": signers})
	}
}

// CreateSigner adds a signer to a document.
func CreateSigner(svc service.SignerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var sg model.Signer
		if err := c.BodyParser(&sg); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		sg.DocumentID = id
		out, err := svc.Create(c.UserContext(), &sg)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// UpdateSigner edits a signer's email, name, role, order, or color.
func UpdateSigner(svc service.SignerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		signerID, ok := parseID(c, "signerId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid signer id format")
		}
		var sg model.Signer
		if err := c.BodyParser(&sg); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		sg.ID = signerID
		sg.DocumentID = id
		out, err := svc.Update(c.UserContext(), &sg)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// signerStatusRequest is the body for a status transition.
type signerStatusRequest struct {
	Status model.SignerStatus `json:"status"`
}

// UpdateSignerStatus advances a signer through the signing flow.
func UpdateSignerStatus(svc service.SignerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseID(c, "id"); !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		signerID, ok := parseID(c, "signerId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid signer id format")
		}
		var req signerStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		out, err := svc.UpdateStatus(c.UserContext(), signerID, req.Status)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteSigner removes a signer; their placed fields become unassigned.
func DeleteSigner(svc service.SignerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseID(c, "id"); !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		signerID, ok := parseID(c, "signerId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid signer id format")
		}
		if err := svc.Delete(c.UserContext(), signerID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetSignerFields returns the signer's own fields for one page, applying
// conditional visibility. This is the signer-facing page view.
func GetSignerFields(svc service.SigningService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		signerID, ok := parseID(c, "signerId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid signer id format")
		}
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page number")
		}
		fields, err := svc.FieldsForPage(c.UserContext(), id, signerID, page)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": fields})
	}
}

// submitValuesRequest maps field IDs to filled values. Signature values are
// data URIs stored verbatim.
type submitValuesRequest struct {
	Values map[string]string `json:"values"`
}

// SubmitSignerValues stores a signer's filled values and marks them
// COMPLETED.
func SubmitSignerValues(svc service.SigningService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		signerID, ok := parseID(c, "signerId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid signer id format")
		}
		var req submitValuesRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		if err := svc.Submit(c.UserContext(), id, signerID, req.Values); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
