package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"esignapi/internal/service"
)

// Services bundles the service layer for route registration.
type Services struct {
	Documents service.DocumentService
	Fields    service.FieldService
	Signers   service.SignerService
	Signing   service.SigningService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(svcs.Documents))
	app.Post("/documents", UploadDocument(svcs.Documents))
	app.Get("/documents/:id", GetDocument(svcs.Documents))
	app.Delete("/documents/:id", DeleteDocument(svcs.Documents))
	app.Get("/documents/:id/download", DownloadDocument(svcs.Documents))
	app.Get("/documents/:id/pages", GetDocumentPages(svcs.Documents))
	app.Patch("/documents/:id/send-options", UpdateSendOptions(svcs.Documents))

	app.Get("/documents/:id/fields", ListFields(svcs.Fields))
	app.Post("/documents/:id/fields", CreateField(svcs.Fields))
	app.Put("/documents/:id/fields", ReplaceFields(svcs.Fields))
	app.Put("/documents/:id/fields/:fieldId", UpdateField(svcs.Fields))
	app.Delete("/documents/:id/fields/:fieldId", DeleteField(svcs.Fields))

	app.Get("/documents/:id/signers", ListSigners(svcs.Signers))
	app.Post("/documents/:id/signers", CreateSigner(svcs.Signers))
	app.Put("/documents/:id/signers/:signerId", UpdateSigner(svcs.Signers))
	app.Patch("/documents/:id/signers/:signerId/status", UpdateSignerStatus(svcs.Signers))
	app.Delete("/documents/:id/signers/:signerId", DeleteSigner(svcs.Signers))

	app.Get("/documents/:id/signers/:signerId/fields", GetSignerFields(svcs.Signing))
	app.Post("/documents/:id/signers/:signerId/submit", SubmitSignerValues(svcs.Signing))
}
