package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/collections"
	"github.com/niteshrisal-coder/Norms-Master/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateTransportDefaults(app); err != nil {
			log.Printf("Warning: transport defaults migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Resolve {projectId} once per request for project-scoped routes
		se.Router.BindFunc(handlers.ProjectMiddleware(app))

		// ── Form option lists ────────────────────────────────────
		se.Router.GET("/options", handlers.HandleOptions(app))

		// ── Norms catalog (global) ───────────────────────────────
		se.Router.GET("/norms", handlers.HandleNormList(app))
		se.Router.POST("/norms", handlers.HandleNormCreate(app))
		se.Router.PATCH("/norms/{id}", handlers.HandleNormUpdate(app))
		se.Router.DELETE("/norms/{id}", handlers.HandleNormDelete(app))

		// ── Norm resources ───────────────────────────────────────
		se.Router.POST("/norms/{id}/resources", handlers.HandleResourceAdd(app))
		se.Router.PATCH("/norms/{id}/resources/{resourceId}", handlers.HandleResourceUpdate(app))
		se.Router.DELETE("/norms/{id}/resources/{resourceId}", handlers.HandleResourceDelete(app))

		// ── Rate table (global) ──────────────────────────────────
		se.Router.GET("/rates", handlers.HandleRateList(app))
		se.Router.POST("/rates", handlers.HandleRateCreate(app))
		se.Router.PATCH("/rates/{id}", handlers.HandleRateUpdate(app))
		se.Router.DELETE("/rates/{id}", handlers.HandleRateDelete(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.POST("/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/projects/{projectId}", handlers.HandleProjectView(app))
		se.Router.PATCH("/projects/{projectId}", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/projects/{projectId}", handlers.HandleProjectDelete(app))

		// ── Rate overrides ───────────────────────────────────────
		se.Router.GET("/projects/{projectId}/overrides", handlers.HandleOverrideList(app))
		se.Router.PUT("/projects/{projectId}/overrides", handlers.HandleOverrideUpsert(app))

		// ── Transport settings & material haul profiles ──────────
		se.Router.GET("/projects/{projectId}/transport", handlers.HandleTransportView(app))
		se.Router.PUT("/projects/{projectId}/transport", handlers.HandleTransportSave(app))
		se.Router.GET("/projects/{projectId}/materials", handlers.HandleMaterialList(app))
		se.Router.PUT("/projects/{projectId}/materials", handlers.HandleMaterialUpsert(app))
		se.Router.DELETE("/projects/{projectId}/materials/{materialId}", handlers.HandleMaterialDelete(app))

		// ── Bill of quantities ───────────────────────────────────
		se.Router.GET("/projects/{projectId}/boq/summary", handlers.HandleBOQSummary(app))
		se.Router.GET("/projects/{projectId}/boq", handlers.HandleBOQList(app))
		se.Router.POST("/projects/{projectId}/boq", handlers.HandleBOQAdd(app))
		se.Router.PATCH("/projects/{projectId}/boq/{itemId}", handlers.HandleBOQPatch(app))
		se.Router.DELETE("/projects/{projectId}/boq/{itemId}", handlers.HandleBOQDelete(app))

		// ── Rate analysis ────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/norms/{normId}/analysis", handlers.HandleNormAnalysis(app))
		se.Router.GET("/projects/{projectId}/norms/{normId}/analysis/pdf", handlers.HandleAnalysisExportPDF(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/export/excel", handlers.HandleBreakdownExportExcel(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
