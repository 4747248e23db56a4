package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// TransportDefaults are the starting coefficient values applied to every
// new transport_settings record. Porter and truck coefficients are Rs per
// kg per kosh; tractor coefficients are Rs per kg per km. Distances start
// at zero so a fresh project accrues no transport cost until configured.
var TransportDefaults = map[string]any{
	"transport_mode":              "TRUCK",
	"metalled_km":                 0.0,
	"gravelled_km":                0.0,
	"porter_km":                   0.0,
	"porter_easy":                 1.80,
	"porter_difficult":            2.30,
	"porter_vdifficult":           2.90,
	"porter_high_volume":          1.50,
	"truck_metalled_easy":         0.020,
	"truck_metalled_difficult":    0.026,
	"truck_metalled_vdifficult":   0.032,
	"truck_metalled_high_volume":  0.016,
	"truck_gravelled_easy":        0.030,
	"truck_gravelled_difficult":   0.039,
	"truck_gravelled_vdifficult":  0.048,
	"truck_gravelled_high_volume": 0.024,
	"tractor_metalled":            0.012,
	"tractor_gravelled":           0.018,
}

// EnsureTransportSettings returns the project's transport_settings record,
// creating one with TransportDefaults if none exists yet.
func EnsureTransportSettings(app core.App, projectID string) (*core.Record, error) {
	settingsCol, err := app.FindCollectionByNameOrId("transport_settings")
	if err != nil {
		return nil, fmt.Errorf("transport settings: could not find collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(
		settingsCol,
		"project = {:projectId}",
		"", 1, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("transport settings: could not query for project %s: %w", projectID, err)
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	record := core.NewRecord(settingsCol)
	record.Set("project", projectID)
	for field, value := range TransportDefaults {
		record.Set(field, value)
	}
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("transport settings: could not create defaults for project %s: %w", projectID, err)
	}
	return record, nil
}

// MigrateTransportDefaults backfills a transport_settings record for every
// project that does not have one. Safe to call on every startup.
func MigrateTransportDefaults(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	settingsCol, err := app.FindCollectionByNameOrId("transport_settings")
	if err != nil {
		return fmt.Errorf("migrate: could not find transport_settings collection: %w", err)
	}

	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query projects: %w", err)
	}

	created := 0
	for _, project := range projects {
		existing, err := app.FindRecordsByFilter(
			settingsCol,
			"project = {:projectId}",
			"", 1, 0,
			map[string]any{"projectId": project.Id},
		)
		if err != nil {
			return fmt.Errorf("migrate: could not query transport settings for project %s: %w", project.Id, err)
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := EnsureTransportSettings(app, project.Id); err != nil {
			log.Printf("migrate: failed to backfill transport settings for project %q (%s): %v\n",
				project.GetString("name"), project.Id, err)
			continue
		}
		created++
	}

	if created > 0 {
		log.Printf("migrate: backfilled transport settings for %d project(s)\n", created)
	}
	return nil
}
