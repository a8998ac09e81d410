package analyzer

import (
	"time"

	"github.com/nao1215/wikilens/internal/model"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func pageExport(pages ...model.Page) *model.PageExportData {
	return model.NewPageExportData(pages, "2024-05-01T00:00:00Z", "test")
}

func navExport(items ...model.NavigationItem) *model.NavigationExportData {
	return &model.NavigationExportData{
		Tree:       []model.NavigationTree{{Locale: "en", Items: items}},
		ExportedAt: "2024-05-01T00:00:00Z",
	}
}

func link(id model.ID, label, target string, groups ...model.ID) model.NavigationItem {
	return model.NavigationItem{
		ID:               id,
		Kind:             model.NavigationKindLink,
		Label:            label,
		Target:           target,
		VisibilityGroups: groups,
	}
}

func page(id model.ID, path, title string, published bool) model.Page {
	return model.Page{ID: id, Path: path, Title: title, Locale: "en", IsPublished: published}
}
