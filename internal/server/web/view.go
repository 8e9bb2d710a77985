package web

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/dataset"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
)

const (
	previewRows = 5

	msgBackgroundMissing = "Background image not found."
	msgDatasetFailed     = "Could not load the dataset."
)

// View is everything a template needs to draw one screen.
type View struct {
	Screen        models.Page
	User          string
	AuthMode      models.AuthMode
	Flashes       []models.Flash
	BackgroundURL string
	EmbedURL      string

	// Query carries the current filter selection ("?..." or empty) so that
	// main-screen forms come back to the same view.
	Query string

	Chat         *ChatView
	Dataset      *DatasetView
	DatasetError string
}

type ChatView struct {
	Input string
	Reply string
}

type StationOption struct {
	ID       string
	Selected bool
}

type DatasetView struct {
	Columns  []string
	Preview  [][]string
	Stations []StationOption

	Start  string
	End    string
	MinAQI string
	MaxAQI string

	MinDate  string
	MaxDate  string
	AQIFloor string
	AQICeil  string

	Rows     [][]string
	RowCount int
}

// renderInput is the state a render depends on, gathered by the handler.
type renderInput struct {
	Session       models.Session
	Flashes       []models.Flash
	ChatInput     string
	ChatReply     string
	HasBackground bool
	EmbedURL      string

	Table       *dataset.Table
	LoadErr     error
	DatasetPath string
	Query       url.Values
}

// buildView maps render state to a View. It performs no I/O.
func buildView(in renderInput) View {
	v := View{
		Screen:   in.Session.Screen(),
		User:     in.Session.User,
		AuthMode: in.Session.AuthMode,
		EmbedURL: in.EmbedURL,
	}

	if v.AuthMode != models.AuthModeLogin {
		v.AuthMode = models.AuthModeSignup
	}

	if in.HasBackground {
		v.BackgroundURL = "/assets/background"
	} else {
		v.Flashes = append(v.Flashes, models.Flash{Level: models.FlashWarning, Text: msgBackgroundMissing})
	}
	v.Flashes = append(v.Flashes, in.Flashes...)

	if v.Screen != models.PageMain {
		return v
	}

	v.Chat = &ChatView{Input: in.ChatInput, Reply: in.ChatReply}

	if in.LoadErr != nil {
		v.DatasetError = datasetErrorMessage(in.LoadErr, in.DatasetPath)
		return v
	}
	if in.Table == nil {
		return v
	}

	bounds := dataset.ComputeBounds(in.Table)
	criteria := dataset.ParseCriteria(in.Query, bounds)
	filtered := dataset.Filter(in.Table, criteria)

	if len(in.Query) > 0 {
		v.Query = "?" + criteria.Query().Encode()
	}

	dv := &DatasetView{
		Columns:  in.Table.Columns,
		Start:    formatDay(criteria.Start),
		End:      formatDay(criteria.End),
		MinAQI:   dataset.FormatAQI(criteria.MinAQI),
		MaxAQI:   dataset.FormatAQI(criteria.MaxAQI),
		AQIFloor: dataset.FormatAQI(bounds.MinAQI),
		AQICeil:  dataset.FormatAQI(bounds.MaxAQI),
		RowCount: filtered.Len(),
	}
	if bounds.HasDates {
		dv.MinDate = formatDay(bounds.MinDate)
		dv.MaxDate = formatDay(bounds.MaxDate)
	}

	for _, r := range in.Table.Head(previewRows) {
		dv.Preview = append(dv.Preview, r.Values)
	}

	dv.Stations = append(dv.Stations, StationOption{
		ID:       common.SelectAllStations,
		Selected: criteria.AllStations,
	})
	for _, id := range in.Table.StationIDs() {
		dv.Stations = append(dv.Stations, StationOption{ID: id, Selected: criteria.Selected(id)})
	}

	for _, r := range filtered.Rows {
		dv.Rows = append(dv.Rows, r.Values)
	}

	v.Dataset = dv
	return v
}

func formatDay(t time.Time) string {
	return t.Format(dataset.DateLayout)
}

func datasetErrorMessage(err error, path string) string {
	switch {
	case errors.Is(err, common.ErrFileNotFound):
		return fmt.Sprintf("Excel file not found: %s", path)
	case errors.Is(err, common.ErrMissingColumn):
		return fmt.Sprintf("Invalid dataset %s: %v", path, err)
	default:
		return msgDatasetFailed
	}
}

// flashFor maps a service error to the message shown to the user.
func flashFor(err error) models.Flash {
	switch {
	case errors.Is(err, common.ErrMissingFormFields):
		return models.Flash{Level: models.FlashWarning, Text: "Please fill out all fields."}
	case errors.Is(err, common.ErrDuplicateEmail):
		return models.Flash{Level: models.FlashError, Text: "Email already registered. Please log in."}
	case errors.Is(err, common.ErrPasswordMismatch):
		return models.Flash{Level: models.FlashError, Text: "Passwords do not match."}
	case errors.Is(err, common.ErrInvalidEmail):
		return models.Flash{Level: models.FlashError, Text: "Please enter a valid email address."}
	case errors.Is(err, common.ErrWeakPassword):
		return models.Flash{Level: models.FlashError, Text: "Password must be at least 8 characters and contain a letter, a digit and a special character."}
	case errors.Is(err, common.ErrUnknownEmail):
		return models.Flash{Level: models.FlashError, Text: "Email not registered. Please sign up first."}
	case errors.Is(err, common.ErrWrongPassword):
		return models.Flash{Level: models.FlashError, Text: "Incorrect password. Please try again."}
	default:
		return models.Flash{Level: models.FlashError, Text: "Something went wrong. Please try again."}
	}
}
