package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/internal/config"
	"github.com/dcbc/crewboard/pkg/clients/sheetsclient"
	"github.com/dcbc/crewboard/pkg/core/calendar"
	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Env      string
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context

	// SheetsClient authenticates on first use, so commands that never touch
	// Google Sheets never start an OAuth flow
	SheetsClient func() (*sheetsclient.Client, error)
}

// CalendarFilter returns the visibility filter for the configured privileged tags
func (a *AppContext) CalendarFilter() calendar.Filter {
	return calendar.NewFilter(model.NewSet(a.Cfg.PrivilegedTags...))
}
