package application

import (
	"context"

	"pdfpress/internal/config"
	"pdfpress/internal/container"
	"pdfpress/internal/database"
	"pdfpress/internal/transport"
)

type App struct {
	ctx       context.Context
	container *container.Container
	wailsApp  *transport.WailsApp
	config    *config.Config
}

func NewApp() *App {
	return &App{}
}

func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	cfg := config.New()
	a.config = cfg

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		cfg.Logger.Error("Failed to initialize database", "error", err)
		return
	}

	a.container = container.New(ctx, cfg, db)

	a.wailsApp = transport.NewWailsApp(
		ctx,
		a.container.GetCompressionService(),
		a.container.GetPreferencesRepository(),
		a.container.GetStatisticsService(),
		cfg.WorkingDir,
	)

	cfg.Logger.Info("Application initialized",
		"working_directory", cfg.WorkingDir,
		"database_path", cfg.DatabasePath,
		"rounds", cfg.Rounds)
}

func (a *App) CompressPDF(request transport.CompressionRequest) transport.CompressionResponse {
	return a.wailsApp.CompressPDF(request)
}

func (a *App) ProcessFileData(fileData []transport.FileUpload) transport.CompressionResponse {
	return a.wailsApp.ProcessFileData(fileData)
}

func (a *App) CompressImage(upload transport.FileUpload, level int, targetFormat string) transport.ImageCompressionResponse {
	return a.wailsApp.CompressImage(upload, level, targetFormat)
}

func (a *App) GetPreferences() (map[string]interface{}, error) {
	prefs, err := a.wailsApp.GetPreferences()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"default_download_folder":   prefs.DefaultDownloadFolder,
		"default_compression_level": prefs.DefaultCompressionLevel,
		"auto_download_enabled":     prefs.AutoDownloadEnabled,
		"preferred_image_format":    prefs.PreferredImageFormat,
		"advanced_options_expanded": prefs.AdvancedOptionsExpanded,
	}, nil
}

func (a *App) UpdatePreferences(data map[string]interface{}) error {
	return a.wailsApp.UpdatePreferences(data)
}

func (a *App) OpenFileDialog() ([]string, error) {
	return a.wailsApp.OpenFileDialog()
}

func (a *App) OpenDirectoryDialog() (string, error) {
	return a.wailsApp.OpenDirectoryDialog()
}

func (a *App) ShowSaveDialog(filename string) (string, error) {
	return a.wailsApp.ShowSaveDialog(filename)
}

func (a *App) OpenFile(filePath string) error {
	return a.wailsApp.OpenFile(filePath)
}

func (a *App) GetAppStatus() map[string]interface{} {
	return a.wailsApp.GetAppStatus()
}

func (a *App) GetStats() *transport.AppStats {
	return a.wailsApp.GetStats()
}
