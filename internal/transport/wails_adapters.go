package transport

import (
	"context"

	compressionDomain "pdfpress/internal/domain/compression"
	preferencesDomain "pdfpress/internal/domain/preferences"
	statisticsDomain "pdfpress/internal/domain/statistics"
	"pdfpress/internal/models"
)

type WailsApp struct {
	ctx                context.Context
	compressionService compressionDomain.Service
	preferencesRepo    preferencesDomain.Repository
	statisticsService  statisticsDomain.Service
	workingDir         string
	dialogsHandler     DialogHandler
}

func NewWailsApp(
	ctx context.Context,
	compressionService compressionDomain.Service,
	preferencesRepo preferencesDomain.Repository,
	statisticsService statisticsDomain.Service,
	workingDir string,
) *WailsApp {
	return &WailsApp{
		ctx:                ctx,
		compressionService: compressionService,
		preferencesRepo:    preferencesRepo,
		statisticsService:  statisticsService,
		workingDir:         workingDir,
		dialogsHandler:     NewDialogsHandler(ctx),
	}
}

func (a *WailsApp) CompressPDF(request CompressionRequest) CompressionResponse {
	domainRequest := compressionDomain.CompressionRequest{
		Files:          request.Files,
		Level:          request.Level,
		AutoDownload:   request.AutoDownload,
		DownloadFolder: request.DownloadFolder,
	}

	domainResponse := a.compressionService.CompressPDF(a.ctx, domainRequest)
	return toTransportResponse(domainResponse)
}

func (a *WailsApp) ProcessFileData(fileData []FileUpload) CompressionResponse {
	domainFileData := make([]compressionDomain.FileUpload, len(fileData))
	for i, file := range fileData {
		domainFileData[i] = compressionDomain.FileUpload{
			Name: file.Name,
			Data: file.Data,
			Size: file.Size,
		}
	}

	domainResponse := a.compressionService.ProcessFileData(a.ctx, domainFileData)
	return toTransportResponse(domainResponse)
}

func (a *WailsApp) CompressImage(upload FileUpload, level int, targetFormat string) ImageCompressionResponse {
	result, err := a.compressionService.CompressImage(a.ctx, compressionDomain.FileUpload{
		Name: upload.Name,
		Data: upload.Data,
		Size: upload.Size,
	}, level, targetFormat)
	if err != nil {
		return ImageCompressionResponse{
			Success:      false,
			OriginalSize: upload.Size,
			Error:        err.Error(),
		}
	}

	return ImageCompressionResponse{
		Success:        true,
		Data:           result.Data,
		Format:         result.Format,
		OriginalSize:   result.OriginalSize,
		CompressedSize: result.CompressedSize,
	}
}

func (a *WailsApp) GetPreferences() (*models.UserPreferencesData, error) {
	domainPrefs, err := a.preferencesRepo.GetPreferences()
	if err != nil {
		return nil, err
	}

	return &models.UserPreferencesData{
		DefaultDownloadFolder:   domainPrefs.DefaultDownloadFolder,
		DefaultCompressionLevel: domainPrefs.DefaultCompressionLevel,
		AutoDownloadEnabled:     domainPrefs.AutoDownloadEnabled,
		PreferredImageFormat:    domainPrefs.PreferredImageFormat,
		AdvancedOptionsExpanded: domainPrefs.AdvancedOptionsExpanded,
	}, nil
}

func (a *WailsApp) UpdatePreferences(data map[string]interface{}) error {
	anyData := make(map[string]any, len(data))
	for k, v := range data {
		anyData[k] = v
	}
	return a.preferencesRepo.UpdatePreferences(anyData)
}

func (a *WailsApp) OpenFileDialog() ([]string, error) {
	return a.dialogsHandler.OpenFileDialog()
}

func (a *WailsApp) OpenDirectoryDialog() (string, error) {
	return a.dialogsHandler.OpenDirectoryDialog()
}

func (a *WailsApp) ShowSaveDialog(filename string) (string, error) {
	return a.dialogsHandler.ShowSaveDialog(filename)
}

func (a *WailsApp) OpenFile(filePath string) error {
	return a.dialogsHandler.OpenFile(filePath)
}

func (a *WailsApp) GetAppStatus() map[string]interface{} {
	return a.statisticsService.GetAppStatus(a.workingDir)
}

func (a *WailsApp) GetStats() *AppStats {
	domainStats := a.statisticsService.GetStats()
	return &AppStats{
		TotalFilesCompressed:   domainStats.TotalFilesCompressed,
		TotalDataSaved:         domainStats.TotalDataSaved,
		SessionFilesCompressed: domainStats.SessionFilesCompressed,
		SessionDataSaved:       domainStats.SessionDataSaved,
	}
}

func toTransportResponse(domainResponse compressionDomain.CompressionResponse) CompressionResponse {
	transportFiles := make([]FileResult, len(domainResponse.Files))
	for i, file := range domainResponse.Files {
		transportFiles[i] = FileResult{
			FileID:             file.FileID,
			OriginalFilename:   file.OriginalFilename,
			CompressedFilename: file.CompressedFilename,
			OriginalSize:       file.OriginalSize,
			CompressedSize:     file.CompressedSize,
			CompressionRatio:   file.CompressionRatio,
			Quality:            file.Quality,
			StreamsReplaced:    file.StreamsReplaced,
			CompressedPath:     file.CompressedPath,
			SavedPath:          file.SavedPath,
			Status:             file.Status,
			Error:              file.Error,
		}
	}

	return CompressionResponse{
		Success:                 domainResponse.Success,
		Files:                   transportFiles,
		TotalFiles:              domainResponse.TotalFiles,
		TotalOriginalSize:       domainResponse.TotalOriginalSize,
		TotalCompressedSize:     domainResponse.TotalCompressedSize,
		OverallCompressionRatio: domainResponse.OverallCompressionRatio,
		Level:                   domainResponse.Level,
		AutoDownload:            domainResponse.AutoDownload,
		DownloadPaths:           domainResponse.DownloadPaths,
		Error:                   domainResponse.Error,
	}
}
