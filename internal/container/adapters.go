package container

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"pdfpress/internal/common"
	"pdfpress/internal/config"
	compressionDomain "pdfpress/internal/domain/compression"
	preferencesDomain "pdfpress/internal/domain/preferences"
	statisticsDomain "pdfpress/internal/domain/statistics"
	"pdfpress/internal/models"
	"pdfpress/internal/services"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// PreferencesRepositoryAdapter adapts services.PreferencesService to preferencesDomain.Repository
type PreferencesRepositoryAdapter struct {
	service *services.PreferencesService
}

func (a *PreferencesRepositoryAdapter) GetPreferences() (*preferencesDomain.UserPreferencesData, error) {
	prefs, err := a.service.GetPreferences()
	if err != nil {
		return nil, err
	}

	// Convert service model to domain model
	return &preferencesDomain.UserPreferencesData{
		DefaultDownloadFolder:   prefs.DefaultDownloadFolder,
		DefaultCompressionLevel: prefs.DefaultCompressionLevel,
		AutoDownloadEnabled:     prefs.AutoDownloadEnabled,
		PreferredImageFormat:    prefs.PreferredImageFormat,
		AdvancedOptionsExpanded: prefs.AdvancedOptionsExpanded,
	}, nil
}

func (a *PreferencesRepositoryAdapter) UpdatePreferences(data map[string]any) error {
	return a.service.UpdatePreferences(data)
}

func (a *PreferencesRepositoryAdapter) GetDownloadFolder() (string, error) {
	return a.service.GetDownloadFolder()
}

// CompressionServiceImpl implements the compression domain service
type CompressionServiceImpl struct {
	processor  compressionDomain.DocumentProcessor
	imageProc  compressionDomain.ImageProcessor
	prefsRepo  preferencesDomain.Repository
	stats      *services.StatsService
	statistics statisticsDomain.Service
	config     *config.Config
	ctx        context.Context
}

func (s *CompressionServiceImpl) CompressPDF(ctx context.Context, request compressionDomain.CompressionRequest) compressionDomain.CompressionResponse {
	if len(request.Files) == 0 {
		s.config.Logger.Error("Compression request validation failed", "error", "no files provided")
		return compressionDomain.CompressionResponse{
			Success: false,
			Error:   common.ErrNoFilesProvided.Error(),
		}
	}

	level := s.resolveLevel(request.Level)

	totalFiles := len(request.Files)
	maxConcurrency := runtime.NumCPU()
	if maxConcurrency > common.MaxConcurrencyLimit {
		maxConcurrency = common.MaxConcurrencyLimit
	}

	type fileWork struct {
		ID       string
		FilePath string
	}

	var fileWorkItems []fileWork
	for _, filePath := range request.Files {
		fileWorkItems = append(fileWorkItems, fileWork{
			ID:       common.GenerateUUID(),
			FilePath: filePath,
		})
	}

	workChan := make(chan fileWork, totalFiles)
	resultChan := make(chan *compressionDomain.FileResult, totalFiles)

	for _, work := range fileWorkItems {
		workChan <- work

		wailsruntime.EventsEmit(s.ctx, common.EventFileProgress, compressionDomain.FileProgressUpdate{
			FileID:   work.ID,
			Filename: filepath.Base(work.FilePath),
			Status:   "queued",
			Progress: 0,
		})
	}
	close(workChan)

	var wg sync.WaitGroup
	for i := 0; i < maxConcurrency && i < totalFiles; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for work := range workChan {
				select {
				case <-ctx.Done():
					s.config.Logger.Info("Compression cancelled by context", "worker_id", workerID)
					return
				default:
				}

				result, err := s.processSingleFile(ctx, work.ID, work.FilePath, level, workerID)
				if err != nil {
					compressionErr := common.NewCompressionError("processing", work.FilePath, err)
					s.config.Logger.Error("Error processing file",
						"file", work.FilePath,
						"worker_id", workerID,
						"error", compressionErr)

					wailsruntime.EventsEmit(s.ctx, common.EventFileProgress, compressionDomain.FileProgressUpdate{
						FileID:   work.ID,
						Filename: filepath.Base(work.FilePath),
						Status:   "error",
						Progress: 0,
						WorkerID: workerID,
						Error:    compressionErr.Error(),
					})

					resultChan <- &compressionDomain.FileResult{
						FileID:           work.ID,
						OriginalFilename: filepath.Base(work.FilePath),
						Status:           "error",
						Error:            compressionErr.Error(),
					}
				} else {
					wailsruntime.EventsEmit(s.ctx, common.EventFileProgress, compressionDomain.FileProgressUpdate{
						FileID:   work.ID,
						Filename: filepath.Base(work.FilePath),
						Status:   "completed",
						Progress: common.CompletedProgressPercent,
						WorkerID: workerID,
					})

					result.Status = "completed"
					resultChan <- result

					wailsruntime.EventsEmit(s.ctx, common.EventFileCompleted, result)
				}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results as they stream in
	var results []compressionDomain.FileResult
	var totalOriginalSize, totalCompressedSize int64
	completed := 0

	for result := range resultChan {
		results = append(results, *result)
		if result.Status == "completed" {
			totalOriginalSize += result.OriginalSize
			totalCompressedSize += result.CompressedSize
		}

		completed++
		overallProgress := float64(completed) / float64(totalFiles) * 100
		wailsruntime.EventsEmit(s.ctx, common.EventCompressionProgress, map[string]any{
			"percent":   overallProgress,
			"current":   completed,
			"total":     totalFiles,
			"completed": completed,
		})
	}

	wailsruntime.EventsEmit(s.ctx, common.EventCompressionProgress, map[string]any{
		"percent": 100.0,
		"current": totalFiles,
		"total":   totalFiles,
		"file":    "Complete",
	})

	var overallCompressionRatio float64
	if totalOriginalSize > 0 {
		overallCompressionRatio = float64(totalOriginalSize-totalCompressedSize) / float64(totalOriginalSize) * 100
	}

	s.statistics.UpdateStats(len(results), totalOriginalSize-totalCompressedSize)

	response := compressionDomain.CompressionResponse{
		Success:                 true,
		Files:                   results,
		TotalFiles:              len(results),
		TotalOriginalSize:       totalOriginalSize,
		TotalCompressedSize:     totalCompressedSize,
		OverallCompressionRatio: overallCompressionRatio,
		Level:                   level,
		AutoDownload:            request.AutoDownload,
	}

	if request.AutoDownload {
		response.DownloadPaths = s.saveToDownloadFolder(results, request.DownloadFolder)
		response.Files = results
	}

	return response
}

func (s *CompressionServiceImpl) ProcessFileData(ctx context.Context, fileData []compressionDomain.FileUpload) compressionDomain.CompressionResponse {
	if len(fileData) == 0 {
		return compressionDomain.CompressionResponse{
			Success: false,
			Error:   common.ErrNoFilesProvided.Error(),
		}
	}

	// Write the uploads to the working directory first
	var filePaths []string
	for _, file := range fileData {
		tempDir := filepath.Join(s.config.WorkingDir, common.GenerateUUID())
		if err := os.MkdirAll(tempDir, common.DefaultFilePermissions); err != nil {
			return compressionDomain.CompressionResponse{
				Success: false,
				Error:   fmt.Sprintf("failed to prepare files: %v", err),
			}
		}
		path := filepath.Join(tempDir, filepath.Base(file.Name))
		if err := os.WriteFile(path, file.Data, 0644); err != nil {
			return compressionDomain.CompressionResponse{
				Success: false,
				Error:   fmt.Sprintf("failed to prepare files: %v", err),
			}
		}
		filePaths = append(filePaths, path)
	}

	request := compressionDomain.CompressionRequest{
		Files: filePaths,
	}

	return s.CompressPDF(ctx, request)
}

func (s *CompressionServiceImpl) CompressImage(ctx context.Context, upload compressionDomain.FileUpload, level int, targetFormat string) (*compressionDomain.ImageResult, error) {
	if targetFormat == "" {
		if prefs, err := s.prefsRepo.GetPreferences(); err == nil && prefs != nil {
			targetFormat = prefs.PreferredImageFormat
		}
	}

	data, format, err := s.imageProc.CompressImage(upload.Data, s.resolveLevel(level), targetFormat)
	if err != nil {
		return nil, common.NewCompressionError("image", upload.Name, err)
	}

	return &compressionDomain.ImageResult{
		Data:           data,
		Format:         format,
		OriginalSize:   int64(len(upload.Data)),
		CompressedSize: int64(len(data)),
	}, nil
}

func (s *CompressionServiceImpl) processSingleFile(ctx context.Context, fileID, filePath string, level, workerID int) (*compressionDomain.FileResult, error) {
	filename := filepath.Base(filePath)

	wailsruntime.EventsEmit(s.ctx, common.EventFileProgress, compressionDomain.FileProgressUpdate{
		FileID:   fileID,
		Filename: filename,
		Status:   "compressing",
		Progress: common.DefaultProgressPercent,
		WorkerID: workerID,
	})

	timestamp := time.Now().UTC().Format("20060102_150405")
	baseName := strings.TrimSuffix(filename, ".pdf")
	compressedFilename := fmt.Sprintf("%s_%s_compressed.pdf", baseName, timestamp)
	compressedPath := filepath.Join(filepath.Dir(filePath), compressedFilename)

	start := time.Now()
	summary, err := s.processor.CompressFile(ctx, filePath, compressedPath, level)
	if err != nil {
		return nil, err
	}

	record := models.CompressionRecord{
		Filename:        filename,
		OriginalSize:    summary.OriginalSize,
		CompressedSize:  summary.CompressedSize,
		Quality:         summary.Quality,
		StreamsReplaced: summary.StreamsReplaced,
		DurationMs:      time.Since(start).Milliseconds(),
	}
	if err := s.stats.RecordCompression(record); err != nil {
		s.config.Logger.Warn("Failed to record compression history", "error", err)
	}

	var compressionRatio float64
	if summary.OriginalSize > 0 {
		compressionRatio = float64(summary.OriginalSize-summary.CompressedSize) / float64(summary.OriginalSize) * 100
	}

	return &compressionDomain.FileResult{
		FileID:             fileID,
		OriginalFilename:   filename,
		CompressedFilename: compressedFilename,
		OriginalSize:       summary.OriginalSize,
		CompressedSize:     summary.CompressedSize,
		CompressionRatio:   compressionRatio,
		Quality:            summary.Quality,
		StreamsReplaced:    summary.StreamsReplaced,
		CompressedPath:     compressedPath,
	}, nil
}

func (s *CompressionServiceImpl) resolveLevel(requestedLevel int) int {
	if requestedLevel != 0 {
		return requestedLevel
	}

	prefs, err := s.prefsRepo.GetPreferences()
	if err != nil {
		s.config.Logger.Warn("Failed to load preferences, using default compression level", "error", err)
		return s.config.DefaultLevel
	}

	if prefs == nil || prefs.DefaultCompressionLevel == 0 {
		return s.config.DefaultLevel
	}

	return prefs.DefaultCompressionLevel
}

func (s *CompressionServiceImpl) saveToDownloadFolder(results []compressionDomain.FileResult, customFolder string) []string {
	downloadDir := customFolder
	if downloadDir == "" {
		dir, err := s.prefsRepo.GetDownloadFolder()
		if err != nil {
			s.config.Logger.Error("Failed to resolve download folder", "error", err)
			return nil
		}
		downloadDir = dir
	}

	var downloadPaths []string
	for i, result := range results {
		if result.Status != "completed" {
			continue
		}
		downloadPath := filepath.Join(downloadDir, result.CompressedFilename)
		if err := common.CopyFile(result.CompressedPath, downloadPath); err != nil {
			s.config.Logger.Error("Failed to save file to download folder",
				"file", result.OriginalFilename,
				"error", err)
			continue
		}
		downloadPaths = append(downloadPaths, downloadPath)
		saved := downloadPath
		results[i].SavedPath = &saved
	}

	return downloadPaths
}

// StatisticsServiceImpl implements the statistics domain service
type StatisticsServiceImpl struct {
	stats   *services.StatsService
	session statisticsDomain.AppStats
	ctx     context.Context
}

func (s *StatisticsServiceImpl) UpdateStats(filesCompressed int, dataSaved int64) {
	s.session.SessionFilesCompressed += filesCompressed
	s.session.SessionDataSaved += dataSaved

	wailsruntime.EventsEmit(s.ctx, common.EventStatsUpdate, s.GetStats())
}

func (s *StatisticsServiceImpl) GetStats() *statisticsDomain.AppStats {
	combined := s.session

	totalFiles, totalSaved, err := s.stats.Totals()
	if err == nil {
		combined.TotalFilesCompressed = totalFiles
		combined.TotalDataSaved = totalSaved
	}

	return &combined
}

func (s *StatisticsServiceImpl) GetAppStatus(workingDir string) map[string]interface{} {
	return map[string]interface{}{
		"status":            "running",
		"framework":         "Wails + Preact",
		"app_name":          "PDFPress",
		"working_directory": workingDir,
	}
}
