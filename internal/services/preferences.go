package services

import (
	"os"
	"path/filepath"

	"pdfpress/internal/engine"
	"pdfpress/internal/models"

	"gorm.io/gorm"
)

// PreferencesService handles user preferences operations
type PreferencesService struct {
	db *gorm.DB
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// GetPreferences gets the current user preferences
func (s *PreferencesService) GetPreferences() (*models.UserPreferencesData, error) {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences()
	return &prefsData, nil
}

// UpdatePreferences updates user preferences
func (s *PreferencesService) UpdatePreferences(data map[string]interface{}) error {
	prefs, err := models.GetOrCreatePreferences(s.db)
	if err != nil {
		return err
	}

	currentPrefs := prefs.GetPreferences()

	// Update fields from request data. Numbers arrive as float64 from the
	// frontend bridge.
	if val, ok := data["default_compression_level"]; ok {
		if level, ok := val.(float64); ok {
			currentPrefs.DefaultCompressionLevel = engine.ClampLevel(int(level))
		}
	}

	if val, ok := data["default_download_folder"]; ok {
		if folder, ok := val.(string); ok {
			currentPrefs.DefaultDownloadFolder = folder
		}
	}

	if val, ok := data["auto_download_enabled"]; ok {
		if enabled, ok := val.(bool); ok {
			currentPrefs.AutoDownloadEnabled = enabled
		}
	}

	if val, ok := data["preferred_image_format"]; ok {
		if format, ok := val.(string); ok {
			currentPrefs.PreferredImageFormat = format
		}
	}

	if val, ok := data["advanced_options_expanded"]; ok {
		if expanded, ok := val.(bool); ok {
			currentPrefs.AdvancedOptionsExpanded = expanded
		}
	}

	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return err
	}

	return s.db.Save(prefs).Error
}

// GetDownloadFolder returns the configured download folder, falling back
// to the user's Downloads directory.
func (s *PreferencesService) GetDownloadFolder() (string, error) {
	prefs, err := s.GetPreferences()
	if err == nil && prefs.DefaultDownloadFolder != "" {
		return prefs.DefaultDownloadFolder, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "Downloads"), nil
}
