package preferences

type Repository interface {
	GetPreferences() (*UserPreferencesData, error)
	UpdatePreferences(data map[string]any) error
	GetDownloadFolder() (string, error)
}

type UserPreferencesData struct {
	DefaultDownloadFolder   string `json:"default_download_folder"`
	DefaultCompressionLevel int    `json:"default_compression_level"`
	AutoDownloadEnabled     bool   `json:"auto_download_enabled"`
	PreferredImageFormat    string `json:"preferred_image_format"`
	AdvancedOptionsExpanded bool   `json:"advanced_options_expanded"`
}

type Service interface {
	GetPreferences() (*UserPreferencesData, error)
	UpdatePreferences(data map[string]any) error
}
