package transport

// Transport layer types for the Wails API

type CompressionRequest struct {
	Files          []string `json:"files"`
	Level          int      `json:"level"`
	AutoDownload   bool     `json:"autoDownload"`
	DownloadFolder string   `json:"downloadFolder"`
}

type CompressionResponse struct {
	Success                 bool         `json:"success"`
	Files                   []FileResult `json:"files"`
	TotalFiles              int          `json:"total_files"`
	TotalOriginalSize       int64        `json:"total_original_size"`
	TotalCompressedSize     int64        `json:"total_compressed_size"`
	OverallCompressionRatio float64      `json:"overall_compression_ratio"`
	Level                   int          `json:"level"`
	AutoDownload            bool         `json:"auto_download"`
	DownloadPaths           []string     `json:"download_paths,omitempty"`
	Error                   string       `json:"error,omitempty"`
}

type FileResult struct {
	FileID             string  `json:"file_id"`
	OriginalFilename   string  `json:"original_filename"`
	CompressedFilename string  `json:"compressed_filename"`
	OriginalSize       int64   `json:"original_size"`
	CompressedSize     int64   `json:"compressed_size"`
	CompressionRatio   float64 `json:"compression_ratio"`
	Quality            int     `json:"quality"`
	StreamsReplaced    int     `json:"streams_replaced"`
	CompressedPath     string  `json:"compressed_path"`
	SavedPath          *string `json:"saved_path,omitempty"`
	Status             string  `json:"status"`
	Error              string  `json:"error,omitempty"`
}

type FileUpload struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
	Size int64  `json:"size"`
}

type ImageCompressionResponse struct {
	Success        bool   `json:"success"`
	Data           []byte `json:"data,omitempty"`
	Format         string `json:"format,omitempty"`
	OriginalSize   int64  `json:"original_size"`
	CompressedSize int64  `json:"compressed_size"`
	Error          string `json:"error,omitempty"`
}

type AppStats struct {
	TotalFilesCompressed   int64 `json:"total_files_compressed"`
	TotalDataSaved         int64 `json:"total_data_saved"`
	SessionFilesCompressed int   `json:"session_files_compressed"`
	SessionDataSaved       int64 `json:"session_data_saved"`
}

// Dialog interface for system dialogs
type DialogHandler interface {
	OpenFileDialog() ([]string, error)
	OpenDirectoryDialog() (string, error)
	ShowSaveDialog(filename string) (string, error)
	OpenFile(filePath string) error
}
