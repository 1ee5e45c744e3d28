package compression

// CompressionRequest describes a batch compression call. Level is the
// 10..95 compression level; zero means "use the stored preference".
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

// FileProgressUpdate is streamed to the frontend while a batch runs.
type FileProgressUpdate struct {
	FileID   string  `json:"file_id"`
	Filename string  `json:"filename"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	WorkerID int     `json:"worker_id"`
	Error    string  `json:"error,omitempty"`
}

// ImageResult is the outcome of a standalone image compression.
type ImageResult struct {
	Data           []byte `json:"data"`
	Format         string `json:"format"`
	OriginalSize   int64  `json:"original_size"`
	CompressedSize int64  `json:"compressed_size"`
}
