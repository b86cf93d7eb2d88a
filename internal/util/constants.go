package util

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMySQL  = "mysql"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// 上传类型与对应接口
const (
	UploadImage = "image"
	UploadVideo = "video"
	UploadPDF   = "pdf"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
	AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
	AllowedPDFExtensions   = []string{".pdf"}
)
