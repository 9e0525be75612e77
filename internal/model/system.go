package model

// VersionInfo contains application and schema version information.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  int64  `json:"db_version"`
}
