package models

// ApplicationInfo describes where an installed application lives on disk
type ApplicationInfo struct {
	PackageName      string
	SourceDir        string   // primary archive
	SplitSourceDirs  []string // split archives, may be empty
	NativeLibraryDir string
	DataDir          string
	Flags            int
	TargetSdkVersion int

	// MetaData is only populated when requested from the registry
	MetaData map[string]string
}

// FlagSystem marks an application installed on the system image
const FlagSystem = 1 << 0

// IsSystem reports whether the system flag bit is set
func (a *ApplicationInfo) IsSystem() bool {
	if a == nil {
		return false
	}
	return a.Flags&FlagSystem != 0
}

// ArchivePaths returns the primary archive followed by every split archive
func (a *ApplicationInfo) ArchivePaths() []string {
	if a == nil || a.SourceDir == "" {
		return nil
	}
	paths := make([]string, 0, 1+len(a.SplitSourceDirs))
	paths = append(paths, a.SourceDir)
	return append(paths, a.SplitSourceDirs...)
}

// RegistryEntry is one installed package as reported by the package registry
type RegistryEntry struct {
	PackageName          string
	VersionName          *string
	FirstInstallTime     int64 // epoch milliseconds
	LastUpdateTime       int64 // epoch milliseconds
	RequestedPermissions []string

	// Application is nil when the registry could not provide application metadata
	Application *ApplicationInfo
}

// PackageDescriptor is the summary of one package returned to callers
type PackageDescriptor struct {
	PackageName      string  `json:"packageName" yaml:"packageName"`
	VersionName      *string `json:"versionName,omitempty" yaml:"versionName,omitempty"`
	Size             int64   `json:"size" yaml:"size"`
	AppName          string  `json:"appName" yaml:"appName"`
	IsSystemApp      bool    `json:"isSystemApp" yaml:"isSystemApp"`
	FirstInstallTime int64   `json:"firstInstallTime" yaml:"firstInstallTime"`
	LastUpdateTime   int64   `json:"lastUpdateTime" yaml:"lastUpdateTime"`
	TargetSdkVersion int     `json:"targetSdkVersion" yaml:"targetSdkVersion"`
}

// Version returns the version name, or "" when the package has none
func (d *PackageDescriptor) Version() string {
	if d == nil || d.VersionName == nil {
		return ""
	}
	return *d.VersionName
}

// FileContent is one archive entry read in full
type FileContent struct {
	Name     string `json:"name" yaml:"name"`
	Content  string `json:"content" yaml:"content"`
	Size     int64  `json:"size" yaml:"size"`
	MIMEType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
}

// Architectures lists the processor architecture segments native libraries are installed under
var Architectures = []string{
	"arm64-v8a",
	"armeabi-v7a",
	"x86",
	"x86_64",
}
