package cli

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/leonhh/applist/internal/models"
	"github.com/leonhh/applist/internal/utils"
	"gopkg.in/yaml.v3"
)

// packageView is the outward form of a descriptor; an absent version
// renders as an empty string
type packageView struct {
	PackageName      string          `json:"packageName" yaml:"packageName"`
	VersionName      string          `json:"versionName" yaml:"versionName"`
	Size             int64           `json:"size" yaml:"size"`
	AppName          string          `json:"appName" yaml:"appName"`
	IsSystemApp      bool            `json:"isSystemApp" yaml:"isSystemApp"`
	FirstInstallTime int64           `json:"firstInstallTime" yaml:"firstInstallTime"`
	LastUpdateTime   int64           `json:"lastUpdateTime" yaml:"lastUpdateTime"`
	TargetSdkVersion int             `json:"targetSdkVersion" yaml:"targetSdkVersion"`
	Checksum         *utils.Checksum `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

func newPackageView(d *models.PackageDescriptor) *packageView {
	if d == nil {
		return nil
	}
	return &packageView{
		PackageName:      d.PackageName,
		VersionName:      d.Version(),
		Size:             d.Size,
		AppName:          d.AppName,
		IsSystemApp:      d.IsSystemApp,
		FirstInstallTime: d.FirstInstallTime,
		LastUpdateTime:   d.LastUpdateTime,
		TargetSdkVersion: d.TargetSdkVersion,
	}
}

// render writes v in the requested format; a nil v prints null
func render(w io.Writer, format string, v any) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "yaml":
		data, err = yaml.Marshal(v)
	default:
		data, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = w.Write(data)
	return err
}
