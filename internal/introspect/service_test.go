package introspect

import (
	"context"
	"image"
	"path/filepath"
	"testing"

	"github.com/leonhh/applist/internal/dispatch"
	"github.com/leonhh/applist/internal/icon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceGetAll(t *testing.T) {
	tmpDir := t.TempDir()
	base := filepath.Join(tmpDir, "base.apk")
	buildArchive(t, base, map[string]string{"classes.dex": "dex"})

	reg := newFakeRegistry()
	reg.add(entry("com.example.a", base))
	reg.add(entry("com.example.b", base))
	bare := entry("com.example.bare", "")
	bare.Application = nil
	reg.add(bare)

	svc := NewService(newTestIntrospector(t, reg), dispatch.New(2, 2))
	ctx := context.Background()

	all, err := svc.GetAll(ctx).Await(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2, "packages without application info are dropped")
	assert.Equal(t, "com.example.a", all[0].PackageName)
	assert.Equal(t, "com.example.b", all[1].PackageName)

	names, err := svc.GetAppList(ctx).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.a", "com.example.b", "com.example.bare"}, names)
}

func TestServiceOperations(t *testing.T) {
	tmpDir := t.TempDir()
	base := filepath.Join(tmpDir, "base.apk")
	buildArchive(t, base, map[string]string{
		"lib/arm64-v8a/libapp.so": "elf",
		"assets/a.json":           "{}",
	})

	reg := newFakeRegistry()
	e := entry("com.example.a", base)
	e.RequestedPermissions = []string{"android.permission.INTERNET"}
	reg.add(e)
	reg.icons["com.example.a"] = icon.FromImage(image.NewRGBA(image.Rect(0, 0, 32, 32)))

	svc := NewService(newTestIntrospector(t, reg), nil)
	ctx := context.Background()

	// submit everything before awaiting anything
	details := svc.GetPackageDetails(ctx, "com.example.a")
	missing := svc.GetPackageDetails(ctx, "com.missing")
	perms := svc.GetPermissions(ctx, "com.example.a")
	libs := svc.GetNativeLibraries(ctx, "com.example.a")
	iconF := svc.GetAppIcon(ctx, "com.example.a", 16)
	noIcon := svc.GetAppIcon(ctx, "com.missing", 16)
	content := svc.GetFileContent(ctx, "com.example.a", []string{".json"})
	files := svc.GetFiles(ctx, "com.example.a", []string{"a.json", "b.json"})
	noFiles := svc.GetFiles(ctx, "com.missing", []string{"a.json"})

	d, err := details.Await(ctx)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "com.example.a", d.PackageName)

	m, err := missing.Await(ctx)
	require.NoError(t, err)
	assert.Nil(t, m)

	p, err := perms.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"android.permission.INTERNET"}, p)

	l, err := libs.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"libapp.so"}, l)

	ic, err := iconF.Await(ctx)
	require.NoError(t, err)
	require.NotNil(t, ic)
	assert.NotEmpty(t, *ic)

	ni, err := noIcon.Await(ctx)
	require.NoError(t, err)
	assert.Nil(t, ni)

	c, err := content.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"assets/a.json": "{}"}, c)

	f, err := files.Await(ctx)
	require.NoError(t, err)
	require.Len(t, f, 2)
	assert.NotNil(t, f[0])
	assert.Nil(t, f[1])

	nf, err := noFiles.Await(ctx)
	require.NoError(t, err)
	assert.Nil(t, nf)
}
