package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFor(t *testing.T) {
	tests := []struct {
		tag, goos, goarch string
		archive, binary   string
	}{
		{"v1.4.0", "linux", "amd64", "wordiz_1.4.0_linux_amd64.tar.gz", "wordiz"},
		{"v1.4.0", "linux", "arm64", "wordiz_1.4.0_linux_arm64.tar.gz", "wordiz"},
		{"v1.4.0", "darwin", "arm64", "wordiz_1.4.0_darwin_arm64.tar.gz", "wordiz"},
		{"1.4.0", "darwin", "amd64", "wordiz_1.4.0_darwin_amd64.tar.gz", "wordiz"},
		{"v2.0.0-rc.1", "windows", "amd64", "wordiz_2.0.0-rc.1_windows_amd64.zip", "wordiz.exe"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			asset, err := assetFor(tt.tag, tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.archive, asset.Archive)
			assert.Equal(t, tt.binary, asset.Binary)
		})
	}

	asset, err := assetFor("v1.4.0", "linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "wordiz_1.4.0_checksums.txt", asset.Checksums)

	for _, p := range [][2]string{{"freebsd", "amd64"}, {"linux", "386"}, {"windows", "arm"}} {
		_, err := assetFor("v1.4.0", p[0], p[1])
		assert.ErrorIs(t, err, ErrNoAsset, "%s/%s", p[0], p[1])
	}
}

func TestIsDevBuild(t *testing.T) {
	for v, dev := range map[string]bool{
		DevVersion:          true,
		"":                  true,
		"dev":               true,
		"abc1234-dirty":     true,
		"v1.4.0":            false,
		"1.4.0":             false,
		"v2.0.0-rc.1":       false,
	} {
		assert.Equal(t, dev, IsDevBuild(v), "IsDevBuild(%q)", v)
	}
}

func TestParseChecksums(t *testing.T) {
	input := "ABC123  wordiz_1.4.0_linux_amd64.tar.gz\n" +
		"def456 *wordiz_1.4.0_windows_amd64.zip\n" +
		"badline\n\n" +
		"foo  bar  baz\n"

	assert.Equal(t, map[string]string{
		"wordiz_1.4.0_linux_amd64.tar.gz": "abc123",
		"wordiz_1.4.0_windows_amd64.zip":  "def456",
	}, parseChecksums([]byte(input)))
	assert.Empty(t, parseChecksums(nil))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("wordiz")
	sum := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))
	assert.ErrorIs(t, verifyChecksum(data, "00"), ErrChecksum)
}

func TestExtractBinary(t *testing.T) {
	content := []byte("#!/bin/sh\necho wordiz")
	linux, _ := assetFor("v1.4.0", "linux", "amd64")
	windows, _ := assetFor("v1.4.0", "windows", "amd64")

	got, err := extractBinary(buildTarGz(t, "wordiz_1.4.0_linux_amd64/wordiz", content), linux)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = extractBinary(buildZip(t, "wordiz.exe", content), windows)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = extractBinary(buildTarGz(t, "README.md", content), linux)
	assert.ErrorContains(t, err, "not found")

	_, err = extractBinary(buildZip(t, "wordiz", content), windows)
	assert.ErrorContains(t, err, `"wordiz.exe" not found`)
}

func TestReplaceExecutable(t *testing.T) {
	t.Run("unix", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "wordiz")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0o750))

		require.NoError(t, replaceExecutable(target, []byte("new"), "linux"))

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())

		entries, err := os.ReadDir(filepath.Dir(target))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file left behind")
	})

	t.Run("windows keeps the old executable aside", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "wordiz.exe")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))
		require.NoError(t, os.WriteFile(target+".old", []byte("older"), 0o755))

		require.NoError(t, replaceExecutable(target, []byte("new"), "windows"))

		got, _ := os.ReadFile(target)
		assert.Equal(t, "new", string(got))
		old, _ := os.ReadFile(target + ".old")
		assert.Equal(t, "old", string(old))
	})

	t.Run("missing target", func(t *testing.T) {
		err := replaceExecutable(filepath.Join(t.TempDir(), "wordiz"), []byte("new"), "linux")
		assert.True(t, os.IsNotExist(err))
	})
}

// fakeRelease serves a latest release tag plus the given download files.
func fakeRelease(t *testing.T, tag string, files map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/abhisek/wordiz/releases/latest" {
			fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://github.com/abhisek/wordiz/releases/%s"}`, tag, tag)
			return
		}
		for name, data := range files {
			if r.URL.Path == "/abhisek/wordiz/releases/download/"+tag+"/"+name {
				_, _ = w.Write(data)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func checksumLine(name string, data []byte) []byte {
	sum := sha256.Sum256(data)
	return []byte(fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum[:]), name))
}

func TestUpdate(t *testing.T) {
	newBinary := []byte("wordiz 1.5.0")
	tarball := buildTarGz(t, "wordiz", newBinary)
	zipball := buildZip(t, "wordiz.exe", newBinary)
	sums := append(checksumLine("wordiz_1.5.0_linux_amd64.tar.gz", tarball),
		checksumLine("wordiz_1.5.0_windows_amd64.zip", zipball)...)

	release := map[string][]byte{
		"wordiz_1.5.0_linux_amd64.tar.gz": tarball,
		"wordiz_1.5.0_windows_amd64.zip":  zipball,
		"wordiz_1.5.0_checksums.txt":      sums,
	}

	for _, goos := range []string{"linux", "windows"} {
		t.Run(goos, func(t *testing.T) {
			server := fakeRelease(t, "v1.5.0", release)
			exe := filepath.Join(t.TempDir(), "wordiz")
			require.NoError(t, os.WriteFile(exe, []byte("wordiz 1.4.0"), 0o755))

			checker := NewChecker(
				WithBaseURL(server.URL),
				WithDownloadBaseURL(server.URL),
				withPlatform(goos, "amd64"),
				withExecPath(func() (string, error) { return exe, nil }),
			)

			var stages []Stage
			var last string
			err := checker.Update(context.Background(), "v1.4.0", func(p UpdateProgress) {
				stages = append(stages, p.Stage)
				last = p.Message
			})
			require.NoError(t, err)

			got, err := os.ReadFile(exe)
			require.NoError(t, err)
			assert.Equal(t, newBinary, got)
			assert.Equal(t, []Stage{StageCheck, StageDownload, StageVerify, StageInstall, StageDone}, stages)
			assert.Equal(t, "Updated wordiz v1.4.0 -> v1.5.0", last)
		})
	}
}

func TestUpdateErrors(t *testing.T) {
	tarball := buildTarGz(t, "wordiz", []byte("wordiz 1.5.0"))

	t.Run("dev build", func(t *testing.T) {
		for _, v := range []string{DevVersion, "", "abc1234"} {
			err := NewChecker().Update(context.Background(), v, nil)
			assert.ErrorIs(t, err, ErrDevBuild, "version %q", v)
		}
	})

	t.Run("already latest", func(t *testing.T) {
		server := fakeRelease(t, "v1.5.0", nil)
		err := NewChecker(WithBaseURL(server.URL)).Update(context.Background(), "1.5.0", nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("unsupported platform", func(t *testing.T) {
		server := fakeRelease(t, "v1.5.0", nil)
		err := NewChecker(WithBaseURL(server.URL), withPlatform("plan9", "amd64")).Update(context.Background(), "v1.4.0", nil)
		assert.ErrorIs(t, err, ErrNoAsset)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		server := fakeRelease(t, "v1.5.0", map[string][]byte{
			"wordiz_1.5.0_linux_amd64.tar.gz": tarball,
			"wordiz_1.5.0_checksums.txt":      checksumLine("wordiz_1.5.0_linux_amd64.tar.gz", []byte("other")),
		})
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL), withPlatform("linux", "amd64"))
		assert.ErrorIs(t, checker.Update(context.Background(), "v1.4.0", nil), ErrChecksum)
	})

	t.Run("archive not listed", func(t *testing.T) {
		server := fakeRelease(t, "v1.5.0", map[string][]byte{
			"wordiz_1.5.0_linux_amd64.tar.gz": tarball,
			"wordiz_1.5.0_checksums.txt":      checksumLine("wordiz_1.5.0_darwin_arm64.tar.gz", tarball),
		})
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL), withPlatform("linux", "amd64"))
		assert.ErrorIs(t, checker.Update(context.Background(), "v1.4.0", nil), ErrChecksum)
	})

	t.Run("archive missing", func(t *testing.T) {
		server := fakeRelease(t, "v1.5.0", nil)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL), withPlatform("linux", "amd64"))
		err := checker.Update(context.Background(), "v1.4.0", nil)
		assert.ErrorContains(t, err, "download wordiz_1.5.0_linux_amd64.tar.gz: HTTP 404")
	})
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o755,
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
